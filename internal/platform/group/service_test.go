package group_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkoff/moneymap/internal/platform/group"
)

type fakeGroupRepo struct {
	groups map[uuid.UUID]*group.Group
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[uuid.UUID]*group.Group)}
}

func (r *fakeGroupRepo) Create(_ context.Context, g *group.Group) error {
	cp := *g
	r.groups[g.ID] = &cp
	return nil
}

func (r *fakeGroupRepo) GetByID(_ context.Context, userID, id uuid.UUID) (*group.Group, error) {
	g, ok := r.groups[id]
	if !ok || g.UserID != userID {
		return nil, group.ErrGroupNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGroupRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]group.Group, error) {
	var out []group.Group
	for _, g := range r.groups {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) Update(_ context.Context, g *group.Group) error {
	existing, ok := r.groups[g.ID]
	if !ok || existing.UserID != g.UserID {
		return group.ErrGroupNotFound
	}
	cp := *g
	r.groups[g.ID] = &cp
	return nil
}

func (r *fakeGroupRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	g, ok := r.groups[id]
	if !ok || g.UserID != userID {
		return group.ErrGroupNotFound
	}
	delete(r.groups, id)
	return nil
}

type fakeLinker struct {
	counts  map[uuid.UUID]int
	cleared []uuid.UUID
}

func newFakeLinker() *fakeLinker {
	return &fakeLinker{counts: make(map[uuid.UUID]int)}
}

func (l *fakeLinker) CountByGroup(_ context.Context, _, groupID uuid.UUID) (int, error) {
	return l.counts[groupID], nil
}

func (l *fakeLinker) ClearGroup(_ context.Context, _, groupID uuid.UUID) error {
	l.cleared = append(l.cleared, groupID)
	return nil
}

func TestService_Create_DefaultColor(t *testing.T) {
	svc := group.NewService(newFakeGroupRepo(), newFakeLinker())

	g, err := svc.Create(context.Background(), &group.Group{
		UserID: uuid.New(),
		Name:   "Trip to Lisbon",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, g.ID)
	assert.Equal(t, group.DefaultColor, g.Color)
}

func TestService_Create_KeepsExplicitColor(t *testing.T) {
	svc := group.NewService(newFakeGroupRepo(), newFakeLinker())

	g, err := svc.Create(context.Background(), &group.Group{
		UserID: uuid.New(),
		Name:   "Household",
		Color:  "#ff0000",
	})
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", g.Color)
}

func TestService_Create_EmptyName(t *testing.T) {
	svc := group.NewService(newFakeGroupRepo(), newFakeLinker())

	_, err := svc.Create(context.Background(), &group.Group{UserID: uuid.New()})
	assert.ErrorIs(t, err, group.ErrEmptyName)
}

func TestService_List_IncludesExpenseCounts(t *testing.T) {
	repo := newFakeGroupRepo()
	linker := newFakeLinker()
	svc := group.NewService(repo, linker)
	userID := uuid.New()

	g, err := svc.Create(context.Background(), &group.Group{UserID: userID, Name: "Trip"})
	require.NoError(t, err)
	linker.counts[g.ID] = 7

	groups, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 7, groups[0].ExpenseCount)
}

func TestService_Delete_DetachesExpenses(t *testing.T) {
	repo := newFakeGroupRepo()
	linker := newFakeLinker()
	svc := group.NewService(repo, linker)
	userID := uuid.New()

	g, err := svc.Create(context.Background(), &group.Group{UserID: userID, Name: "Trip"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, g.ID))
	assert.Contains(t, linker.cleared, g.ID)

	_, err = repo.GetByID(context.Background(), userID, g.ID)
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
}

func TestService_Delete_WrongOwner(t *testing.T) {
	repo := newFakeGroupRepo()
	linker := newFakeLinker()
	svc := group.NewService(repo, linker)

	g, err := svc.Create(context.Background(), &group.Group{UserID: uuid.New(), Name: "Trip"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), uuid.New(), g.ID)
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
	assert.Empty(t, linker.cleared)
}
