package group

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/avolkoff/moneymap/internal/shared/errors"
)

// Service handles group business logic
type Service struct {
	repo     Repository
	expenses ExpenseLinker
}

// NewService creates a new group service
func NewService(repo Repository, expenses ExpenseLinker) *Service {
	return &Service{
		repo:     repo,
		expenses: expenses,
	}
}

// GroupWithCount pairs a group with the number of expenses assigned to it
type GroupWithCount struct {
	Group
	ExpenseCount int
}

// List returns the user's groups with their expense counts
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]GroupWithCount, error) {
	groups, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list groups", err)
	}

	result := make([]GroupWithCount, 0, len(groups))
	for _, g := range groups {
		count, err := s.expenses.CountByGroup(ctx, userID, g.ID)
		if err != nil {
			return nil, apperrors.Internal("failed to count group expenses", err)
		}
		result = append(result, GroupWithCount{Group: g, ExpenseCount: count})
	}

	return result, nil
}

// Create stores a new group for the user
func (s *Service) Create(ctx context.Context, g *Group) (*Group, error) {
	g.ID = uuid.New()
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now

	if g.Color == "" {
		g.Color = DefaultColor
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

// Update applies changes to an existing group owned by the user
func (s *Service) Update(ctx context.Context, g *Group) (*GroupWithCount, error) {
	existing, err := s.repo.GetByID(ctx, g.UserID, g.ID)
	if err != nil {
		return nil, err
	}

	if g.Name != "" {
		existing.Name = g.Name
	}
	existing.Description = g.Description
	if g.Color != "" {
		existing.Color = g.Color
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	count, err := s.expenses.CountByGroup(ctx, g.UserID, existing.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to count group expenses", err)
	}

	return &GroupWithCount{Group: *existing, ExpenseCount: count}, nil
}

// Delete removes a group and detaches its expenses
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	// Expenses survive their group; they just lose the assignment
	if err := s.expenses.ClearGroup(ctx, userID, id); err != nil {
		return apperrors.Internal("failed to detach group expenses", err)
	}

	return nil
}
