package importer_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkoff/moneymap/internal/platform/importer"
	"github.com/avolkoff/moneymap/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New("development", io.Discard)
}

// fakeSource serves expenses from a flat slice, paging by limit/offset the
// way the real API does.
type fakeSource struct {
	expenses    []importer.RawExpense
	userID      int64
	userIDErr   error
	expensesErr error

	userIDCalls int
	pageCalls   int
}

func (f *fakeSource) CurrentUserID(ctx context.Context, apiKey string) (int64, error) {
	f.userIDCalls++
	if f.userIDErr != nil {
		return 0, f.userIDErr
	}
	return f.userID, nil
}

func (f *fakeSource) Expenses(ctx context.Context, apiKey string, limit, offset int) ([]importer.RawExpense, error) {
	f.pageCalls++
	if f.expensesErr != nil {
		return nil, f.expensesErr
	}
	if offset >= len(f.expenses) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.expenses) {
		end = len(f.expenses)
	}
	return f.expenses[offset:end], nil
}

// fakeStore reports a fixed set of splitwise ids as already stored
type fakeStore struct {
	existing map[string]bool
	calls    int
}

func (f *fakeStore) ExistsBySplitwiseID(ctx context.Context, userID uuid.UUID, splitwiseID string) (bool, error) {
	f.calls++
	return f.existing[splitwiseID], nil
}

func makeExpenses(n int, userID int64) []importer.RawExpense {
	expenses := make([]importer.RawExpense, 0, n)
	for i := 0; i < n; i++ {
		expenses = append(expenses, importer.RawExpense{
			ID:           fmt.Sprintf("sw-%d", i),
			Description:  fmt.Sprintf("Expense %d", i),
			Cost:         "30",
			CurrencyCode: "USD",
			Date:         "2024-05-10T12:00:00Z",
			Shares: []importer.Share{
				{UserID: userID, OwedShare: "10", PaidShare: "30"},
			},
		})
	}
	return expenses
}

func TestService_Import_Pagination(t *testing.T) {
	// 250 expenses = two full pages of 100 plus a short page of 50
	source := &fakeSource{expenses: makeExpenses(250, 777), userID: 777}
	store := &fakeStore{}
	svc := importer.NewService(source, store, testLogger())

	result, err := svc.Import(context.Background(), uuid.New(), "key", importer.Request{})
	require.NoError(t, err)

	assert.Equal(t, 3, source.pageCalls, "fetch must continue until a short page")
	assert.Equal(t, 250, result.TotalFetched)
	assert.Equal(t, 250, result.Count)
	assert.Equal(t, 0, result.Skipped)
}

func TestService_Import_ExactPageBoundary(t *testing.T) {
	// Exactly 200 expenses: two full pages, then one empty page to terminate
	source := &fakeSource{expenses: makeExpenses(200, 777), userID: 777}
	svc := importer.NewService(source, &fakeStore{}, testLogger())

	result, err := svc.Import(context.Background(), uuid.New(), "key", importer.Request{})
	require.NoError(t, err)

	assert.Equal(t, 3, source.pageCalls)
	assert.Equal(t, 200, result.TotalFetched)
}

func TestService_Import_SourceOrderPreserved(t *testing.T) {
	source := &fakeSource{expenses: makeExpenses(120, 777), userID: 777}
	svc := importer.NewService(source, &fakeStore{}, testLogger())

	result, err := svc.Import(context.Background(), uuid.New(), "key", importer.Request{})
	require.NoError(t, err)

	require.Len(t, result.Expenses, 120)
	for i, cand := range result.Expenses {
		assert.Equal(t, fmt.Sprintf("sw-%d", i), cand.SplitwiseID)
	}
}

func TestService_Import_EmptyAccount(t *testing.T) {
	source := &fakeSource{userID: 777}
	svc := importer.NewService(source, &fakeStore{}, testLogger())

	result, err := svc.Import(context.Background(), uuid.New(), "key", importer.Request{})
	require.NoError(t, err)

	assert.Equal(t, "No expenses found in your Splitwise account.", result.Message)
	assert.Equal(t, 0, result.Count)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Expenses)
}

func TestService_Import_EmptyAfterFilter(t *testing.T) {
	source := &fakeSource{expenses: makeExpenses(10, 777), userID: 777}
	svc := importer.NewService(source, &fakeStore{}, testLogger())

	result, err := svc.Import(context.Background(), uuid.New(), "key", importer.Request{
		StartDate: "2030-01-01",
		EndDate:   "2030-12-31",
	})
	require.NoError(t, err)

	assert.Equal(t, "No expenses found in the selected date range.", result.Message)
	assert.Equal(t, 0, result.Count)
}

func TestService_Import_InvalidRangeRejectedBeforeFetch(t *testing.T) {
	source := &fakeSource{expenses: makeExpenses(10, 777), userID: 777}
	svc := importer.NewService(source, &fakeStore{}, testLogger())

	_, err := svc.Import(context.Background(), uuid.New(), "key", importer.Request{
		StartDate: "15-01-2024",
	})

	require.Error(t, err)
	assert.True(t, importer.IsInvalidRangeError(err))
	assert.Equal(t, 0, source.userIDCalls, "nothing should be fetched for a bad range")
	assert.Equal(t, 0, source.pageCalls)
}

func TestService_Import_AuthErrorPropagates(t *testing.T) {
	source := &fakeSource{
		userID:      777,
		expensesErr: &importer.AuthError{Message: "invalid API key"},
	}
	svc := importer.NewService(source, &fakeStore{}, testLogger())

	_, err := svc.Import(context.Background(), uuid.New(), "key", importer.Request{})

	require.Error(t, err)
	assert.True(t, importer.IsAuthError(err))
}

func TestService_Import_UserLookupErrorPropagates(t *testing.T) {
	source := &fakeSource{
		userIDErr: &importer.UpstreamError{StatusCode: 500, Message: "boom"},
	}
	svc := importer.NewService(source, &fakeStore{}, testLogger())

	_, err := svc.Import(context.Background(), uuid.New(), "key", importer.Request{})

	require.Error(t, err)
	assert.True(t, importer.IsUpstreamError(err))
}

func TestService_Import_DuplicatesReturnedAndCounted(t *testing.T) {
	expenses := makeExpenses(3, 777)
	source := &fakeSource{expenses: expenses, userID: 777}
	store := &fakeStore{existing: map[string]bool{"sw-1": true}}
	svc := importer.NewService(source, store, testLogger())

	result, err := svc.Import(context.Background(), uuid.New(), "key", importer.Request{})
	require.NoError(t, err)

	// Duplicate is both returned and counted as skipped
	require.Len(t, result.Expenses, 3)
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, 1, result.Skipped)
	assert.False(t, result.Expenses[0].AlreadyImported)
	assert.True(t, result.Expenses[1].AlreadyImported)
	assert.False(t, result.Expenses[2].AlreadyImported)
}

func TestService_Import_Idempotence(t *testing.T) {
	expenses := makeExpenses(5, 777)
	userID := uuid.New()

	// First run: nothing stored yet
	first := importer.NewService(&fakeSource{expenses: expenses, userID: 777}, &fakeStore{}, testLogger())
	r1, err := first.Import(context.Background(), userID, "key", importer.Request{})
	require.NoError(t, err)

	// Second run with every candidate from the first run now stored
	stored := map[string]bool{}
	for _, cand := range r1.Expenses {
		stored[cand.SplitwiseID] = true
	}
	second := importer.NewService(&fakeSource{expenses: expenses, userID: 777}, &fakeStore{existing: stored}, testLogger())
	r2, err := second.Import(context.Background(), userID, "key", importer.Request{})
	require.NoError(t, err)

	assert.Equal(t, r1.Count, r2.Count, "distinct candidates must not change between runs")
	for _, cand := range r2.Expenses {
		assert.True(t, cand.AlreadyImported)
	}
	assert.Equal(t, len(r2.Expenses), r2.Skipped)
}

func TestService_Import_SkipReasonsCapped(t *testing.T) {
	// 60 expenses where the user participates with zero shares
	expenses := make([]importer.RawExpense, 0, 60)
	for i := 0; i < 60; i++ {
		expenses = append(expenses, importer.RawExpense{
			ID:          fmt.Sprintf("sw-%d", i),
			Description: fmt.Sprintf("Expense %d", i),
			Cost:        "0",
			Date:        "2024-05-10T12:00:00Z",
			Shares: []importer.Share{
				{UserID: 777, OwedShare: "0", PaidShare: "0"},
			},
		})
	}
	source := &fakeSource{expenses: expenses, userID: 777}
	svc := importer.NewService(source, &fakeStore{}, testLogger())

	result, err := svc.Import(context.Background(), uuid.New(), "key", importer.Request{})
	require.NoError(t, err)

	assert.Equal(t, 60, result.Skipped)
	assert.Len(t, result.SkippedExpenses, 50, "skip list is bounded")
	assert.Equal(t, 0, result.Count)
}

func TestService_Import_NotParticipantCountedNotListed(t *testing.T) {
	expenses := []importer.RawExpense{
		{
			ID: "sw-0", Description: "Someone else's dinner", Cost: "40",
			Date:   "2024-05-10T12:00:00Z",
			Shares: []importer.Share{{UserID: 111, OwedShare: "40", PaidShare: "40"}},
		},
	}
	source := &fakeSource{expenses: expenses, userID: 777}
	svc := importer.NewService(source, &fakeStore{}, testLogger())

	result, err := svc.Import(context.Background(), uuid.New(), "key", importer.Request{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.SkippedExpenses)
}

func TestService_Import_NoDedupLookupForSkippedRecords(t *testing.T) {
	expenses := []importer.RawExpense{
		{
			ID: "sw-0", Description: "Payment", Cost: "40",
			Date:   "2024-05-10T12:00:00Z",
			Shares: []importer.Share{{UserID: 777, OwedShare: "0", PaidShare: "40"}},
		},
	}
	source := &fakeSource{expenses: expenses, userID: 777}
	store := &fakeStore{}
	svc := importer.NewService(source, store, testLogger())

	result, err := svc.Import(context.Background(), uuid.New(), "key", importer.Request{})
	require.NoError(t, err)

	assert.Equal(t, 0, store.calls, "skipped records never hit storage")
	assert.Equal(t, 1, result.Skipped)
}
