package splitwise

import (
	"context"

	"github.com/avolkoff/moneymap/internal/platform/importer"
)

// IdentityCache memoizes the api-key to Splitwise-user-id resolution so
// repeated imports skip the get_current_user round trip.
type IdentityCache interface {
	GetUserID(ctx context.Context, apiKey string) (int64, bool, error)
	SetUserID(ctx context.Context, apiKey string, userID int64) error
}

// SourceAdapter adapts the Splitwise client to the importer.ExpenseSource
// interface. The cache is optional; pass nil to always hit the API.
type SourceAdapter struct {
	client *Client
	cache  IdentityCache
}

// Compile-time check that SourceAdapter implements ExpenseSource
var _ importer.ExpenseSource = (*SourceAdapter)(nil)

// NewSourceAdapter creates a new Splitwise source adapter
func NewSourceAdapter(client *Client, cache IdentityCache) *SourceAdapter {
	return &SourceAdapter{client: client, cache: cache}
}

// CurrentUserID resolves the caller's own Splitwise user id, consulting the
// identity cache first. Cache failures are ignored; the API remains the
// source of truth.
func (a *SourceAdapter) CurrentUserID(ctx context.Context, apiKey string) (int64, error) {
	if a.cache != nil {
		if id, ok, err := a.cache.GetUserID(ctx, apiKey); err == nil && ok {
			return id, nil
		}
	}

	id, err := a.client.GetCurrentUser(ctx, apiKey)
	if err != nil {
		return 0, err
	}

	if a.cache != nil {
		_ = a.cache.SetUserID(ctx, apiKey, id)
	}

	return id, nil
}

// Expenses fetches one page of expenses and converts it to domain records
func (a *SourceAdapter) Expenses(ctx context.Context, apiKey string, limit, offset int) ([]importer.RawExpense, error) {
	page, err := a.client.GetExpenses(ctx, apiKey, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]importer.RawExpense, 0, len(page))
	for _, exp := range page {
		result = append(result, convertExpense(exp))
	}

	return result, nil
}

// convertExpense maps a raw Splitwise expense to the importer domain type.
// Values stay as strings; parsing and defaulting belong to the classifier.
func convertExpense(exp Expense) importer.RawExpense {
	shares := make([]importer.Share, 0, len(exp.Users))
	for _, us := range exp.Users {
		shares = append(shares, importer.Share{
			UserID:    us.User.ID,
			OwedShare: string(us.OwedShare),
			PaidShare: string(us.PaidShare),
		})
	}

	return importer.RawExpense{
		ID:           string(exp.ID),
		Description:  exp.Description,
		Cost:         string(exp.Cost),
		CurrencyCode: exp.CurrencyCode,
		Date:         exp.Date,
		Category:     string(exp.Category),
		Shares:       shares,
	}
}
