package expense

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/avolkoff/moneymap/internal/shared/errors"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Service handles expense business logic
type Service struct {
	repo Repository
}

// NewService creates a new expense service
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Page is one page of a user's expenses
type Page struct {
	Expenses   []Expense
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// List returns one page of the user's expenses, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	expenses, total, err := s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list expenses", err)
	}

	return &Page{
		Expenses:   expenses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// Create stores a new expense for the user. Confirmed import candidates
// arrive here with their SplitwiseID set; the unique (user_id, splitwise_id)
// index rejects a concurrent double-import.
func (s *Service) Create(ctx context.Context, exp *Expense) (*Expense, error) {
	exp.ID = uuid.New()
	now := time.Now()
	exp.CreatedAt = now
	exp.UpdatedAt = now

	if exp.Currency == "" {
		exp.Currency = "USD"
	}
	if exp.Type == "" {
		exp.Type = TypeManual
	}
	if exp.Date == "" {
		exp.Date = now.UTC().Format(time.RFC3339)
	}

	if err := exp.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, exp); err != nil {
		return nil, err
	}

	return exp, nil
}

// Update applies changes to an existing expense owned by the user
func (s *Service) Update(ctx context.Context, exp *Expense) (*Expense, error) {
	existing, err := s.repo.GetByID(ctx, exp.UserID, exp.ID)
	if err != nil {
		return nil, err
	}

	existing.Description = exp.Description
	existing.Amount = exp.Amount
	existing.Currency = exp.Currency
	existing.Date = exp.Date
	existing.Category = exp.Category
	existing.GroupID = exp.GroupID
	existing.TotalExpense = exp.TotalExpense
	existing.OwedShare = exp.OwedShare
	existing.PaidShare = exp.PaidShare
	existing.UpdatedAt = time.Now()

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// Delete removes one expense owned by the user
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// DeleteAll removes all of the user's expenses and returns the count
func (s *Service) DeleteAll(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.DeleteAllByUser(ctx, userID)
}

// ExistsBySplitwiseID satisfies the import pipeline's read-only duplicate
// check (importer.TransactionStore).
func (s *Service) ExistsBySplitwiseID(ctx context.Context, userID uuid.UUID, splitwiseID string) (bool, error) {
	return s.repo.ExistsBySplitwiseID(ctx, userID, splitwiseID)
}

// CountByGroup counts the user's expenses in a group
func (s *Service) CountByGroup(ctx context.Context, userID, groupID uuid.UUID) (int, error) {
	return s.repo.CountByGroup(ctx, userID, groupID)
}

// ClearGroup detaches the user's expenses from a deleted group
func (s *Service) ClearGroup(ctx context.Context, userID, groupID uuid.UUID) error {
	return s.repo.ClearGroup(ctx, userID, groupID)
}
