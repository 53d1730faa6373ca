package income

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

// Service handles income business logic
type Service struct {
	repo Repository
}

// NewService creates a new income service
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Page is one page of a user's income records
type Page struct {
	Incomes    []Income
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// List returns one page of the user's income records, newest first
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

	incomes, total, err := s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list income", err)
	}

	return &Page{
		Incomes:    incomes,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// Create stores a new income record for the user
func (s *Service) Create(ctx context.Context, inc *Income) (*Income, error) {
	inc.ID = uuid.New()
	now := time.Now()
	inc.CreatedAt = now
	inc.UpdatedAt = now

	if inc.Currency == "" {
		inc.Currency = "USD"
	}
	if inc.Date == "" {
		inc.Date = now.UTC().Format(time.RFC3339)
	}

	if err := inc.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, inc); err != nil {
		return nil, err
	}

	return inc, nil
}

// Update applies changes to an existing income record owned by the user
func (s *Service) Update(ctx context.Context, inc *Income) (*Income, error) {
	existing, err := s.repo.GetByID(ctx, inc.UserID, inc.ID)
	if err != nil {
		return nil, err
	}

	existing.Description = inc.Description
	existing.Amount = inc.Amount
	existing.Currency = inc.Currency
	existing.Date = inc.Date
	existing.Category = inc.Category
	existing.Source = inc.Source
	existing.UpdatedAt = time.Now()

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// Delete removes one income record owned by the user
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}
