package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkoff/moneymap/internal/platform/income"
)

// IncomeRepository implements the income repository interface using PostgreSQL
type IncomeRepository struct {
	pool *pgxpool.Pool
}

// NewIncomeRepository creates a new PostgreSQL income repository
func NewIncomeRepository(pool *pgxpool.Pool) *IncomeRepository {
	return &IncomeRepository{pool: pool}
}

// Create creates a new income record in the database
func (r *IncomeRepository) Create(ctx context.Context, inc *income.Income) error {
	query := `
		INSERT INTO income (id, user_id, description, amount, currency, date, category, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		inc.ID,
		inc.UserID,
		inc.Description,
		inc.Amount,
		inc.Currency,
		inc.Date,
		inc.Category,
		inc.Source,
		inc.CreatedAt,
		inc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}

	return nil
}

// GetByID retrieves an income record owned by the given user
func (r *IncomeRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*income.Income, error) {
	query := `
		SELECT id, user_id, description, amount, currency, date, category, source, created_at, updated_at
		FROM income
		WHERE id = $1 AND user_id = $2
	`

	var inc income.Income
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&inc.ID,
		&inc.UserID,
		&inc.Description,
		&inc.Amount,
		&inc.Currency,
		&inc.Date,
		&inc.Category,
		&inc.Source,
		&inc.CreatedAt,
		&inc.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, income.ErrIncomeNotFound
		}
		return nil, fmt.Errorf("failed to get income: %w", err)
	}

	return &inc, nil
}

// ListByUser returns one page of the user's income records, newest first, with the total count
func (r *IncomeRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]income.Income, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM income WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count income: %w", err)
	}

	query := `
		SELECT id, user_id, description, amount, currency, date, category, source, created_at, updated_at
		FROM income
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list income: %w", err)
	}
	defer rows.Close()

	var incomes []income.Income
	for rows.Next() {
		var inc income.Income
		if err := rows.Scan(&inc.ID, &inc.UserID, &inc.Description, &inc.Amount, &inc.Currency, &inc.Date, &inc.Category, &inc.Source, &inc.CreatedAt, &inc.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read income rows: %w", err)
	}

	return incomes, total, nil
}

// Update updates an income record owned by the given user
func (r *IncomeRepository) Update(ctx context.Context, inc *income.Income) error {
	query := `
		UPDATE income
		SET description = $3, amount = $4, currency = $5, date = $6, category = $7, source = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		inc.ID,
		inc.UserID,
		inc.Description,
		inc.Amount,
		inc.Currency,
		inc.Date,
		inc.Category,
		inc.Source,
		inc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}

	if result.RowsAffected() == 0 {
		return income.ErrIncomeNotFound
	}

	return nil
}

// Delete deletes an income record owned by the given user
func (r *IncomeRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM income WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}

	if result.RowsAffected() == 0 {
		return income.ErrIncomeNotFound
	}

	return nil
}
