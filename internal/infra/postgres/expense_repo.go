package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkoff/moneymap/internal/platform/expense"
)

// ExpenseRepository implements the expense repository interface using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new PostgreSQL expense repository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `id, user_id, description, amount, currency, date, category, group_id, type, total_expense, owed_share, paid_share, splitwise_id, created_at, updated_at`

// Create creates a new expense in the database
func (r *ExpenseRepository) Create(ctx context.Context, exp *expense.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		exp.ID,
		exp.UserID,
		exp.Description,
		exp.Amount,
		exp.Currency,
		exp.Date,
		exp.Category,
		exp.GroupID,
		exp.Type,
		exp.TotalExpense,
		exp.OwedShare,
		exp.PaidShare,
		exp.SplitwiseID,
		exp.CreatedAt,
		exp.UpdatedAt,
	)
	if err != nil {
		// The (user_id, splitwise_id) unique index rejects double imports
		if isUniqueViolation(err) {
			return expense.ErrDuplicateImport
		}
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// GetByID retrieves an expense owned by the given user
func (r *ExpenseRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*expense.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE id = $1 AND user_id = $2
	`

	return scanExpense(r.pool.QueryRow(ctx, query, id, userID))
}

// ListByUser returns one page of the user's expenses, newest first, with the total count
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]expense.Expense, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM expenses WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []expense.Expense
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, *exp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read expense rows: %w", err)
	}

	return expenses, total, nil
}

func scanExpense(row pgx.Row) (*expense.Expense, error) {
	var exp expense.Expense
	var groupID *uuid.UUID
	var splitwiseID sql.NullString

	err := row.Scan(
		&exp.ID,
		&exp.UserID,
		&exp.Description,
		&exp.Amount,
		&exp.Currency,
		&exp.Date,
		&exp.Category,
		&groupID,
		&exp.Type,
		&exp.TotalExpense,
		&exp.OwedShare,
		&exp.PaidShare,
		&splitwiseID,
		&exp.CreatedAt,
		&exp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, expense.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	exp.GroupID = groupID
	if splitwiseID.Valid {
		exp.SplitwiseID = &splitwiseID.String
	}

	return &exp, nil
}

// Update updates an expense owned by the given user
func (r *ExpenseRepository) Update(ctx context.Context, exp *expense.Expense) error {
	query := `
		UPDATE expenses
		SET description = $3, amount = $4, currency = $5, date = $6, category = $7,
		    group_id = $8, total_expense = $9, owed_share = $10, paid_share = $11, updated_at = $12
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		exp.ID,
		exp.UserID,
		exp.Description,
		exp.Amount,
		exp.Currency,
		exp.Date,
		exp.Category,
		exp.GroupID,
		exp.TotalExpense,
		exp.OwedShare,
		exp.PaidShare,
		exp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	if result.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}

// Delete deletes an expense owned by the given user
func (r *ExpenseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM expenses WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if result.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}

// DeleteAllByUser deletes all of the user's expenses and returns the count
func (r *ExpenseRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expenses: %w", err)
	}

	return int(result.RowsAffected()), nil
}

// ExistsBySplitwiseID checks whether the user already imported the given Splitwise expense
func (r *ExpenseRepository) ExistsBySplitwiseID(ctx context.Context, userID uuid.UUID, splitwiseID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM expenses WHERE user_id = $1 AND splitwise_id = $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, splitwiseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check expense existence: %w", err)
	}

	return exists, nil
}

// CountByGroup counts the user's expenses in a group
func (r *ExpenseRepository) CountByGroup(ctx context.Context, userID, groupID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM expenses WHERE user_id = $1 AND group_id = $2`

	var count int
	err := r.pool.QueryRow(ctx, query, userID, groupID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count group expenses: %w", err)
	}

	return count, nil
}

// ClearGroup detaches the user's expenses from a group
func (r *ExpenseRepository) ClearGroup(ctx context.Context, userID, groupID uuid.UUID) error {
	query := `UPDATE expenses SET group_id = NULL WHERE user_id = $1 AND group_id = $2`

	if _, err := r.pool.Exec(ctx, query, userID, groupID); err != nil {
		return fmt.Errorf("failed to clear group: %w", err)
	}

	return nil
}
