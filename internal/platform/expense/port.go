package expense

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for expense persistence operations
type Repository interface {
	// Create creates a new expense
	Create(ctx context.Context, exp *Expense) error

	// GetByID retrieves an expense owned by the given user
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Expense, error)

	// ListByUser returns one page of the user's expenses sorted by date
	// descending, plus the total count
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Expense, int, error)

	// Update updates an expense owned by the given user
	Update(ctx context.Context, exp *Expense) error

	// Delete deletes one expense owned by the given user
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// DeleteAllByUser deletes all of the user's expenses and returns the
	// number removed
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int, error)

	// ExistsBySplitwiseID reports whether the user already imported the
	// given Splitwise record
	ExistsBySplitwiseID(ctx context.Context, userID uuid.UUID, splitwiseID string) (bool, error)

	// CountByGroup counts the user's expenses assigned to a group
	CountByGroup(ctx context.Context, userID, groupID uuid.UUID) (int, error)

	// ClearGroup detaches all of the user's expenses from a group
	ClearGroup(ctx context.Context, userID, groupID uuid.UUID) error
}
