package income

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for income persistence operations
type Repository interface {
	// Create creates a new income record
	Create(ctx context.Context, inc *Income) error

	// GetByID retrieves an income record owned by the given user
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Income, error)

	// ListByUser returns one page of the user's income records with the total count
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Income, int, error)

	// Update updates an income record owned by the given user
	Update(ctx context.Context, inc *Income) error

	// Delete deletes an income record owned by the given user
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
