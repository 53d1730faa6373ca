package group

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for group persistence operations
type Repository interface {
	// Create creates a new group
	Create(ctx context.Context, g *Group) error

	// GetByID retrieves a group owned by the given user
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Group, error)

	// ListByUser returns all of the user's groups
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Group, error)

	// Update updates a group owned by the given user
	Update(ctx context.Context, g *Group) error

	// Delete deletes a group owned by the given user
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ExpenseLinker is the slice of the expense service the group service needs:
// counting members for display and detaching them when a group is deleted.
type ExpenseLinker interface {
	CountByGroup(ctx context.Context, userID, groupID uuid.UUID) (int, error)
	ClearGroup(ctx context.Context, userID, groupID uuid.UUID) error
}
