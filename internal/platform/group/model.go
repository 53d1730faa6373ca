package group

import (
	"time"

	"github.com/google/uuid"
)

// DefaultColor is assigned to groups created without an explicit color
const DefaultColor = "#10b981"

// Group is a user-defined expense grouping
type Group struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate validates the group
func (g *Group) Validate() error {
	if g.Name == "" {
		return ErrEmptyName
	}
	return nil
}
