package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkoff/moneymap/internal/platform/group"
)

// GroupRepository implements the group repository interface using PostgreSQL
type GroupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository creates a new PostgreSQL group repository
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

// Create creates a new group in the database
func (r *GroupRepository) Create(ctx context.Context, g *group.Group) error {
	query := `
		INSERT INTO groups (id, user_id, name, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		g.ID,
		g.UserID,
		g.Name,
		g.Description,
		g.Color,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	return nil
}

// GetByID retrieves a group owned by the given user
func (r *GroupRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*group.Group, error) {
	query := `
		SELECT id, user_id, name, description, color, created_at, updated_at
		FROM groups
		WHERE id = $1 AND user_id = $2
	`

	var g group.Group
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&g.ID,
		&g.UserID,
		&g.Name,
		&g.Description,
		&g.Color,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, group.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return &g, nil
}

// ListByUser returns all of the user's groups, newest first
func (r *GroupRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]group.Group, error) {
	query := `
		SELECT id, user_id, name, description, color, created_at, updated_at
		FROM groups
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []group.Group
	for rows.Next() {
		var g group.Group
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Description, &g.Color, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read group rows: %w", err)
	}

	return groups, nil
}

// Update updates a group owned by the given user
func (r *GroupRepository) Update(ctx context.Context, g *group.Group) error {
	query := `
		UPDATE groups
		SET name = $3, description = $4, color = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		g.ID,
		g.UserID,
		g.Name,
		g.Description,
		g.Color,
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	if result.RowsAffected() == 0 {
		return group.ErrGroupNotFound
	}

	return nil
}

// Delete deletes a group owned by the given user
func (r *GroupRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM groups WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	if result.RowsAffected() == 0 {
		return group.ErrGroupNotFound
	}

	return nil
}
