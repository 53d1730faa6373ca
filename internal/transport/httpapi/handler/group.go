package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avolkoff/moneymap/internal/platform/group"
	"github.com/avolkoff/moneymap/internal/transport/httpapi/middleware"
)

// GroupServiceInterface defines the group operations needed by GroupHandler
type GroupServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]group.GroupWithCount, error)
	Create(ctx context.Context, g *group.Group) (*group.Group, error)
	Update(ctx context.Context, g *group.Group) (*group.GroupWithCount, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// GroupHandler handles group-related HTTP requests
type GroupHandler struct {
	service GroupServiceInterface
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(service GroupServiceInterface) *GroupHandler {
	return &GroupHandler{service: service}
}

// GroupRequest represents the create/update request body
type GroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// GroupResponse represents a group in responses
type GroupResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	ExpenseCount int    `json:"expense_count"`
}

// List returns the user's groups (GET /groups)
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	groups, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, "failed to list groups")
		return
	}

	resp := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, GroupResponse{
			ID:           g.ID.String(),
			Name:         g.Name,
			Description:  g.Description,
			Color:        g.Color,
			ExpenseCount: g.ExpenseCount,
		})
	}

	respondJSON(w, resp, http.StatusOK)
}

// Create stores a new group (POST /groups)
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), &group.Group{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		if err == group.ErrEmptyName {
			respondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondError(w, "failed to create group", http.StatusInternalServerError)
		return
	}

	respondJSON(w, GroupResponse{
		ID:          created.ID.String(),
		Name:        created.Name,
		Description: created.Description,
		Color:       created.Color,
	}, http.StatusCreated)
}

// Update modifies a group (PUT /groups/{id})
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid group id", http.StatusBadRequest)
		return
	}

	var req GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), &group.Group{
		ID:          id,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		if err == group.ErrGroupNotFound {
			respondError(w, "group not found", http.StatusNotFound)
			return
		}
		respondError(w, "failed to update group", http.StatusInternalServerError)
		return
	}

	respondJSON(w, GroupResponse{
		ID:           updated.ID.String(),
		Name:         updated.Name,
		Description:  updated.Description,
		Color:        updated.Color,
		ExpenseCount: updated.ExpenseCount,
	}, http.StatusOK)
}

// Delete removes a group and detaches its expenses (DELETE /groups/{id})
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid group id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if err == group.ErrGroupNotFound {
			respondError(w, "group not found", http.StatusNotFound)
			return
		}
		respondServiceError(w, err, "failed to delete group")
		return
	}

	respondJSON(w, map[string]string{"message": "group deleted"}, http.StatusOK)
}
