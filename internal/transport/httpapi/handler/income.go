package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avolkoff/moneymap/internal/platform/income"
	"github.com/avolkoff/moneymap/internal/transport/httpapi/middleware"
)

// IncomeServiceInterface defines the income operations needed by IncomeHandler
type IncomeServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID, page, limit int) (*income.Page, error)
	Create(ctx context.Context, inc *income.Income) (*income.Income, error)
	Update(ctx context.Context, inc *income.Income) (*income.Income, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// IncomeHandler handles income-related HTTP requests
type IncomeHandler struct {
	service IncomeServiceInterface
}

// NewIncomeHandler creates a new income handler
func NewIncomeHandler(service IncomeServiceInterface) *IncomeHandler {
	return &IncomeHandler{service: service}
}

// IncomeRequest represents the create/update request body
type IncomeRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Source      string          `json:"source"`
}

// IncomeResponse represents an income record in responses
type IncomeResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Source      string          `json:"source"`
}

// IncomePageResponse represents one page of income records
type IncomePageResponse struct {
	Incomes    []IncomeResponse `json:"incomes"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

func incomeResponse(inc *income.Income) IncomeResponse {
	return IncomeResponse{
		ID:          inc.ID.String(),
		Description: inc.Description,
		Amount:      inc.Amount,
		Currency:    inc.Currency,
		Date:        inc.Date,
		Category:    inc.Category,
		Source:      inc.Source,
	}
}

// List returns one page of the user's income records (GET /income)
func (h *IncomeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.service.List(r.Context(), userID, page, limit)
	if err != nil {
		respondServiceError(w, err, "failed to list income")
		return
	}

	resp := IncomePageResponse{
		Incomes:    make([]IncomeResponse, 0, len(result.Incomes)),
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	}
	for i := range result.Incomes {
		resp.Incomes = append(resp.Incomes, incomeResponse(&result.Incomes[i]))
	}

	respondJSON(w, resp, http.StatusOK)
}

// Create stores a new income record (POST /income)
func (h *IncomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req IncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), &income.Income{
		UserID:      userID,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Date:        req.Date,
		Category:    req.Category,
		Source:      req.Source,
	})
	if err != nil {
		switch err {
		case income.ErrEmptyDescription, income.ErrNegativeAmount:
			respondError(w, err.Error(), http.StatusBadRequest)
		default:
			respondError(w, "failed to create income", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, incomeResponse(created), http.StatusCreated)
}

// Update modifies an income record (PUT /income/{id})
func (h *IncomeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid income id", http.StatusBadRequest)
		return
	}

	var req IncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), &income.Income{
		ID:          id,
		UserID:      userID,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Date:        req.Date,
		Category:    req.Category,
		Source:      req.Source,
	})
	if err != nil {
		switch err {
		case income.ErrIncomeNotFound:
			respondError(w, "income not found", http.StatusNotFound)
		case income.ErrEmptyDescription, income.ErrNegativeAmount:
			respondError(w, err.Error(), http.StatusBadRequest)
		default:
			respondError(w, "failed to update income", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, incomeResponse(updated), http.StatusOK)
}

// Delete removes an income record (DELETE /income/{id})
func (h *IncomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid income id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if err == income.ErrIncomeNotFound {
			respondError(w, "income not found", http.StatusNotFound)
			return
		}
		respondError(w, "failed to delete income", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]string{"message": "income deleted"}, http.StatusOK)
}
