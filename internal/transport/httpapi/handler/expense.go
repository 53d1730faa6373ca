package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avolkoff/moneymap/internal/platform/expense"
	"github.com/avolkoff/moneymap/internal/transport/httpapi/middleware"
)

// ExpenseServiceInterface defines the expense operations needed by ExpenseHandler
type ExpenseServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID, page, limit int) (*expense.Page, error)
	Create(ctx context.Context, exp *expense.Expense) (*expense.Expense, error)
	Update(ctx context.Context, exp *expense.Expense) (*expense.Expense, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int, error)
}

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	service ExpenseServiceInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(service ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// ExpenseRequest represents the create/update request body
type ExpenseRequest struct {
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Date         string          `json:"date"`
	Category     string          `json:"category"`
	GroupID      *uuid.UUID      `json:"group_id,omitempty"`
	Type         string          `json:"type,omitempty"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	OwedShare    decimal.Decimal `json:"owed_share"`
	PaidShare    decimal.Decimal `json:"paid_share"`
	SplitwiseID  *string         `json:"splitwise_id,omitempty"`
}

// ExpenseResponse represents an expense in responses
type ExpenseResponse struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Date         string          `json:"date"`
	Category     string          `json:"category"`
	GroupID      *uuid.UUID      `json:"group_id,omitempty"`
	Type         string          `json:"type"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	OwedShare    decimal.Decimal `json:"owed_share"`
	PaidShare    decimal.Decimal `json:"paid_share"`
	SplitwiseID  *string         `json:"splitwise_id,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

// ExpensePageResponse represents one page of expenses
type ExpensePageResponse struct {
	Expenses   []ExpenseResponse `json:"expenses"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

func expenseResponse(exp *expense.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:           exp.ID.String(),
		Description:  exp.Description,
		Amount:       exp.Amount,
		Currency:     exp.Currency,
		Date:         exp.Date,
		Category:     exp.Category,
		GroupID:      exp.GroupID,
		Type:         exp.Type,
		TotalExpense: exp.TotalExpense,
		OwedShare:    exp.OwedShare,
		PaidShare:    exp.PaidShare,
		SplitwiseID:  exp.SplitwiseID,
		CreatedAt:    exp.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// List returns one page of the user's expenses (GET /expenses)
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.service.List(r.Context(), userID, page, limit)
	if err != nil {
		respondServiceError(w, err, "failed to list expenses")
		return
	}

	resp := ExpensePageResponse{
		Expenses:   make([]ExpenseResponse, 0, len(result.Expenses)),
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	}
	for i := range result.Expenses {
		resp.Expenses = append(resp.Expenses, expenseResponse(&result.Expenses[i]))
	}

	respondJSON(w, resp, http.StatusOK)
}

// Create stores a new expense (POST /expenses)
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	exp := &expense.Expense{
		UserID:       userID,
		Description:  req.Description,
		Amount:       req.Amount,
		Currency:     req.Currency,
		Date:         req.Date,
		Category:     req.Category,
		GroupID:      req.GroupID,
		Type:         req.Type,
		TotalExpense: req.TotalExpense,
		OwedShare:    req.OwedShare,
		PaidShare:    req.PaidShare,
		SplitwiseID:  req.SplitwiseID,
	}

	created, err := h.service.Create(r.Context(), exp)
	if err != nil {
		switch err {
		case expense.ErrEmptyDescription, expense.ErrNegativeAmount:
			respondError(w, err.Error(), http.StatusBadRequest)
		case expense.ErrDuplicateImport:
			respondError(w, "expense already imported", http.StatusConflict)
		default:
			respondError(w, "failed to create expense", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, expenseResponse(created), http.StatusCreated)
}

// Update modifies an expense (PUT /expenses/{id})
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid expense id", http.StatusBadRequest)
		return
	}

	var req ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	exp := &expense.Expense{
		ID:           id,
		UserID:       userID,
		Description:  req.Description,
		Amount:       req.Amount,
		Currency:     req.Currency,
		Date:         req.Date,
		Category:     req.Category,
		GroupID:      req.GroupID,
		TotalExpense: req.TotalExpense,
		OwedShare:    req.OwedShare,
		PaidShare:    req.PaidShare,
	}

	updated, err := h.service.Update(r.Context(), exp)
	if err != nil {
		switch err {
		case expense.ErrExpenseNotFound:
			respondError(w, "expense not found", http.StatusNotFound)
		case expense.ErrEmptyDescription, expense.ErrNegativeAmount:
			respondError(w, err.Error(), http.StatusBadRequest)
		default:
			respondError(w, "failed to update expense", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, expenseResponse(updated), http.StatusOK)
}

// Delete removes one expense (DELETE /expenses/{id})
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid expense id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if err == expense.ErrExpenseNotFound {
			respondError(w, "expense not found", http.StatusNotFound)
			return
		}
		respondError(w, "failed to delete expense", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]string{"message": "expense deleted"}, http.StatusOK)
}

// DeleteAll removes all of the user's expenses (DELETE /expenses)
func (h *ExpenseHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	deleted, err := h.service.DeleteAll(r.Context(), userID)
	if err != nil {
		respondError(w, "failed to delete expenses", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]int{"deleted": deleted}, http.StatusOK)
}
