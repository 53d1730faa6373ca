package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/avolkoff/moneymap/internal/platform/importer"
	"github.com/avolkoff/moneymap/internal/platform/user"
	"github.com/avolkoff/moneymap/internal/transport/httpapi/middleware"
	"github.com/avolkoff/moneymap/pkg/logger"
)

// CredentialServiceInterface defines the user operations needed for Splitwise credentials
type CredentialServiceInterface interface {
	SaveSplitwiseCredentials(ctx context.Context, id uuid.UUID, apiKey string, apiSecret *string) error
	SplitwiseKey(ctx context.Context, id uuid.UUID) (string, error)
}

// ImportServiceInterface defines the import pipeline operations
type ImportServiceInterface interface {
	Import(ctx context.Context, userID uuid.UUID, apiKey string, req importer.Request) (*importer.Result, error)
}

// SplitwiseHandler handles Splitwise credential and import HTTP requests
type SplitwiseHandler struct {
	credentials CredentialServiceInterface
	imports     ImportServiceInterface
	logger      *logger.Logger
}

// NewSplitwiseHandler creates a new Splitwise handler
func NewSplitwiseHandler(credentials CredentialServiceInterface, imports ImportServiceInterface, log *logger.Logger) *SplitwiseHandler {
	return &SplitwiseHandler{
		credentials: credentials,
		imports:     imports,
		logger:      log.WithField("component", "splitwise_handler"),
	}
}

// CredentialsRequest represents the credentials request body
type CredentialsRequest struct {
	APIKey    string  `json:"api_key"`
	APISecret *string `json:"api_secret,omitempty"`
}

// SaveCredentials stores the user's Splitwise API key (POST /splitwise/credentials)
func (h *SplitwiseHandler) SaveCredentials(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.APIKey == "" {
		respondError(w, "api_key is required", http.StatusBadRequest)
		return
	}

	if err := h.credentials.SaveSplitwiseCredentials(r.Context(), userID, req.APIKey, req.APISecret); err != nil {
		if err == user.ErrUserNotFound {
			respondError(w, "user not found", http.StatusNotFound)
			return
		}
		respondError(w, "failed to save credentials", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]string{"message": "Splitwise credentials saved"}, http.StatusOK)
}

// Import runs the Splitwise import pipeline (POST /splitwise/import)
func (h *SplitwiseHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Body is optional; absent bounds mean import everything
	var req importer.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	apiKey, err := h.credentials.SplitwiseKey(r.Context(), userID)
	if err != nil {
		if err == user.ErrNoSplitwiseKey {
			respondError(w, "no Splitwise API key on file, save your credentials first", http.StatusBadRequest)
			return
		}
		respondError(w, "failed to load credentials", http.StatusInternalServerError)
		return
	}

	result, err := h.imports.Import(r.Context(), userID, apiKey, req)
	if err != nil {
		h.respondImportError(w, err)
		return
	}

	respondJSON(w, result, http.StatusOK)
}

// respondImportError maps pipeline errors onto HTTP status codes
func (h *SplitwiseHandler) respondImportError(w http.ResponseWriter, err error) {
	var authErr *importer.AuthError
	if errors.As(err, &authErr) {
		respondError(w, authErr.Message, http.StatusUnauthorized)
		return
	}

	var rangeErr *importer.InvalidRangeError
	if errors.As(err, &rangeErr) {
		respondError(w, rangeErr.Error(), http.StatusBadRequest)
		return
	}

	var upstreamErr *importer.UpstreamError
	if errors.As(err, &upstreamErr) {
		respondError(w, upstreamErr.Message, http.StatusBadGateway)
		return
	}

	if importer.IsTransportError(err) {
		respondError(w, "could not reach Splitwise, please try again later", http.StatusBadGateway)
		return
	}

	h.logger.Error("import failed", "error", err)
	respondError(w, "import failed", http.StatusInternalServerError)
}
