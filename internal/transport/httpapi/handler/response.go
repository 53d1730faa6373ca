package handler

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/avolkoff/moneymap/internal/shared/errors"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, ErrorResponse{Error: message}, statusCode)
}

// statusForCode maps application error codes onto HTTP status codes
func statusForCode(code string) int {
	switch code {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError renders an error coming out of a service layer. Typed
// AppErrors carry their own code and message; anything else gets the fallback.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		respondError(w, appErr.Message, statusForCode(appErr.Code))
		return
	}
	respondError(w, fallback, http.StatusInternalServerError)
}
