package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkoff/moneymap/internal/platform/importer"
	"github.com/avolkoff/moneymap/internal/platform/user"
	"github.com/avolkoff/moneymap/internal/transport/httpapi/handler"
	"github.com/avolkoff/moneymap/internal/transport/httpapi/middleware"
	"github.com/avolkoff/moneymap/pkg/logger"
)

type stubCredentialService struct {
	saveFn func(ctx context.Context, id uuid.UUID, apiKey string, apiSecret *string) error
	keyFn  func(ctx context.Context, id uuid.UUID) (string, error)
}

func (s *stubCredentialService) SaveSplitwiseCredentials(ctx context.Context, id uuid.UUID, apiKey string, apiSecret *string) error {
	return s.saveFn(ctx, id, apiKey, apiSecret)
}

func (s *stubCredentialService) SplitwiseKey(ctx context.Context, id uuid.UUID) (string, error) {
	return s.keyFn(ctx, id)
}

type stubImportService struct {
	importFn func(ctx context.Context, userID uuid.UUID, apiKey string, req importer.Request) (*importer.Result, error)
}

func (s *stubImportService) Import(ctx context.Context, userID uuid.UUID, apiKey string, req importer.Request) (*importer.Result, error) {
	return s.importFn(ctx, userID, apiKey, req)
}

func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestSplitwiseHandler_SaveCredentials(t *testing.T) {
	userID := uuid.New()
	var savedKey string
	creds := &stubCredentialService{
		saveFn: func(_ context.Context, id uuid.UUID, apiKey string, _ *string) error {
			assert.Equal(t, userID, id)
			savedKey = apiKey
			return nil
		},
	}
	h := handler.NewSplitwiseHandler(creds, &stubImportService{}, logger.NewDefault("test"))

	body, _ := json.Marshal(handler.CredentialsRequest{APIKey: "sw-key"})
	rec := httptest.NewRecorder()

	h.SaveCredentials(rec, authedRequest(http.MethodPost, "/api/v1/splitwise/credentials", body, userID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sw-key", savedKey)
}

func TestSplitwiseHandler_SaveCredentials_MissingKey(t *testing.T) {
	h := handler.NewSplitwiseHandler(&stubCredentialService{}, &stubImportService{}, logger.NewDefault("test"))

	body, _ := json.Marshal(handler.CredentialsRequest{})
	rec := httptest.NewRecorder()

	h.SaveCredentials(rec, authedRequest(http.MethodPost, "/api/v1/splitwise/credentials", body, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSplitwiseHandler_Import(t *testing.T) {
	userID := uuid.New()
	creds := &stubCredentialService{
		keyFn: func(_ context.Context, _ uuid.UUID) (string, error) { return "sw-key", nil },
	}
	imports := &stubImportService{
		importFn: func(_ context.Context, id uuid.UUID, apiKey string, req importer.Request) (*importer.Result, error) {
			assert.Equal(t, userID, id)
			assert.Equal(t, "sw-key", apiKey)
			assert.Equal(t, "2024-01-01", req.StartDate)
			return &importer.Result{
				Message:      "Found 2 expenses. 1 expenses skipped (duplicates or invalid).",
				Count:        2,
				Skipped:      1,
				TotalFetched: 3,
			}, nil
		},
	}
	h := handler.NewSplitwiseHandler(creds, imports, logger.NewDefault("test"))

	body, _ := json.Marshal(importer.Request{StartDate: "2024-01-01"})
	rec := httptest.NewRecorder()

	h.Import(rec, authedRequest(http.MethodPost, "/api/v1/splitwise/import", body, userID))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp importer.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 1, resp.Skipped)
	assert.Equal(t, 3, resp.TotalFetched)
}

func TestSplitwiseHandler_Import_EmptyBody(t *testing.T) {
	called := false
	creds := &stubCredentialService{
		keyFn: func(_ context.Context, _ uuid.UUID) (string, error) { return "sw-key", nil },
	}
	imports := &stubImportService{
		importFn: func(_ context.Context, _ uuid.UUID, _ string, req importer.Request) (*importer.Result, error) {
			called = true
			assert.Empty(t, req.StartDate)
			assert.Empty(t, req.EndDate)
			return &importer.Result{}, nil
		},
	}
	h := handler.NewSplitwiseHandler(creds, imports, logger.NewDefault("test"))

	rec := httptest.NewRecorder()
	h.Import(rec, authedRequest(http.MethodPost, "/api/v1/splitwise/import", nil, uuid.New()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestSplitwiseHandler_Import_NoKeyOnFile(t *testing.T) {
	creds := &stubCredentialService{
		keyFn: func(_ context.Context, _ uuid.UUID) (string, error) { return "", user.ErrNoSplitwiseKey },
	}
	h := handler.NewSplitwiseHandler(creds, &stubImportService{}, logger.NewDefault("test"))

	rec := httptest.NewRecorder()
	h.Import(rec, authedRequest(http.MethodPost, "/api/v1/splitwise/import", nil, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSplitwiseHandler_Import_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"auth error", &importer.AuthError{Message: "invalid API key"}, http.StatusUnauthorized},
		{"invalid range", &importer.InvalidRangeError{Bound: "start_date", Value: "bogus"}, http.StatusBadRequest},
		{"upstream error", &importer.UpstreamError{StatusCode: 502, Message: "bad gateway"}, http.StatusBadGateway},
		{"transport error", &importer.TransportError{Err: context.DeadlineExceeded}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := &stubCredentialService{
				keyFn: func(_ context.Context, _ uuid.UUID) (string, error) { return "sw-key", nil },
			}
			imports := &stubImportService{
				importFn: func(_ context.Context, _ uuid.UUID, _ string, _ importer.Request) (*importer.Result, error) {
					return nil, tt.err
				},
			}
			h := handler.NewSplitwiseHandler(creds, imports, logger.NewDefault("test"))

			rec := httptest.NewRecorder()
			h.Import(rec, authedRequest(http.MethodPost, "/api/v1/splitwise/import", nil, uuid.New()))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSplitwiseHandler_Import_Unauthenticated(t *testing.T) {
	h := handler.NewSplitwiseHandler(&stubCredentialService{}, &stubImportService{}, logger.NewDefault("test"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/splitwise/import", nil)
	rec := httptest.NewRecorder()

	h.Import(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
