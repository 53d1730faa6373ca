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

	"github.com/avolkoff/moneymap/internal/platform/user"
	"github.com/avolkoff/moneymap/internal/transport/httpapi/handler"
)

type stubUserService struct {
	registerFn func(ctx context.Context, email, password, name string) (*user.User, error)
	loginFn    func(ctx context.Context, email, password string) (*user.User, error)
	getByIDFn  func(ctx context.Context, id uuid.UUID) (*user.User, error)
}

func (s *stubUserService) Register(ctx context.Context, email, password, name string) (*user.User, error) {
	return s.registerFn(ctx, email, password, name)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*user.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubUserService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.getByIDFn(ctx, id)
}

type stubJWTService struct{}

func (s *stubJWTService) GenerateToken(userID uuid.UUID, email string) (string, error) {
	return "test-token", nil
}

func TestAuthHandler_Register(t *testing.T) {
	userID := uuid.New()
	svc := &stubUserService{
		registerFn: func(_ context.Context, email, password, name string) (*user.User, error) {
			return &user.User{ID: userID, Email: email, Name: name}, nil
		},
	}
	h := handler.NewAuthHandler(svc, &stubJWTService{})

	body, _ := json.Marshal(handler.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
		Name:     "Alice",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp handler.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "test-token", resp.Token)
	assert.Equal(t, userID.String(), resp.User.ID)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	svc := &stubUserService{
		registerFn: func(_ context.Context, _, _, _ string) (*user.User, error) {
			return nil, user.ErrUserAlreadyExists
		},
	}
	h := handler.NewAuthHandler(svc, &stubJWTService{})

	body, _ := json.Marshal(handler.RegisterRequest{Email: "alice@example.com", Password: "hunter2hunter2"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	h := handler.NewAuthHandler(&stubUserService{}, &stubJWTService{})

	tests := []struct {
		name string
		body handler.RegisterRequest
	}{
		{"missing email", handler.RegisterRequest{Password: "hunter2hunter2"}},
		{"missing password", handler.RegisterRequest{Email: "alice@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			h.Register(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &stubUserService{
		loginFn: func(_ context.Context, _, _ string) (*user.User, error) {
			return nil, user.ErrInvalidPassword
		},
	}
	h := handler.NewAuthHandler(svc, &stubJWTService{})

	body, _ := json.Marshal(handler.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "invalid email or password", resp.Error)
}

func TestAuthHandler_Login(t *testing.T) {
	userID := uuid.New()
	svc := &stubUserService{
		loginFn: func(_ context.Context, email, _ string) (*user.User, error) {
			return &user.User{ID: userID, Email: email}, nil
		},
	}
	h := handler.NewAuthHandler(svc, &stubJWTService{})

	body, _ := json.Marshal(handler.LoginRequest{Email: "alice@example.com", Password: "hunter2hunter2"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "test-token", resp.Token)
}
