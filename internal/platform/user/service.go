package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service handles user business logic
type Service struct {
	repo Repository
}

// NewService creates a new user service
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Register registers a new user
func (s *Service) Register(ctx context.Context, email, password, name string) (*User, error) {
	if email == "" {
		return nil, ErrInvalidEmail
	}

	exists, err := s.repo.Exists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return nil, ErrUserAlreadyExists
	}

	u := &User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := u.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// Login authenticates a user with email and password
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			// Don't reveal that the user doesn't exist
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := u.CheckPassword(password); err != nil {
		return nil, err
	}

	// Updating the last-login timestamp is non-critical; the login itself
	// succeeded even if the write fails.
	u.UpdateLastLogin()
	_ = s.repo.Update(ctx, u)

	return u, nil
}

// GetByID retrieves a user by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// SaveSplitwiseCredentials stores the user's Splitwise API key and, when
// provided, the consumer secret used for the OAuth flow.
func (s *Service) SaveSplitwiseCredentials(ctx context.Context, id uuid.UUID, apiKey string, apiSecret *string) error {
	if apiKey == "" {
		return ErrNoSplitwiseKey
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	u.SplitwiseAPIKey = &apiKey
	if apiSecret != nil && *apiSecret != "" {
		u.SplitwiseAPISecret = apiSecret
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to save splitwise credentials: %w", err)
	}

	return nil
}

// SplitwiseKey returns the user's Splitwise API key, or ErrNoSplitwiseKey
// if the account has not been linked yet.
func (s *Service) SplitwiseKey(ctx context.Context, id uuid.UUID) (string, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if !u.HasSplitwiseKey() {
		return "", ErrNoSplitwiseKey
	}

	return *u.SplitwiseAPIKey, nil
}
