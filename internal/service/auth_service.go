package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blog/internal/models"
	"blog/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows.
var (
	ErrUsernameTaken   = errors.New("username is already taken")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	// ErrPasswordRejected is a new password that cannot be hashed: blank or
	// longer than bcrypt's 72-byte limit.
	ErrPasswordRejected = errors.New("password cannot be used")
)

type AuthService struct {
	users repository.Credentials
	cost  int
}

func NewAuthService(users repository.Credentials) *AuthService {
	return &AuthService{users: users, cost: bcrypt.DefaultCost}
}

// Register hashes the password and stores a new user. An existing username
// yields ErrUsernameTaken whether caught by the pre-check or by the store.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (int64, error) {
	existing, err := s.users.GetByUsername(ctx, p.Username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrUsernameTaken
	}

	hash, err := hashPassword(p.Password, s.cost)
	if err != nil {
		return 0, err
	}

	id, err := s.users.Create(ctx, models.User{
		Name:         p.Name,
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, repository.ErrDuplicateUsername) {
		return 0, ErrUsernameTaken
	}
	return id, err
}

// Authenticate returns nil when username exists and password matches its hash.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) error {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// helper: salted one-way hash
func hashPassword(password string, cost int) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: blank", ErrPasswordRejected)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %v", ErrPasswordRejected, err)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: constant-time comparison against the stored hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
