package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"blog/internal/models"
	"blog/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// mockUserRepo is a lightweight in-test mock for repository.Credentials.
type mockUserRepo struct {
	CreateFn        func(u models.User) (int64, error)
	GetByUsernameFn func(username string) (*models.User, error)

	created  []models.User
	getCalls []string
}

func (m *mockUserRepo) Create(_ context.Context, u models.User) (int64, error) {
	m.created = append(m.created, u)
	return m.CreateFn(u)
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetByUsernameFn(username)
}

func noUser(string) (*models.User, error) { return nil, nil }

func newTestAuthService(repo repository.Credentials) *AuthService {
	s := NewAuthService(repo)
	s.cost = bcrypt.MinCost
	return s
}

var aliceParams = RegisterParams{Name: "Alice A", Username: "alice", Email: "alice@example.com", Password: "Secret123"}

// --- Register tests ---

func TestAuthService_Register_SuccessHashesPassword(t *testing.T) {
	mock := &mockUserRepo{
		GetByUsernameFn: noUser,
		CreateFn:        func(models.User) (int64, error) { return 42, nil },
	}
	svc := newTestAuthService(mock)

	id, err := svc.Register(context.Background(), aliceParams)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if len(mock.created) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.created))
	}
	u := mock.created[0]
	if u.Username != "alice" || u.Name != "Alice A" || u.Email != "alice@example.com" {
		t.Errorf("unexpected user stored: %+v", u)
	}
	if u.PasswordHash == "Secret123" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(u.PasswordHash, "Secret123"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}
}

func TestAuthService_Register_UsernameTakenPrecheck(t *testing.T) {
	mock := &mockUserRepo{
		GetByUsernameFn: func(string) (*models.User, error) { return &models.User{ID: 1, Username: "alice"}, nil },
		CreateFn: func(models.User) (int64, error) {
			t.Fatal("Create should not be called for a taken username")
			return 0, nil
		},
	}
	svc := newTestAuthService(mock)

	_, err := svc.Register(context.Background(), aliceParams)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Register_UsernameTakenRace(t *testing.T) {
	mock := &mockUserRepo{
		GetByUsernameFn: noUser,
		CreateFn: func(models.User) (int64, error) {
			return 0, fmt.Errorf("insert user: %w", repository.ErrDuplicateUsername)
		},
	}
	svc := newTestAuthService(mock)

	_, err := svc.Register(context.Background(), aliceParams)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Register_EmptyPassword(t *testing.T) {
	mock := &mockUserRepo{
		GetByUsernameFn: noUser,
		CreateFn: func(models.User) (int64, error) {
			t.Fatal("Create should not be called for empty password")
			return 0, nil
		},
	}
	svc := newTestAuthService(mock)

	p := aliceParams
	p.Password = "   "
	if _, err := svc.Register(context.Background(), p); !errors.Is(err, ErrPasswordRejected) {
		t.Fatalf("expected ErrPasswordRejected for blank password, got %v", err)
	}
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	mock := &mockUserRepo{
		GetByUsernameFn: noUser,
		CreateFn: func(models.User) (int64, error) {
			t.Fatal("Create should not be called for an unhashable password")
			return 0, nil
		},
	}
	svc := newTestAuthService(mock)

	p := aliceParams
	p.Password = strings.Repeat("a", 80)
	if _, err := svc.Register(context.Background(), p); !errors.Is(err, ErrPasswordRejected) {
		t.Fatalf("expected ErrPasswordRejected for 80-byte password, got %v", err)
	}
}

func TestAuthService_Register_RepoErrors(t *testing.T) {
	lookupFails := &mockUserRepo{
		GetByUsernameFn: func(string) (*models.User, error) { return nil, errors.New("db down") },
	}
	if _, err := newTestAuthService(lookupFails).Register(context.Background(), aliceParams); err == nil {
		t.Fatalf("expected lookup error, got nil")
	}

	createFails := &mockUserRepo{
		GetByUsernameFn: noUser,
		CreateFn:        func(models.User) (int64, error) { return 0, errors.New("db down") },
	}
	_, err := newTestAuthService(createFails).Register(context.Background(), aliceParams)
	if err == nil || errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected plain repo error, got %v", err)
	}
}

// --- Authenticate tests ---

func TestAuthService_Authenticate(t *testing.T) {
	hash, err := hashPassword("Secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	stored := &models.User{ID: 7, Username: "alice", PasswordHash: hash}

	tests := []struct {
		name     string
		lookup   func(string) (*models.User, error)
		password string
		wantErr  error
		anyErr   bool
	}{
		{name: "success", lookup: func(string) (*models.User, error) { return stored, nil }, password: "Secret123"},
		{name: "wrong password", lookup: func(string) (*models.User, error) { return stored, nil }, password: "secret123", wantErr: ErrInvalidPassword},
		{name: "unknown user", lookup: noUser, password: "Secret123", wantErr: ErrUserNotFound},
		{name: "repo error", lookup: func(string) (*models.User, error) { return nil, errors.New("query failed") }, password: "x", anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(&mockUserRepo{GetByUsernameFn: tt.lookup})
			err := svc.Authenticate(context.Background(), "alice", tt.password)
			switch {
			case tt.anyErr:
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestHashPassword_IsSalted(t *testing.T) {
	a, err := hashPassword("same", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	b, err := hashPassword("same", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password should differ by salt")
	}
	if verifyPassword(a, "same") != nil || verifyPassword(b, "same") != nil {
		t.Fatalf("both hashes must verify")
	}
}
