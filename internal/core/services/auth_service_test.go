package services

import (
	"context"
	"errors"
	"testing"

	"loco-verify/internal/adapters/persistence/models"
	"loco-verify/internal/config"
	"loco-verify/internal/core/domain"
	"loco-verify/internal/pkg/jwt"
	"loco-verify/internal/pkg/password"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 24,
		},
	}
	return NewAuthService(userRepo, cfg), userRepo
}

func TestSignupDefaultsToVendor(t *testing.T) {
	svc, repo := newAuthFixture(t)

	result, err := svc.Signup(context.Background(), &SignupInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.User.Role != string(domain.RoleVendor) {
		t.Errorf("role = %s, want VENDOR", result.User.Role)
	}

	stored, err := repo.GetByEmail(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Password == "password123" {
		t.Error("password stored in plaintext")
	}
	if !password.Verify("password123", stored.Password) {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestSignupCanonicalizesLegacyRole(t *testing.T) {
	svc, _ := newAuthFixture(t)

	result, err := svc.Signup(context.Background(), &SignupInput{
		Name:     "Ravi",
		Email:    "ravi@example.com",
		Password: "password123",
		Role:     "OFFICIAL",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.User.Role != string(domain.RoleAdmin) {
		t.Errorf("role = %s, want legacy OFFICIAL collapsed to ADMIN", result.User.Role)
	}
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Signup(context.Background(), &SignupInput{
		Name:     "X",
		Email:    "x@example.com",
		Password: "password123",
		Role:     "SUPERUSER",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Signup(context.Background(), &SignupInput{
		Name:     "X",
		Email:    "x@example.com",
		Password: "short",
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	input := &SignupInput{Name: "Jane", Email: "jane@example.com", Password: "password123"}
	if _, err := svc.Signup(ctx, input); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	_, err := svc.Signup(ctx, input)
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &SignupInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "password123",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	result, err := svc.Login(ctx, &LoginInput{Email: "jane@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("login must issue a token")
	}

	claims, err := jwt.ValidateToken(result.Token, "test-secret")
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("claims email = %s, want jane@example.com", claims.Email)
	}
	if claims.Role != string(domain.RoleVendor) {
		t.Errorf("claims role = %s, want VENDOR", claims.Role)
	}
	if claims.UserID != result.User.ID {
		t.Errorf("claims user_id = %s, want %s", claims.UserID, result.User.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	hashed, _ := password.Hash("password123")
	repo.users["u1"] = &models.User{ID: "u1", Email: "jane@example.com", Password: hashed, Role: "VENDOR"}

	if _, err := svc.Login(ctx, &LoginInput{Email: "jane@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}
