package jwt

import (
	"errors"
	"testing"
)

const testSecret = "unit-test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("user-1", "jane@example.com", "VENDOR", testSecret, 24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ValidateToken(token, testSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("user_id = %s, want user-1", claims.UserID)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("email = %s, want jane@example.com", claims.Email)
	}
	if claims.Role != "VENDOR" {
		t.Errorf("role = %s, want VENDOR", claims.Role)
	}
	if claims.Issuer != "loco-verify" {
		t.Errorf("issuer = %s, want loco-verify", claims.Issuer)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	// Negative expiry yields a token that is already expired
	token, err := GenerateToken("user-1", "jane@example.com", "VENDOR", testSecret, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ValidateToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", "jane@example.com", "VENDOR", testSecret, 24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ValidateToken(token, "another-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token", testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
