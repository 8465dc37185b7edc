package services

import (
	"testing"
	"time"

	"github.com/Georges999/Car-Parts-Marketplace/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

func testConfig() config.Config {
	return config.Config{
		ServiceName:    "carparts-test",
		JWTSecret:      "test-secret",
		JWTExpireHours: 1,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	cfg := testConfig()

	token, exp, err := GenerateToken(cfg, 42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if exp.Before(time.Now()) {
		t.Fatalf("expected exp in future")
	}

	userID, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if userID != 42 {
		t.Fatalf("subject mismatch: got %d, want 42", userID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	cfg := testConfig()

	token, _, err := GenerateToken(cfg, 7)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := cfg
	other.JWTSecret = "different-secret"
	if _, err := ParseToken(other, token); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestParseTokenExpired(t *testing.T) {
	cfg := testConfig()

	// 直接签一个已过期的 token
	claims := jwt.RegisteredClaims{
		Subject:   "7",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	if _, err := ParseToken(cfg, token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	cfg := testConfig()
	if _, err := ParseToken(cfg, "not.a.token"); err == nil {
		t.Fatalf("expected garbage token to be rejected")
	}
}

func TestGenerateTokenEmptySecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = ""
	if _, _, err := GenerateToken(cfg, 1); err == nil {
		t.Fatalf("expected error with empty secret")
	}
}
