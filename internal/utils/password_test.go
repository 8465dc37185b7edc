package utils

import (
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("my-password-123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "" || hash == "my-password-123" {
		t.Fatalf("expected non-empty hash distinct from plaintext, got %q", hash)
	}

	if !CheckPasswordHash("my-password-123", hash) {
		t.Fatalf("expected correct password to verify")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestCheckPasswordHashGarbage(t *testing.T) {
	if CheckPasswordHash("anything", "not-a-bcrypt-hash") {
		t.Fatalf("expected malformed hash to fail verification")
	}
}
