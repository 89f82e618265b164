package auth

import (
	"strings"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}

	if !VerifyPassword("correct horse battery staple", hash) {
		t.Fatal("expected matching password to verify")
	}
	if VerifyPassword("wrong password", hash) {
		t.Fatal("expected mismatched password to fail verification")
	}
}

func TestVerifyPasswordRejectsGarbageHash(t *testing.T) {
	if VerifyPassword("anything", "not-a-hash") {
		t.Fatal("expected verification against a malformed hash to fail")
	}
}
