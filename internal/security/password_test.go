package security_test

import (
	"strings"
	"testing"

	"github.com/andinalabs/cataloghub/internal/security"
)

func TestHashAndVerify(t *testing.T) {
	h := security.NewHasher(4) // min cost keeps the test fast

	hash, err := h.Hash("longenough1")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hash == "longenough1" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if !h.Verify("longenough1", hash) {
		t.Fatalf("verify should succeed for the original password")
	}

	if h.Verify("wrongpassword", hash) {
		t.Fatalf("verify should fail for a different password")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := security.NewHasher(4)

	first, err := h.Hash("samepassword")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	second, err := h.Hash("samepassword")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if first == second {
		t.Fatalf("two hashes of the same password should differ (random salt)")
	}
}

func TestVerifyMalformedHashFailsClosed(t *testing.T) {
	h := security.NewHasher(4)

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "garbage", hash: "not-a-bcrypt-hash"},
		{name: "truncated", hash: "$2a$10$abc"},
		{name: "plaintext lookalike", hash: strings.Repeat("a", 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if h.Verify("anything", tt.hash) {
				t.Fatalf("verify must return false for malformed hash %q", tt.hash)
			}
		})
	}
}

func TestOutOfRangeCostFallsBackToDefault(t *testing.T) {
	h := security.NewHasher(99)

	hash, err := h.Hash("somepassword")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if !h.Verify("somepassword", hash) {
		t.Fatalf("round trip should still work with clamped cost")
	}
}
