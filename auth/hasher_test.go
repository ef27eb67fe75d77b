package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// cheapHasherConfig keeps tests fast; production parameters live in
// DefaultHasherConfig.
func cheapHasherConfig() HasherConfig {
	return HasherConfig{
		MemoryKiB:   1945,
		Passes:      1,
		Parallelism: 1,
		KeyLength:   32,
	}
}

func TestHashIsDeterministic(t *testing.T) {
	hasher, err := NewHasher(cheapHasherConfig())
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}

	id := uuid.New()
	first, err := hasher.Hash(id, 0, "StrongPassword!123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := hasher.Hash(id, 0, "StrongPassword!123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first != second {
		t.Fatal("expected identical hashes for identical (id, counter, password)")
	}

	ok, err := hasher.Verify(id, 0, "StrongPassword!123", first)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected re-derived hash to verify")
	}
}

func TestHashEncodesParameters(t *testing.T) {
	hasher, err := NewHasher(cheapHasherConfig())
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}

	hash, err := hasher.Hash(uuid.New(), 0, "StrongPassword!123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=1945,t=1,p=1$") {
		t.Fatalf("unexpected PHC prefix: %s", hash)
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	hasher, err := NewHasher(cheapHasherConfig())
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}

	id := uuid.New()
	hash, err := hasher.Hash(id, 0, "StrongPassword!123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	for _, attempt := range []string{"WrongPassword", "", "StrongPassword!124", "strongPassword!123"} {
		ok, err := hasher.Verify(id, 0, attempt, hash)
		if err != nil {
			t.Fatalf("Verify(%q) error: %v", attempt, err)
		}
		if ok {
			t.Fatalf("expected %q to fail verification", attempt)
		}
	}
}

func TestHashVariesAcrossAccountsAndCounters(t *testing.T) {
	hasher, err := NewHasher(cheapHasherConfig())
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}

	first, err := hasher.Hash(uuid.New(), 0, "StrongPassword!123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := hasher.Hash(uuid.New(), 0, "StrongPassword!123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct accounts to produce distinct hashes for the same password")
	}

	id := uuid.New()
	before, err := hasher.Hash(id, 0, "StrongPassword!123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	after, err := hasher.Hash(id, 1, "StrongPassword!123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if before == after {
		t.Fatal("expected counter bump to produce an independent salt and hash")
	}
}

func TestHashRejectsUnsetIdentifier(t *testing.T) {
	hasher, err := NewHasher(cheapHasherConfig())
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}

	if _, err := hasher.Hash(uuid.Nil, 0, "StrongPassword!123"); !errors.Is(err, ErrIdentifierUnset) {
		t.Fatalf("expected ErrIdentifierUnset, got %v", err)
	}

	// Salt derivation failure surfaces as an error, never as a mismatch.
	if _, err := hasher.Verify(uuid.Nil, 0, "StrongPassword!123", "reference"); !errors.Is(err, ErrIdentifierUnset) {
		t.Fatalf("expected ErrIdentifierUnset from Verify, got %v", err)
	}
}

func TestNewHasherValidatesConfig(t *testing.T) {
	bad := []HasherConfig{
		{MemoryKiB: 512, Passes: 1, Parallelism: 1, KeyLength: 32},
		{MemoryKiB: 1945, Passes: 0, Parallelism: 1, KeyLength: 32},
		{MemoryKiB: 1945, Passes: 1, Parallelism: 0, KeyLength: 32},
		{MemoryKiB: 1945, Passes: 1, Parallelism: 1, KeyLength: 8},
	}
	for i, cfg := range bad {
		if _, err := NewHasher(cfg); err == nil {
			t.Fatalf("case %d: expected config validation error", i)
		}
	}
}
