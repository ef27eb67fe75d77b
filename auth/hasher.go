package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

const (
	minMemoryKiB uint32 = 1024
	minKeyLength uint32 = 16

	algorithmID = "argon2id"
)

// Hasher computes Argon2id password hashes with deterministically derived
// salts. The salt for a given account is the account's stable identifier
// concatenated with its rotation counter, so re-hashing the same password is
// reproducible without a stored salt field, and every rotation yields an
// independent salt even though the identifier never changes.
type Hasher struct {
	config HasherConfig
}

// NewHasher validates cfg and returns a Hasher bound to it.
func NewHasher(cfg HasherConfig) (*Hasher, error) {
	if err := validateHasherConfig(cfg); err != nil {
		return nil, err
	}
	return &Hasher{config: cfg}, nil
}

// saltFor derives the salt bytes for one (identifier, counter) pair: the
// hyphenated lowercase UUID text immediately followed by the decimal counter.
func saltFor(id uuid.UUID, counter uint32) ([]byte, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("derive salt: %w", ErrIdentifierUnset)
	}
	return fmt.Appendf(nil, "%s%d", id, counter), nil
}

// Hash computes the encoded hash of password under the salt derived from
// (id, counter). The result is a full PHC string carrying the algorithm tag,
// version, cost parameters, and salt, so verification needs no external
// configuration.
func (h *Hasher) Hash(id uuid.UUID, counter uint32, password string) (string, error) {
	salt, err := saltFor(id, counter)
	if err != nil {
		return "", err
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		h.config.Passes,
		h.config.MemoryKiB,
		h.config.Parallelism,
		h.config.KeyLength,
	)

	saltEncoded := base64.RawStdEncoding.EncodeToString(salt)
	keyEncoded := base64.RawStdEncoding.EncodeToString(key)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		h.config.MemoryKiB,
		h.config.Passes,
		h.config.Parallelism,
		saltEncoded,
		keyEncoded,
	), nil
}

// Verify re-derives the hash of password under (id, counter) and compares it
// to reference. A mismatch is (false, nil); an internal hashing or salt
// derivation failure is returned as an error, never as a mismatch.
func (h *Hasher) Verify(id uuid.UUID, counter uint32, password, reference string) (bool, error) {
	computed, err := h.Hash(id, counter, password)
	if err != nil {
		return false, err
	}
	// Both values are fixed-length encoded strings for a given config;
	// ConstantTimeCompare rejects length mismatches outright.
	return subtle.ConstantTimeCompare([]byte(computed), []byte(reference)) == 1, nil
}
