package auth

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Engine performs all credential operations. Construct once with [New] and
// share freely; Engine itself is immutable after construction. The Account
// values it mutates are owned by the caller and must not be mutated from
// multiple goroutines concurrently.
type Engine struct {
	config Config
	hasher *Hasher
	second SecondFactor
}

// New builds an Engine from cfg, using the built-in TOTP implementation and
// QR renderer for the second factor.
func New(cfg Config) (*Engine, error) {
	return NewWithSecondFactor(cfg, newTOTPManager(cfg.Issuer, cfg.SecondFactor, nil))
}

// NewWithSecondFactor builds an Engine with a substitute time-based code
// capability.
func NewWithSecondFactor(cfg Config, second SecondFactor) (*Engine, error) {
	hasher, err := NewHasher(cfg.Hasher)
	if err != nil {
		return nil, err
	}
	return &Engine{config: cfg, hasher: hasher, second: second}, nil
}

// CreateAccount validates password against the policy, assigns a fresh stable
// identifier, and returns the account with its hash computed at rotation
// counter zero. A policy violation aborts creation; no account is produced.
func (e *Engine) CreateAccount(username, password string) (*Account, error) {
	if e == nil || e.hasher == nil {
		return nil, ErrEngineNotReady
	}
	if err := CheckPolicy(password); err != nil {
		return nil, err
	}

	id := uuid.New()
	hash, err := e.hasher.Hash(id, 0, password)
	if err != nil {
		return nil, err
	}

	return &Account{
		Username:        username,
		ID:              id,
		PasswordHash:    hash,
		RotationCounter: 0,
	}, nil
}

// VerifyPassword recomputes the hash of attempt at the account's current
// rotation counter and compares it to the stored hash. A mismatch is
// (false, nil); internal hashing failures are returned as errors.
func (e *Engine) VerifyPassword(acct *Account, attempt string) (bool, error) {
	if e == nil || e.hasher == nil {
		return false, ErrEngineNotReady
	}
	return e.hasher.Verify(acct.ID, acct.RotationCounter, attempt, acct.PasswordHash)
}

// ChangePassword validates next against the policy and, on success, bumps the
// rotation counter by one and replaces the stored hash in a single step. On
// any failure the account is left completely unchanged. The previous password
// can never verify again: its salt was tied to the old counter value.
func (e *Engine) ChangePassword(acct *Account, next string) error {
	if e == nil || e.hasher == nil {
		return ErrEngineNotReady
	}
	if err := CheckPolicy(next); err != nil {
		return err
	}

	counter := acct.RotationCounter + 1
	hash, err := e.hasher.Hash(acct.ID, counter, next)
	if err != nil {
		return err
	}

	acct.RotationCounter = counter
	acct.PasswordHash = hash
	return nil
}

// EnableSecondFactor issues a fresh seed and enrollment artifact for the
// account. The seed is stored on the account only after issuance fully
// succeeds; on failure the second-factor state is unchanged. Re-enabling an
// already enabled account replaces the seed.
func (e *Engine) EnableSecondFactor(acct *Account) (*Enrollment, error) {
	if e == nil || e.second == nil {
		return nil, ErrEngineNotReady
	}

	secret, enrollment, err := e.second.Issue(acct.Username)
	if err != nil {
		return nil, err
	}

	acct.SecondFactorSecret = secret
	return enrollment, nil
}

// VerifySecondFactor compares code against the expected value for the current
// time step. Calling it while no second factor is enrolled returns
// [ErrSecondFactorNotEnabled] rather than false: that is a caller-logic
// error, not an authentication failure.
func (e *Engine) VerifySecondFactor(acct *Account, code string) (bool, error) {
	if e == nil || e.second == nil {
		return false, ErrEngineNotReady
	}
	if !acct.SecondFactorEnabled() {
		return false, ErrSecondFactorNotEnabled
	}

	trimmed := strings.TrimSpace(code)
	if !isNumericString(trimmed) {
		return false, nil
	}

	expected, err := e.second.CodeAt(acct.SecondFactorSecret, time.Now())
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(trimmed)) == 1, nil
}

// DisableSecondFactor discards the enrolled seed. Calling it when no second
// factor is enrolled is a no-op.
func (e *Engine) DisableSecondFactor(acct *Account) {
	acct.SecondFactorSecret = nil
}
