package auth

import "errors"

var (
	// ErrSecondFactorNotEnabled is returned by [Engine.VerifySecondFactor]
	// when the account has no enrolled second factor. It signals caller
	// misuse, not an authentication failure, and is deliberately distinct
	// from a code-mismatch result.
	ErrSecondFactorNotEnabled = errors.New("second factor not enabled")
	// ErrIdentifierUnset is returned when a hash is requested for an
	// account whose stable identifier was never assigned.
	ErrIdentifierUnset = errors.New("account identifier unset")
	// ErrEngineNotReady is returned when an Engine method is invoked on a
	// zero-value or nil engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
