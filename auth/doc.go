// Package auth implements Ironyy's account credential subsystem: password
// policy validation, Argon2id hashing with deterministically derived salts,
// password rotation, and optional time-based second-factor enrollment and
// verification.
//
// The package is organized around [Engine], constructed from a [Config].
// Engine methods operate on a single [Account] value owned by the caller;
// concurrent mutation of the same Account must be serialized externally.
// Hashing is intentionally expensive (memory-hard), so callers with latency
// requirements should run Engine methods off any latency-sensitive goroutine.
//
// # Architecture boundaries
//
// auth owns credential logic only. Persistence of the Account record belongs
// to the storage layer, and enrollment artifacts (provisioning URI, QR image)
// are produced here but rendered/displayed by the UI layer. No I/O happens
// inside hashing or verification beyond the crypto/rand source.
//
// # What this package must NOT do
//
//   - Log or embed secret material (passwords, seeds, hashes) in errors.
//   - Collapse internal hashing failures into a "wrong password" result.
//   - Retain partial second-factor enrollment state on failure.
package auth
