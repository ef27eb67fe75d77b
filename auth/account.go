package auth

import "github.com/google/uuid"

// Account is the credential record for one user. The storage layer
// serializes it opaquely; every mutation goes through [Engine] methods.
//
// ID is assigned once at creation and never changes. It feeds salt
// derivation, so two accounts with identical passwords never share a hash.
// RotationCounter increments by exactly one on every successful password
// change and never resets; the counter is the other salt input, which is what
// invalidates the previous password's hash on rotation.
type Account struct {
	Username           string    `json:"username"`
	ID                 uuid.UUID `json:"id"`
	PasswordHash       string    `json:"password_hash"`
	RotationCounter    uint32    `json:"rotation_counter"`
	SecondFactorSecret []byte    `json:"second_factor_secret,omitempty"`
}

// SecondFactorEnabled reports whether a second-factor seed is currently
// enrolled.
func (a *Account) SecondFactorEnabled() bool {
	return len(a.SecondFactorSecret) > 0
}
