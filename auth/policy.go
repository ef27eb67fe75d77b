package auth

import (
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLength = 16
	maxPasswordLength = 128
)

// PolicyRule identifies a single password composition rule.
type PolicyRule uint8

const (
	// RuleLength requires 16 to 128 characters inclusive, counted in
	// characters rather than bytes.
	RuleLength PolicyRule = iota
	// RuleUppercase requires at least one uppercase letter.
	RuleUppercase
	// RuleLowercase requires at least one lowercase letter.
	RuleLowercase
	// RuleDigit requires at least one decimal digit.
	RuleDigit
	// RuleSpecial requires at least one character that is neither a letter
	// nor a digit.
	RuleSpecial
)

func (r PolicyRule) String() string {
	switch r {
	case RuleLength:
		return "length"
	case RuleUppercase:
		return "uppercase"
	case RuleLowercase:
		return "lowercase"
	case RuleDigit:
		return "digit"
	case RuleSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// PolicyViolation reports the single corrective rule a rejected password
// failed first. The candidate password itself is never included.
type PolicyViolation struct {
	Rule PolicyRule
}

func (v *PolicyViolation) Error() string {
	switch v.Rule {
	case RuleLength:
		return "password must be between 16 and 128 characters long"
	case RuleUppercase:
		return "password must contain at least one uppercase letter"
	case RuleLowercase:
		return "password must contain at least one lowercase letter"
	case RuleDigit:
		return "password must contain at least one digit"
	case RuleSpecial:
		return "password must contain at least one special character"
	default:
		return "password policy violation"
	}
}

// CheckPolicy validates a candidate password against the composition rules.
// All rules are evaluated; when several fail, the violation reports the first
// one in the fixed order length, uppercase, lowercase, digit, special, so the
// reported failure is deterministic.
func CheckPolicy(password string) error {
	length := utf8.RuneCountInString(password)
	acceptableLen := length >= minPasswordLength && length <= maxPasswordLength

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			hasSpecial = true
		}
	}

	switch {
	case !acceptableLen:
		return &PolicyViolation{Rule: RuleLength}
	case !hasUpper:
		return &PolicyViolation{Rule: RuleUppercase}
	case !hasLower:
		return &PolicyViolation{Rule: RuleLowercase}
	case !hasDigit:
		return &PolicyViolation{Rule: RuleDigit}
	case !hasSpecial:
		return &PolicyViolation{Rule: RuleSpecial}
	}
	return nil
}
