package auth

import (
	"errors"
	"strings"
	"testing"
)

// baseline satisfies every rule; each case below breaks exactly one property.
const compliantPassword = "ValidPass123!ABCxyz"

func assertViolation(t *testing.T, password string, want PolicyRule) {
	t.Helper()

	err := CheckPolicy(password)
	if err == nil {
		t.Fatalf("expected %s violation, got nil", want)
	}
	var violation *PolicyViolation
	if !errors.As(err, &violation) {
		t.Fatalf("expected PolicyViolation, got %T: %v", err, err)
	}
	if violation.Rule != want {
		t.Fatalf("expected %s violation, got %s", want, violation.Rule)
	}
}

func TestCheckPolicyAcceptsCompliantPassword(t *testing.T) {
	if err := CheckPolicy(compliantPassword); err != nil {
		t.Fatalf("expected compliant password to pass, got %v", err)
	}
}

func TestCheckPolicyLengthBounds(t *testing.T) {
	// 15 characters with all other categories present.
	assertViolation(t, "ValidPass123!AB", RuleLength)

	// 129 characters with all other categories present.
	long := strings.Repeat("A", 125) + "1a!B"
	if len(long) != 129 {
		t.Fatalf("test setup: expected 129 characters, got %d", len(long))
	}
	assertViolation(t, long, RuleLength)

	// Both bounds are inclusive.
	if err := CheckPolicy("ValidPass123!ABC"); err != nil {
		t.Fatalf("expected 16-character password to pass, got %v", err)
	}
	max := strings.Repeat("A", 124) + "1a!B"
	if err := CheckPolicy(max); err != nil {
		t.Fatalf("expected 128-character password to pass, got %v", err)
	}
}

func TestCheckPolicyLengthCountsCharactersNotBytes(t *testing.T) {
	// 16 characters, more than 16 bytes.
	if err := CheckPolicy("Pässwörd123!abcd"); err != nil {
		t.Fatalf("expected 16-character multi-byte password to pass, got %v", err)
	}
}

func TestCheckPolicyCategoryRules(t *testing.T) {
	assertViolation(t, strings.ToLower(compliantPassword), RuleUppercase)
	assertViolation(t, strings.ToUpper(compliantPassword), RuleLowercase)
	assertViolation(t, "ValidPassword!ABCxyz", RuleDigit)
	assertViolation(t, "ValidPass123ABCxyz", RuleSpecial)
}

func TestCheckPolicyReportsFirstFailingRule(t *testing.T) {
	// Fails every rule; length must win the tie-break.
	assertViolation(t, "", RuleLength)

	// Fails uppercase, digit, and special; uppercase comes first.
	assertViolation(t, "nouppercasenodigits", RuleUppercase)
}

func TestPolicyViolationMessages(t *testing.T) {
	cases := []struct {
		rule PolicyRule
		want string
	}{
		{RuleLength, "between 16 and 128 characters"},
		{RuleUppercase, "uppercase letter"},
		{RuleLowercase, "lowercase letter"},
		{RuleDigit, "digit"},
		{RuleSpecial, "special character"},
	}
	for _, tc := range cases {
		violation := &PolicyViolation{Rule: tc.rule}
		if !strings.Contains(violation.Error(), tc.want) {
			t.Fatalf("%s message %q missing %q", tc.rule, violation.Error(), tc.want)
		}
	}
}
