// Package form implements field-level validation and form state tracking
// for the login, signup, and question screens.
package form

import (
	"regexp"
	"strings"
	"unicode"
)

// Rule validates one field in the context of its form. It returns an error
// message, or the empty string when the value passes. Rules run in declared
// order and the first failing rule wins.
type Rule func(f *Field, frm *Form) string

// Required fails when the trimmed value is empty.
func Required(msg string) Rule {
	return func(f *Field, _ *Form) string {
		if strings.TrimSpace(f.Value) == "" {
			return msg
		}
		return ""
	}
}

// RequiredRaw fails when the raw value is empty. Passwords are never trimmed:
// leading/trailing spaces may be intentional.
func RequiredRaw(msg string) Rule {
	return func(f *Field, _ *Form) string {
		if f.Value == "" {
			return msg
		}
		return ""
	}
}

// MinLen fails when the trimmed value is shorter than n.
func MinLen(n int, msg string) Rule {
	return func(f *Field, _ *Form) string {
		if len([]rune(strings.TrimSpace(f.Value))) < n {
			return msg
		}
		return ""
	}
}

// MaxLen fails when the trimmed value is longer than n.
func MaxLen(n int, msg string) Rule {
	return func(f *Field, _ *Form) string {
		if len([]rune(strings.TrimSpace(f.Value))) > n {
			return msg
		}
		return ""
	}
}

// MinLenRaw fails when the raw value is shorter than n (password length bounds).
func MinLenRaw(n int, msg string) Rule {
	return func(f *Field, _ *Form) string {
		if len([]rune(f.Value)) < n {
			return msg
		}
		return ""
	}
}

// MaxLenRaw fails when the raw value is longer than n.
func MaxLenRaw(n int, msg string) Rule {
	return func(f *Field, _ *Form) string {
		if len([]rune(f.Value)) > n {
			return msg
		}
		return ""
	}
}

// Pattern fails when the trimmed value does not match re.
func Pattern(re *regexp.Regexp, msg string) Rule {
	return func(f *Field, _ *Form) string {
		if !re.MatchString(strings.TrimSpace(f.Value)) {
			return msg
		}
		return ""
	}
}

// Complexity fails when the raw value lacks an uppercase letter, a lowercase
// letter, or a digit.
func Complexity(msg string) Rule {
	return func(f *Field, _ *Form) string {
		if !hasUpper(f.Value) || !hasLower(f.Value) || !hasDigit(f.Value) {
			return msg
		}
		return ""
	}
}

// Matches fails when the raw value is empty or differs from the sibling field
// ref. Used for password confirmation.
func Matches(ref, emptyMsg, mismatchMsg string) Rule {
	return func(f *Field, frm *Form) string {
		if f.Value == "" {
			return emptyMsg
		}
		if f.Value != frm.Value(ref) {
			return mismatchMsg
		}
		return ""
	}
}

// Accepted fails when the boolean value is false (terms checkbox).
func Accepted(msg string) Rule {
	return func(f *Field, _ *Form) string {
		if !f.Checked {
			return msg
		}
		return ""
	}
}

// specialRunes is the character set the backend counts as "special" for
// password strength.
const specialRunes = `!@#$%^&*(),.?":{}|<>`

// Strength scores a password 0..4 for UI feedback. The score is advisory
// only and never blocks validation: one point each for length >= 8,
// length >= 12, mixed case, a digit, and a special character, capped at 4.
func Strength(password string) int {
	score := 0
	if len([]rune(password)) >= 8 {
		score++
	}
	if len([]rune(password)) >= 12 {
		score++
	}
	if hasUpper(password) && hasLower(password) {
		score++
	}
	if hasDigit(password) {
		score++
	}
	if strings.ContainsAny(password, specialRunes) {
		score++
	}
	if score > 4 {
		score = 4
	}
	return score
}

// StrengthLabel maps a strength score to its display label.
func StrengthLabel(score int) string {
	switch score {
	case 1:
		return "Muito fraca"
	case 2:
		return "Fraca"
	case 3:
		return "Boa"
	case 4:
		return "Forte"
	default:
		return ""
	}
}

func hasUpper(s string) bool {
	return strings.ContainsFunc(s, unicode.IsUpper)
}

func hasLower(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLower)
}

func hasDigit(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}
