// Package phonex canonicalizes phone numbers used as account logins.
package phonex

import (
	"regexp"
	"strings"
	"unicode"
)

var validPhone = regexp.MustCompile(`^\+[0-9]{11}$`)

// Normalize removes every character that is neither an ASCII digit nor '+'.
// Stray pluses are kept so that IsValid rejects them.
//
//	Normalize("+7 (917) 971-11-11") == "+79179711111"
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r == '+' || (r < unicode.MaxASCII && unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValid reports whether raw normalizes to '+' followed by exactly 11 digits.
func IsValid(raw string) bool {
	return validPhone.MatchString(Normalize(raw))
}
