package utils

import (
	"fmt"
	"strings"
	"unicode"

	"cabzii/internal/domain"
)

// NormalizeMobile canonicalizes an Indian mobile number to 91XXXXXXXXXX.
// Accepted inputs: 10 digits, 0-prefixed 11 digits, 91-prefixed 12 digits,
// with any punctuation/spacing stripped. Anything else is a ValidationError.
func NormalizeMobile(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return digits, nil
	case len(digits) == 10:
		return "91" + digits, nil
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return "91" + digits[1:], nil
	}
	return "", domain.ValidationError{Field: "mobile", Msg: fmt.Sprintf("unrecognizable mobile format %q", strings.TrimSpace(raw))}
}

// LocalMobile strips the country code for gateways that expect 10 digits.
func LocalMobile(normalized string) string {
	return strings.TrimPrefix(normalized, "91")
}
