package utils

import (
	"fmt"
	"math/rand"
)

// FormatSeqID renders a sequential catalog ID: prefix + zero-padded 4 digits
// (TOUR0001, VH0001, CD0001, CAB0001, SUBTOUR0001, PK0001, DP0001).
// Sequences above 9999 keep growing without truncation.
func FormatSeqID(prefix string, n int64) string {
	return fmt.Sprintf("%s%04d", prefix, n)
}

// NewBookingID mints a kind-prefixed booking ID with 6 random digits, e.g.
// TOUR483920. Uniqueness is not guaranteed by construction; the booking
// engine checks for collisions and regenerates. Collision probability at
// target scale is low (1e6 space per kind) but not zero.
func NewBookingID(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, 100000+rand.Intn(900000))
}

// NewOTPCode returns a 4-digit numeric one-time code, uniform over 1000-9999.
func NewOTPCode() string {
	return fmt.Sprintf("%d", 1000+rand.Intn(9000))
}
