// Package otp holds short-lived one-time codes keyed by mobile number.
//
// The Store interface keeps the backing swappable: the in-process
// implementation below suits single-instance deployments and is volatile by
// design (codes are lost on restart); multi-instance deployments can plug in
// an external cache behind the same interface.
package otp

import "time"

// Store is TTL-backed storage for pending codes plus the per-mobile
// last-sent stamp used for resend rate limiting.
type Store interface {
	// SetCode stores the pending code for mobile, replacing any previous one.
	SetCode(mobile, code string, expiresAt time.Time)
	// Code returns the pending code and its expiry.
	Code(mobile string) (code string, expiresAt time.Time, ok bool)
	// DeleteCode drops the pending code (consumed or expired).
	DeleteCode(mobile string)
	// LastSent returns when an OTP was last successfully dispatched to mobile.
	LastSent(mobile string) (time.Time, bool)
	// MarkSent records a successful dispatch at the given time.
	MarkSent(mobile string, at time.Time)
}
