// Package sms dispatches text messages through an external gateway.
package sms

import "context"

// Sender delivers a text message to a normalized mobile number.
// Implementations are fail-fast; no retries happen at this layer.
type Sender interface {
	Send(ctx context.Context, mobile, message string) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, mobile, message string) error

func (f SenderFunc) Send(ctx context.Context, mobile, message string) error {
	return f(ctx, mobile, message)
}
