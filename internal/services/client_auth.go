package services

import (
	"context"
	"fmt"
	"time"

	"cabzii/internal/auth"
	"cabzii/internal/domain"
	"cabzii/internal/domain/models"
	"cabzii/internal/otp"
	"cabzii/internal/sms"
	"cabzii/internal/utils"
)

const (
	otpValidity     = 2 * time.Minute
	otpResendWindow = 30 * time.Second
)

// ClientStore is the slice of client persistence the auth flow needs.
type ClientStore interface {
	FindByMobile(ctx context.Context, mobile string) (models.Client, error)
	Create(ctx context.Context, mobile string) (models.Client, error)
}

// ClientAuthService runs the OTP login flow: send a code, verify it, and
// provision the client record on first verified login.
type ClientAuthService struct {
	Store     ClientStore
	OTP       otp.Store
	SMS       sms.Sender
	Tokens    auth.Manager
	RequestID string

	// Injectable for tests.
	Now     func() time.Time
	NewCode func() string
}

func (s ClientAuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s ClientAuthService) newCode() string {
	if s.NewCode != nil {
		return s.NewCode()
	}
	return utils.NewOTPCode()
}

// SendOTP normalizes the mobile number, enforces the 30s resend window,
// dispatches a fresh 4-digit code and stores it with a 2-minute validity.
// On dispatch failure nothing is stored and the last-sent stamp is not
// advanced, so the caller may retry immediately.
func (s ClientAuthService) SendOTP(ctx context.Context, rawMobile string) error {
	mobile, err := utils.NormalizeMobile(rawMobile)
	if err != nil {
		return err
	}

	now := s.now()
	if last, ok := s.OTP.LastSent(mobile); ok {
		if wait := otpResendWindow - now.Sub(last); wait > 0 {
			return domain.RateLimitError{Msg: fmt.Sprintf("please wait %ds before requesting another OTP", int(wait.Seconds()+0.999))}
		}
	}

	code := s.newCode()
	message := fmt.Sprintf("Your OTP for Cabzii login is %s. It is valid for %d minutes.", code, int(otpValidity.Minutes()))
	if err := s.SMS.Send(ctx, mobile, message); err != nil {
		utils.LogEvent(s.RequestID, "auth", "send_otp_failed", "sms dispatch failed")
		return err
	}

	s.OTP.SetCode(mobile, code, now.Add(otpValidity))
	s.OTP.MarkSent(mobile, now)
	utils.LogEvent(s.RequestID, "auth", "send_otp", "otp dispatched")
	return nil
}

// VerifyOTP checks the pending code for the mobile. Codes are single use: a
// successful verification consumes the code, loads or lazily creates the
// client aggregate and issues a 1-hour session token. The returned bool is
// true when the client record was created by this call.
func (s ClientAuthService) VerifyOTP(ctx context.Context, rawMobile, code string) (models.Client, string, bool, error) {
	mobile, err := utils.NormalizeMobile(rawMobile)
	if err != nil {
		return models.Client{}, "", false, err
	}

	stored, expiresAt, ok := s.OTP.Code(mobile)
	if !ok {
		return models.Client{}, "", false, domain.NotFoundError{Resource: "otp"}
	}
	if s.now().After(expiresAt) {
		s.OTP.DeleteCode(mobile)
		return models.Client{}, "", false, domain.UnauthorizedError{Msg: "OTP has expired"}
	}
	if stored != code {
		// Record retained: the client may retry within the window.
		return models.Client{}, "", false, domain.UnauthorizedError{Msg: "invalid OTP"}
	}
	s.OTP.DeleteCode(mobile)

	created := false
	client, err := s.Store.FindByMobile(ctx, mobile)
	if domain.IsNotFound(err) {
		client, err = s.Store.Create(ctx, mobile)
		created = err == nil
	}
	if err != nil {
		return models.Client{}, "", false, err
	}

	token, err := s.Tokens.Issue(auth.Claims{
		PrincipalID: client.ID.Hex(),
		Role:        auth.RoleClient,
		Mobile:      client.Mobile,
	})
	if err != nil {
		return models.Client{}, "", false, err
	}

	utils.LogEvent(s.RequestID, "auth", "verify_otp", fmt.Sprintf("client=%s created=%t", client.ID.Hex(), created))
	return client, token, created, nil
}
