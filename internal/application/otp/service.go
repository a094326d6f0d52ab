package otp

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/clock"
	"github.com/go-auth-api/internal/pkg/otpcode"
)

type accountStore interface {
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
}

// Notifier delivers a one-time code to the account's registered address.
type Notifier interface {
	SendOTP(email, code string) error
}

// Service owns the generate/store/send/validate/clear lifecycle of one-time
// codes. The account holds a single code slot shared by the email-verification
// and password-reset flows; generating a new code overwrites any pending one.
type Service interface {
	// GenerateAndSend stores a fresh code with an expiry window and stamps
	// last_otp_sent_at, then delivers it. The code is committed before
	// delivery is attempted; a delivery failure is logged and does not roll
	// the transition back (the code stays valid and resend is available).
	GenerateAndSend(ctx context.Context, acc *domain.Account) error
	// IsValid reports whether the supplied code matches the pending one and
	// the current time is at or before the expiry timestamp.
	IsValid(acc *domain.Account, code string) bool
	// Clear removes the pending code and its expiry. Idempotent.
	Clear(ctx context.Context, acc *domain.Account) error
}

type service struct {
	accounts accountStore
	notifier Notifier
	gen      otpcode.Generator
	clock    clock.Clock
	ttl      time.Duration
}

type ServiceDeps struct {
	AccountRepo accountStore
	Notifier    Notifier
	Generator   otpcode.Generator
	Clock       clock.Clock
	TTL         time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		accounts: deps.AccountRepo,
		notifier: deps.Notifier,
		gen:      deps.Generator,
		clock:    deps.Clock,
		ttl:      deps.TTL,
	}
}

func (s *service) GenerateAndSend(ctx context.Context, acc *domain.Account) error {
	n, err := s.gen.Next()
	if err != nil {
		return err
	}
	code := strconv.Itoa(n)
	now := s.clock.Now()
	expires := now.Add(s.ttl)

	if err := s.accounts.Update(ctx, acc.AccountID, map[string]interface{}{
		"otp_code":         code,
		"otp_expires_at":   expires,
		"last_otp_sent_at": now,
	}); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	acc.OTPCode = &code
	acc.OTPExpiresAt = &expires
	acc.LastOTPSentAt = &now

	if err := s.notifier.SendOTP(acc.Email, code); err != nil {
		// Best-effort notify: the code is already committed and stays valid
		// for its full window; the user can request a resend.
		slog.Warn("failed to deliver OTP", "account_id", acc.AccountID, "err", err)
	}
	return nil
}

func (s *service) IsValid(acc *domain.Account, code string) bool {
	if acc.OTPCode == nil || acc.OTPExpiresAt == nil {
		return false
	}
	if *acc.OTPCode != strings.TrimSpace(code) {
		return false
	}
	// Boundary is inclusive: a code supplied exactly at the expiry timestamp
	// is still valid.
	return !s.clock.Now().After(*acc.OTPExpiresAt)
}

func (s *service) Clear(ctx context.Context, acc *domain.Account) error {
	if err := s.accounts.Update(ctx, acc.AccountID, map[string]interface{}{
		"otp_code":       nil,
		"otp_expires_at": nil,
	}); err != nil {
		return fmt.Errorf("clear otp: %w", err)
	}
	acc.OTPCode = nil
	acc.OTPExpiresAt = nil
	return nil
}
