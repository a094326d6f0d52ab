package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-auth-api/internal/application/otp"
	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/clock"
	"github.com/go-auth-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
}

type accountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Put(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
}

type sessionStore interface {
	DeleteAllByAccount(ctx context.Context, accountID string) error
	DeleteAllByAccountExcept(ctx context.Context, accountID, keepToken string) error
}

// Service enforces the guarded transitions of the credential lifecycle:
// email verification after registration, and the request/verify/reset steps
// of a password reset. Every transition that consumes a code goes through
// the otp service.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.Account, error)
	VerifyEmailOTP(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyForgotOTP(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
	ChangePassword(ctx context.Context, acc *domain.Account, currentToken, currentPassword, newPassword string) error
}

type service struct {
	accounts accountStore
	sessions sessionStore
	otp      otp.Service
	clock    clock.Clock
	cooldown time.Duration
}

type ServiceDeps struct {
	AccountRepo accountStore
	SessionRepo sessionStore
	OTP         otp.Service
	Clock       clock.Clock
	Cooldown    time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		accounts: deps.AccountRepo,
		sessions: deps.SessionRepo,
		otp:      deps.OTP,
		clock:    deps.Clock,
		cooldown: deps.Cooldown,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*domain.Account, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		// Only a definitive miss clears the way; a store failure must not
		// be mistaken for a free email.
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	acc := &domain.Account{
		AccountID:    id.New(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accounts.Put(ctx, acc); err != nil {
		return nil, err
	}
	if err := s.otp.GenerateAndSend(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *service) VerifyEmailOTP(ctx context.Context, email, code string) error {
	acc, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	if acc.Verified() {
		return fmt.Errorf("email already verified: %w", domain.ErrBadRequest)
	}
	if !s.otp.IsValid(acc, code) {
		return fmt.Errorf("invalid or expired OTP: %w", domain.ErrInvalidCode)
	}
	now := s.clock.Now()
	if err := s.accounts.Update(ctx, acc.AccountID, map[string]interface{}{
		"email_verified_at": now,
	}); err != nil {
		return err
	}
	acc.EmailVerifiedAt = &now
	return s.otp.Clear(ctx, acc)
}

func (s *service) ResendOTP(ctx context.Context, email string) error {
	acc, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	if acc.Verified() {
		return fmt.Errorf("email already verified: %w", domain.ErrBadRequest)
	}
	if err := s.checkCooldown(acc); err != nil {
		return err
	}
	return s.otp.GenerateAndSend(ctx, acc)
}

func (s *service) ForgotPassword(ctx context.Context, email string) error {
	acc, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	if err := s.checkCooldown(acc); err != nil {
		return err
	}
	// A new forgot-password request always starts a fresh reset cycle:
	// any stale reset-verification is invalidated before the code goes out.
	if acc.PasswordResetVerifiedAt != nil {
		if err := s.accounts.Update(ctx, acc.AccountID, map[string]interface{}{
			"password_reset_verified_at": nil,
		}); err != nil {
			return err
		}
		acc.PasswordResetVerifiedAt = nil
	}
	return s.otp.GenerateAndSend(ctx, acc)
}

func (s *service) VerifyForgotOTP(ctx context.Context, email, code string) error {
	acc, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil || acc.OTPCode == nil {
		return fmt.Errorf("invalid request: %w", domain.ErrBadRequest)
	}
	if !s.otp.IsValid(acc, code) {
		return fmt.Errorf("invalid or expired OTP: %w", domain.ErrInvalidCode)
	}
	now := s.clock.Now()
	if err := s.accounts.Update(ctx, acc.AccountID, map[string]interface{}{
		"password_reset_verified_at": now,
	}); err != nil {
		return err
	}
	acc.PasswordResetVerifiedAt = &now
	return s.otp.Clear(ctx, acc)
}

func (s *service) ResetPassword(ctx context.Context, email, newPassword string) error {
	acc, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil || acc.PasswordResetVerifiedAt == nil {
		return fmt.Errorf("OTP verification required: %w", domain.ErrForbidden)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.accounts.Update(ctx, acc.AccountID, map[string]interface{}{
		"password_hash":              string(hash),
		"password_reset_verified_at": nil,
	}); err != nil {
		return err
	}
	acc.PasswordHash = string(hash)
	acc.PasswordResetVerifiedAt = nil
	// Logout all devices.
	return s.sessions.DeleteAllByAccount(ctx, acc.AccountID)
}

func (s *service) ChangePassword(ctx context.Context, acc *domain.Account, currentToken, currentPassword, newPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrBadRequest)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(newPassword)); err == nil {
		return fmt.Errorf("new password cannot be same as old password: %w", domain.ErrBadRequest)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.accounts.Update(ctx, acc.AccountID, map[string]interface{}{
		"password_hash": string(hash),
	}); err != nil {
		return err
	}
	acc.PasswordHash = string(hash)
	// Logout other devices; the session making this request stays valid.
	return s.sessions.DeleteAllByAccountExcept(ctx, acc.AccountID, currentToken)
}

func (s *service) checkCooldown(acc *domain.Account) error {
	if acc.LastOTPSentAt != nil && s.clock.Now().Sub(*acc.LastOTPSentAt) < s.cooldown {
		return fmt.Errorf("please wait before requesting another OTP: %w", domain.ErrRateLimited)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
