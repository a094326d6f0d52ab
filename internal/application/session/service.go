package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/clock"
	pkgtoken "github.com/go-auth-api/internal/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token   string
	Session *domain.Session
}

type accountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Get(ctx context.Context, accountID string) (*domain.Account, error)
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// Service issues and revokes opaque bearer tokens.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	// Logout revokes the given token. Succeeds even if the token is already gone.
	Logout(ctx context.Context, token string) error
	// Current resolves a bearer token to its session and owning account.
	Current(ctx context.Context, token string) (*domain.Session, error)
}

type service struct {
	sessions sessionStore
	accounts accountStore
	clock    clock.Clock
}

func NewService(sessions sessionStore, accounts accountStore, clk clock.Clock) Service {
	return &service{sessions: sessions, accounts: accounts, clock: clk}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	// The same message covers unknown email and wrong password so the
	// endpoint can't be used to enumerate accounts.
	acc, err := s.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !acc.Verified() {
		return nil, fmt.Errorf("please verify your email first: %w", domain.ErrForbidden)
	}
	tok, err := pkgtoken.NewSessionToken()
	if err != nil {
		return nil, err
	}
	sess := &domain.Session{
		Token:     tok,
		AccountID: acc.AccountID,
		CreatedAt: s.clock.Now(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	sess.Account = acc
	return &LoginResult{Token: tok, Session: sess}, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *service) Current(ctx context.Context, token string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token: %w", domain.ErrUnauthorized)
	}
	acc, err := s.accounts.Get(ctx, sess.AccountID)
	if err != nil {
		return nil, err
	}
	sess.Account = acc
	return sess, nil
}
