package http

import (
	"context"

	"github.com/go-auth-api/internal/domain"
)

// AccountRepository is the minimal interface the router requires from an account store.
type AccountRepository interface {
	Put(ctx context.Context, a *domain.Account) error
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
}

// SessionRepository is the minimal interface the router requires from a session store.
type SessionRepository interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteAllByAccount(ctx context.Context, accountID string) error
	DeleteAllByAccountExcept(ctx context.Context, accountID, keepToken string) error
}

// Notifier is the minimal interface the router requires for OTP delivery.
type Notifier interface {
	SendOTP(email, code string) error
}
