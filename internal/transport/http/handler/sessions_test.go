package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-auth-api/internal/application/session"
	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSessionSvc struct{ mock.Mock }

func (m *mockSessionSvc) Login(ctx context.Context, req session.LoginRequest) (*session.LoginResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*session.LoginResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionSvc) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockSessionSvc) Current(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestLogin_Success_ReturnsTokenAndUser(t *testing.T) {
	acc := &domain.Account{AccountID: "a1", Email: "a@x.com"}
	svc := &mockSessionSvc{}
	svc.On("Login", mock.Anything, mock.AnythingOfType("session.LoginRequest")).
		Return(&session.LoginResult{
			Token:   "tok123",
			Session: &domain.Session{Token: "tok123", AccountID: "a1", Account: acc},
		}, nil)

	h := NewSessionHandler(svc)
	w := postJSON(t, h.Login, map[string]string{"email": "a@x.com", "password": "pw123456"})

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Status)
	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "tok123", data["token"])
	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a@x.com", user["email"])
	// The password hash must never appear in the response.
	_, leaked := user["password_hash"]
	assert.False(t, leaked)
}

func TestLogin_BadCredentials_Returns401(t *testing.T) {
	svc := &mockSessionSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrUnauthorized)

	h := NewSessionHandler(svc)
	w := postJSON(t, h.Login, map[string]string{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnverifiedEmail_Returns403(t *testing.T) {
	svc := &mockSessionSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrForbidden)

	h := NewSessionHandler(svc)
	w := postJSON(t, h.Login, map[string]string{"email": "a@x.com", "password": "pw123456"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogin_MissingPassword_Returns422(t *testing.T) {
	svc := &mockSessionSvc{}
	h := NewSessionHandler(svc)
	w := postJSON(t, h.Login, map[string]string{"email": "a@x.com"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	svc.AssertNotCalled(t, "Login")
}

func TestLogout_RevokesCurrentSession(t *testing.T) {
	svc := &mockSessionSvc{}
	svc.On("Logout", mock.Anything, "tok123").Return(nil)

	h := NewSessionHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	sess := &domain.Session{Token: "tok123", AccountID: "a1"}
	req = req.WithContext(context.WithValue(req.Context(), middleware.SessionKey, sess))
	w := httptest.NewRecorder()
	h.Logout(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestLogout_NoSession_Returns401(t *testing.T) {
	h := NewSessionHandler(&mockSessionSvc{})
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	h.Logout(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfile_ReturnsAuthenticatedAccount(t *testing.T) {
	h := NewSessionHandler(&mockSessionSvc{})
	acc := &domain.Account{AccountID: "a1", Email: "a@x.com", Name: "Alice"}
	sess := &domain.Session{Token: "tok123", AccountID: "a1", Account: acc}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.SessionKey, sess))
	w := httptest.NewRecorder()
	h.Profile(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Alice", data["name"])
}
