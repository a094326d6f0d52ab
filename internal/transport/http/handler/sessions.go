package handler

import (
	"net/http"

	"github.com/go-auth-api/internal/application/session"
	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/transport/http/middleware"
)

// SessionHandler handles login, logout and the authenticated profile.
type SessionHandler struct {
	svc session.Service
}

func NewSessionHandler(svc session.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req session.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Login successful", map[string]interface{}{
		"token": result.Token,
		"user":  result.Session.Account,
	})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if err := h.svc.Logout(r.Context(), sess.Token); err != nil {
		httpError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Logged out successfully", nil)
}

func (h *SessionHandler) Profile(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var acc *domain.Account
	if sess.Account != nil {
		acc = sess.Account
	}
	respondSuccess(w, http.StatusOK, "Profile fetched successfully", acc)
}
