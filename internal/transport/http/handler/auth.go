package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-auth-api/internal/application/auth"
	"github.com/go-auth-api/internal/pkg/validate"
	"github.com/go-auth-api/internal/transport/http/middleware"
)

// AuthHandler handles the OTP-gated credential lifecycle endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	acc, err := h.svc.Register(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated,
		"Registered successfully. Please check your email for the OTP code.",
		map[string]string{"email": acc.Email})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req auth.VerifyOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.svc.VerifyEmailOTP(r.Context(), req.Email, req.OTP); err != nil {
		httpError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Email verified successfully", nil)
}

func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req auth.ResendOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.svc.ResendOTP(r.Context(), req.Email); err != nil {
		httpError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "OTP resent successfully", nil)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ForgotPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.svc.ForgotPassword(r.Context(), req.Email); err != nil {
		httpError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Password reset OTP sent to email", nil)
}

func (h *AuthHandler) VerifyForgotOTP(w http.ResponseWriter, r *http.Request) {
	var req auth.VerifyOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.svc.VerifyForgotOTP(r.Context(), req.Email, req.OTP); err != nil {
		httpError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "OTP verified, you can reset password now", nil)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ResetPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.svc.ResetPassword(r.Context(), req.Email, req.Password); err != nil {
		httpError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Password reset successful", nil)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req auth.ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.svc.ChangePassword(r.Context(), sess.Account, sess.Token, req.CurrentPassword, req.Password); err != nil {
		httpError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Password changed successfully", nil)
}

// decodeAndValidate decodes the JSON body into req and runs the validate tags.
// Writes the error response itself and returns false when the request is bad.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return false
	}
	return true
}
