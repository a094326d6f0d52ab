package http

import (
	"net/http"

	"github.com/go-auth-api/internal/application/auth"
	"github.com/go-auth-api/internal/application/otp"
	"github.com/go-auth-api/internal/application/session"
	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/pkg/clock"
	"github.com/go-auth-api/internal/pkg/otpcode"
	"github.com/go-auth-api/internal/transport/http/handler"
	appmiddleware "github.com/go-auth-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AccountRepo AccountRepository
	SessionRepo SessionRepository
	Notifier    Notifier
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	clk := clock.System()

	otpSvc := otp.NewService(otp.ServiceDeps{
		AccountRepo: deps.AccountRepo,
		Notifier:    deps.Notifier,
		Generator:   otpcode.New(),
		Clock:       clk,
		TTL:         cfg.OTPTTL,
	})
	authSvc := auth.NewService(auth.ServiceDeps{
		AccountRepo: deps.AccountRepo,
		SessionRepo: deps.SessionRepo,
		OTP:         otpSvc,
		Clock:       clk,
		Cooldown:    cfg.OTPResendCooldown,
	})
	sessionSvc := session.NewService(deps.SessionRepo, deps.AccountRepo, clk)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)

	authMw := appmiddleware.Auth(sessionSvc)

	// 5 requests/second, burst of 10, applied to the sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/verify-otp", authH.VerifyOTP)
		r.With(sensitiveRL.Limit).Post("/resend-otp", authH.ResendOTP)
		r.With(sensitiveRL.Limit).Post("/login", sessionH.Login)
		r.With(sensitiveRL.Limit).Post("/forgot-password", authH.ForgotPassword)
		r.With(sensitiveRL.Limit).Post("/verify-forgot-otp", authH.VerifyForgotOTP)
		r.With(sensitiveRL.Limit).Post("/reset-password", authH.ResetPassword)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/profile", sessionH.Profile)
			r.Post("/change-password", authH.ChangePassword)
			r.Post("/logout", sessionH.Logout)
		})
	})

	return r
}
