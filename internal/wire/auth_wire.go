package wire

import (
	"mailgate/internal/adaptor"
	"mailgate/internal/data/repository"
	"mailgate/pkg/middleware"
	"mailgate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAuth configures authentication and account lifecycle routes
func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/signup", authHandler.Signup)
	r.Post("/api/auth/signup/verify", authHandler.VerifySignup)
	r.Post("/api/auth/password-reset", authHandler.RequestPasswordReset)
	r.Post("/api/auth/password-reset/confirm", authHandler.ConfirmPasswordReset)

	// ==================== PROTECTED ROUTES ====================
	// Change-password sengaja TIDAK pakai RequirePasswordCurrent; user yang
	// dipaksa ganti password harus tetap bisa masuk ke sini
	r.With(middleware.Auth(repo, config.JWT.Secret, log)).Group(func(r chi.Router) {
		r.Post("/api/auth/change-password", authHandler.ChangePassword)
		r.Get("/api/auth/me", authHandler.Me)
	})
}
