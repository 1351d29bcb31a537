package wire

import (
	"mailgate/internal/adaptor"
	"mailgate/internal/data/repository"
	"mailgate/pkg/middleware"
	"mailgate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAccount configures SMTP account routes. Listing is open to any
// authenticated principal; mutations are admin-only.
func wireAccount(
	r chi.Router,
	accountHandler *adaptor.AccountHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.Auth(repo, config.JWT.Secret, log)
	current := middleware.RequirePasswordCurrent(log)
	admin := middleware.Admin(log)

	r.With(auth, current).Get("/api/accounts", accountHandler.List)

	// ==================== ADMIN ROUTES ====================
	r.With(auth, current, admin).Post("/api/accounts", accountHandler.Create)
	r.With(auth, current, admin).Patch("/api/accounts/{id}", accountHandler.Update)
	r.With(auth, current, admin).Delete("/api/accounts/{id}", accountHandler.Delete)
}
