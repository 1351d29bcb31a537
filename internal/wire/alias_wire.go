package wire

import (
	"mailgate/internal/adaptor"
	"mailgate/internal/data/repository"
	"mailgate/pkg/middleware"
	"mailgate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAlias configures alias routes. Same access split as accounts:
// read for everyone authenticated, write for admins.
func wireAlias(
	r chi.Router,
	aliasHandler *adaptor.AliasHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.Auth(repo, config.JWT.Secret, log)
	current := middleware.RequirePasswordCurrent(log)
	admin := middleware.Admin(log)

	r.With(auth, current).Get("/api/aliases", aliasHandler.List)

	// ==================== ADMIN ROUTES ====================
	r.With(auth, current, admin).Post("/api/aliases", aliasHandler.Create)
	r.With(auth, current, admin).Patch("/api/aliases/{id}", aliasHandler.Update)
	r.With(auth, current, admin).Delete("/api/aliases/{id}", aliasHandler.Delete)
}
