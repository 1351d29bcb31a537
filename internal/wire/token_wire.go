package wire

import (
	"mailgate/internal/adaptor"
	"mailgate/internal/data/repository"
	"mailgate/pkg/middleware"
	"mailgate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireToken configures API token management routes
func wireToken(
	r chi.Router,
	tokenHandler *adaptor.TokenHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.With(
		middleware.Auth(repo, config.JWT.Secret, log),
		middleware.RequirePasswordCurrent(log),
	).Route("/api/tokens", func(r chi.Router) {
		r.Get("/", tokenHandler.List)          // GET /api/tokens
		r.Post("/", tokenHandler.Create)       // POST /api/tokens
		r.Delete("/{id}", tokenHandler.Delete) // DELETE /api/tokens/{token-id}
	})
}
