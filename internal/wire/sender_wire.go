package wire

import (
	"mailgate/internal/adaptor"
	"mailgate/internal/data/repository"
	"mailgate/pkg/middleware"
	"mailgate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireSender configures the default-sender setting routes (admin-only)
func wireSender(
	r chi.Router,
	senderHandler *adaptor.SenderHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.With(
		middleware.Auth(repo, config.JWT.Secret, log),
		middleware.RequirePasswordCurrent(log),
		middleware.Admin(log),
	).Route("/api/settings/default-sender", func(r chi.Router) {
		r.Get("/", senderHandler.GetDefault)    // GET /api/settings/default-sender
		r.Put("/", senderHandler.UpdateDefault) // PUT /api/settings/default-sender
	})
}
