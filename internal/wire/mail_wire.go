package wire

import (
	"mailgate/internal/adaptor"
	"mailgate/internal/data/repository"
	"mailgate/pkg/middleware"
	"mailgate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireMail configures the send endpoint. API tokens and session tokens
// both pass the same middleware chain.
func wireMail(
	r chi.Router,
	mailHandler *adaptor.MailHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.With(
		middleware.Auth(repo, config.JWT.Secret, log),
		middleware.RequirePasswordCurrent(log),
	).Post("/api/send", mailHandler.Send)
}
