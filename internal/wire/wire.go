// internal/wire/wire.go
package wire

import (
	"net/http"
	"strconv"
	"time"

	"mailgate/internal/adaptor"
	"mailgate/internal/data/repository"
	"mailgate/internal/usecase"
	"mailgate/pkg/captcha"
	"mailgate/pkg/mail"
	"mailgate/pkg/middleware"
	"mailgate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	// Captcha hanya aktif kalau secret di-set; tanpa secret, endpoint
	// publik jalan tanpa gate
	var verifier captcha.Verifier
	if config.Turnstile.Secret != "" {
		verifier = captcha.NewTurnstileVerifier(config.Turnstile.Secret, logger)
	} else {
		logger.Warn("TURNSTILE_SECRET not set, captcha verification disabled")
	}

	mailer := mail.NewSMTPSender(
		config.SMTP.Host,
		strconv.Itoa(config.SMTP.Port),
		time.Duration(config.SMTP.TimeoutSeconds)*time.Second,
		logger,
	)

	// Initialize services dan handlers
	service := usecase.NewService(repo, config, verifier, mailer, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireToken(r, handler.Token, repo, config, logger)
	wireAccount(r, handler.Account, repo, config, logger)
	wireAlias(r, handler.Alias, repo, config, logger)
	wireSender(r, handler.Sender, repo, config, logger)
	wireMail(r, handler.Mail, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
