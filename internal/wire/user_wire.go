package wire

import (
	"mailgate/internal/adaptor"
	"mailgate/internal/data/repository"
	"mailgate/pkg/middleware"
	"mailgate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user management routes with role-based access control
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	// User management - requires authentication AND admin role
	r.With(
		middleware.Auth(repo, config.JWT.Secret, log), // Check valid token
		middleware.RequirePasswordCurrent(log),        // Block stale passwords
		middleware.Admin(log),                         // Check admin role
	).Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.List)          // GET /api/users
		r.Post("/", userHandler.Create)       // POST /api/users
		r.Patch("/{id}", userHandler.Update)  // PATCH /api/users/{user-id}
		r.Delete("/{id}", userHandler.Delete) // DELETE /api/users/{user-id}
	})
}
