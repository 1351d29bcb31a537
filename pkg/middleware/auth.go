package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"mailgate/internal/data/entity"
	"mailgate/internal/data/repository"
	"mailgate/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth memvalidasi bearer token dengan urutan tetap: API token dulu, baru
// session token. API token 64 karakter bisa saja mirip JWT pendek, jadi
// urutannya tidak boleh dibalik.
func Auth(repo *repository.Repository, jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := strings.TrimSpace(parts[1])
			if token == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			// 1. Coba sebagai API token (lookup via digest)
			digest := utils.DigestToken(token)
			owner, err := repo.APIToken.FindOwnerByHash(r.Context(), digest)
			if err != nil {
				logger.Error("API token lookup failed", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if owner != nil {
				// Touch last_used_at di background; kegagalan tidak boleh
				// menggagalkan request yang sudah terautentikasi.
				go func() {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := repo.APIToken.TouchLastUsed(ctx, digest); err != nil {
						logger.Warn("Failed to touch API token last_used_at", zap.Error(err))
					}
				}()

				ctx := utils.SetPrincipalContext(r.Context(), &utils.Principal{
					ID:                 owner.ID,
					Email:              owner.Email,
					Role:               string(owner.Role),
					MustChangePassword: owner.MustChangePassword,
				})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// 2. Coba sebagai session token
			claims, err := utils.VerifySessionToken(token, jwtSecret)
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// Reload user: role dan flag di klaim bisa basi, database yang
			// authoritative. User yang sudah dihapus otomatis 401.
			user, err := repo.User.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load session user",
					zap.Error(err),
					zap.String("user_id", userID.String()),
				)
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil {
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetPrincipalContext(r.Context(), &utils.Principal{
				ID:                 user.ID,
				Email:              user.Email,
				Role:               string(user.Role),
				MustChangePassword: user.MustChangePassword,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePasswordCurrent menolak user yang masih memakai password seed.
// Dipasang di semua route terproteksi kecuali change-password dan me.
func RequirePasswordCurrent(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := utils.GetPrincipalFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if principal.MustChangePassword {
				logger.Warn("Blocked request pending password change",
					zap.String("user_id", principal.ID.String()),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Password change required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Admin cek role admin dari principal yang sudah diset Auth
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := utils.GetPrincipalFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if principal.Role != string(entity.RoleAdmin) {
				logger.Warn("Non-admin access attempt",
					zap.String("user_id", principal.ID.String()),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
