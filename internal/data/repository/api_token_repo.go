package repository

import (
	"context"
	"fmt"

	"mailgate/internal/data/entity"
	"mailgate/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type APITokenRepository interface {
	Create(ctx context.Context, token *entity.APIToken) error
	FindOwnerByHash(ctx context.Context, tokenHash string) (*entity.User, error)
	TouchLastUsed(ctx context.Context, tokenHash string) error
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.APIToken, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) error
}

type apiTokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAPITokenRepository(db database.PgxIface, log *zap.Logger) APITokenRepository {
	return &apiTokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "api_token")),
	}
}

func (r *apiTokenRepository) Create(ctx context.Context, token *entity.APIToken) error {
	query := `
		INSERT INTO api_tokens (id, user_id, token_hash, name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.Name,
		token.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create API token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
		)
		return fmt.Errorf("create API token for user %s: %w", token.UserID.String(), err)
	}

	return nil
}

// FindOwnerByHash mencari user pemilik lewat join; token yang pemiliknya
// sudah dihapus otomatis tidak menghasilkan baris.
func (r *apiTokenRepository) FindOwnerByHash(ctx context.Context, tokenHash string) (*entity.User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.role, u.must_change_password, u.created_at
		FROM api_tokens at
		INNER JOIN users u ON at.user_id = u.id
		WHERE at.token_hash = $1
	`

	var user entity.User
	var role string

	err := r.db.QueryRow(ctx, query, tokenHash).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.MustChangePassword,
		&user.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find API token owner", zap.Error(err))
		return nil, fmt.Errorf("find API token owner: %w", err)
	}

	parsed, err := entity.ParseUserRole(role)
	if err != nil {
		r.log.Warn("Ignoring API token with unknown owner role",
			zap.String("user_id", user.ID.String()),
			zap.String("role", role),
		)
		return nil, nil
	}
	user.Role = parsed

	return &user, nil
}

func (r *apiTokenRepository) TouchLastUsed(ctx context.Context, tokenHash string) error {
	query := `UPDATE api_tokens SET last_used_at = NOW() WHERE token_hash = $1`

	_, err := r.db.Exec(ctx, query, tokenHash)
	if err != nil {
		r.log.Error("Failed to touch API token last_used_at", zap.Error(err))
		return fmt.Errorf("touch API token: %w", err)
	}

	return nil
}

func (r *apiTokenRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.APIToken, error) {
	query := `
		SELECT id, user_id, token_hash, name, created_at, last_used_at
		FROM api_tokens
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list API tokens",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list API tokens for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var tokens []*entity.APIToken
	for rows.Next() {
		var token entity.APIToken
		err := rows.Scan(
			&token.ID,
			&token.UserID,
			&token.TokenHash,
			&token.Name,
			&token.CreatedAt,
			&token.LastUsedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan API token row", zap.Error(err))
			return nil, fmt.Errorf("scan API token row: %w", err)
		}
		tokens = append(tokens, &token)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate API token rows: %w", err)
	}

	return tokens, nil
}

func (r *apiTokenRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	// Scoped ke pemilik: user lain tidak bisa menghapus token orang
	query := `DELETE FROM api_tokens WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to delete API token",
			zap.Error(err),
			zap.String("token_id", id.String()),
		)
		return fmt.Errorf("delete API token %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("API token %s not found", id.String())
	}

	return nil
}
