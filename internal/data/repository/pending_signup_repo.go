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

type PendingSignupRepository interface {
	Create(ctx context.Context, pending *entity.PendingSignup) error
	FindByToken(ctx context.Context, token string) (*entity.PendingSignup, error)
	DeleteByEmail(ctx context.Context, email string) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type pendingSignupRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPendingSignupRepository(db database.PgxIface, log *zap.Logger) PendingSignupRepository {
	return &pendingSignupRepository{
		db:  db,
		log: log.With(zap.String("repository", "pending_signup")),
	}
}

func (r *pendingSignupRepository) Create(ctx context.Context, pending *entity.PendingSignup) error {
	query := `
		INSERT INTO pending_signups (id, email, password_hash, verification_token, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		pending.ID,
		pending.Email,
		pending.PasswordHash,
		pending.VerificationToken,
		pending.ExpiresAt,
	)

	if err != nil {
		r.log.Error("Failed to create pending signup",
			zap.Error(err),
			zap.String("email", pending.Email),
		)
		return fmt.Errorf("create pending signup for %s: %w", pending.Email, err)
	}

	return nil
}

func (r *pendingSignupRepository) FindByToken(ctx context.Context, token string) (*entity.PendingSignup, error) {
	query := `
		SELECT id, email, password_hash, verification_token, expires_at
		FROM pending_signups
		WHERE verification_token = $1
	`

	var pending entity.PendingSignup
	err := r.db.QueryRow(ctx, query, token).Scan(
		&pending.ID,
		&pending.Email,
		&pending.PasswordHash,
		&pending.VerificationToken,
		&pending.ExpiresAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pending signup by token", zap.Error(err))
		return nil, fmt.Errorf("find pending signup by token: %w", err)
	}

	return &pending, nil
}

func (r *pendingSignupRepository) DeleteByEmail(ctx context.Context, email string) error {
	query := `DELETE FROM pending_signups WHERE email = $1`

	_, err := r.db.Exec(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to delete pending signup by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("delete pending signup for %s: %w", email, err)
	}

	return nil
}

func (r *pendingSignupRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM pending_signups WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete pending signup",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete pending signup %s: %w", id.String(), err)
	}

	return nil
}
