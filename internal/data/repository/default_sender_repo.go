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

type DefaultSenderRepository interface {
	Get(ctx context.Context) (*entity.DefaultSender, error)
	Upsert(ctx context.Context, sender *entity.DefaultSender) error
	DeleteIfMatches(ctx context.Context, kind entity.SenderKind, id uuid.UUID) error
}

type defaultSenderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDefaultSenderRepository(db database.PgxIface, log *zap.Logger) DefaultSenderRepository {
	return &defaultSenderRepository{
		db:  db,
		log: log.With(zap.String("repository", "default_sender")),
	}
}

func (r *defaultSenderRepository) Get(ctx context.Context) (*entity.DefaultSender, error) {
	query := `SELECT sender_type, sender_id FROM default_sender WHERE singleton = 1`

	var senderType string
	var sender entity.DefaultSender

	err := r.db.QueryRow(ctx, query).Scan(&senderType, &sender.SenderID)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to get default sender", zap.Error(err))
		return nil, fmt.Errorf("get default sender: %w", err)
	}

	parsed, err := entity.ParseSenderKind(senderType)
	if err != nil {
		r.log.Warn("Ignoring default sender with unknown type",
			zap.String("sender_type", senderType),
		)
		return nil, nil
	}
	sender.SenderType = parsed

	return &sender, nil
}

func (r *defaultSenderRepository) Upsert(ctx context.Context, sender *entity.DefaultSender) error {
	query := `
		INSERT INTO default_sender (singleton, sender_type, sender_id)
		VALUES (1, $1, $2)
		ON CONFLICT (singleton)
		DO UPDATE SET sender_type = EXCLUDED.sender_type, sender_id = EXCLUDED.sender_id
	`

	_, err := r.db.Exec(ctx, query, string(sender.SenderType), sender.SenderID)
	if err != nil {
		r.log.Error("Failed to upsert default sender",
			zap.Error(err),
			zap.String("sender_type", string(sender.SenderType)),
			zap.String("sender_id", sender.SenderID.String()),
		)
		return fmt.Errorf("upsert default sender: %w", err)
	}

	return nil
}

// DeleteIfMatches dipanggil setelah account/alias dihapus supaya default
// sender tidak menunjuk baris yang sudah tidak ada.
func (r *defaultSenderRepository) DeleteIfMatches(ctx context.Context, kind entity.SenderKind, id uuid.UUID) error {
	query := `DELETE FROM default_sender WHERE sender_type = $1 AND sender_id = $2`

	_, err := r.db.Exec(ctx, query, string(kind), id)
	if err != nil {
		r.log.Error("Failed to clear default sender",
			zap.Error(err),
			zap.String("sender_type", string(kind)),
			zap.String("sender_id", id.String()),
		)
		return fmt.Errorf("clear default sender: %w", err)
	}

	return nil
}
