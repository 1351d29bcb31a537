package entity

import (
	"time"

	"github.com/google/uuid"
)

type ResetToken struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (t *ResetToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
