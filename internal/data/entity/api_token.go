package entity

import (
	"time"

	"github.com/google/uuid"
)

// APIToken menyimpan digest dari secret; plaintext tidak pernah dipersist.
type APIToken struct {
	BaseSimple
	UserID     uuid.UUID  `db:"user_id"`
	TokenHash  string     `db:"token_hash"`
	Name       *string    `db:"name"`
	LastUsedAt *time.Time `db:"last_used_at"`
}
