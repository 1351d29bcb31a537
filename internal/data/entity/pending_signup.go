package entity

import (
	"time"

	"github.com/google/uuid"
)

type PendingSignup struct {
	ID                uuid.UUID `db:"id"`
	Email             string    `db:"email"`
	PasswordHash      string    `db:"password_hash"`
	VerificationToken string    `db:"verification_token"`
	ExpiresAt         time.Time `db:"expires_at"`
}

func (p *PendingSignup) Expired(now time.Time) bool {
	return p.ExpiresAt.Before(now)
}
