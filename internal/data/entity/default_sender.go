package entity

import (
	"fmt"

	"github.com/google/uuid"
)

type SenderKind string

const (
	SenderKindAccount SenderKind = "account"
	SenderKindAlias   SenderKind = "alias"
)

func ParseSenderKind(value string) (SenderKind, error) {
	switch value {
	case "account":
		return SenderKindAccount, nil
	case "alias":
		return SenderKindAlias, nil
	default:
		return "", fmt.Errorf("unknown sender type: %s", value)
	}
}

// DefaultSender adalah baris singleton (key tetap = 1).
type DefaultSender struct {
	SenderType SenderKind `db:"sender_type"`
	SenderID   uuid.UUID  `db:"sender_id"`
}

// ResolvedSender adalah kredensial SMTP hasil resolve alamat "from".
// Login SMTP selalu memakai kredensial mailbox asli; alias hanya mengubah
// header From yang terlihat.
type ResolvedSender struct {
	HeaderFrom   string
	AuthEmail    string
	AuthPassword string
}

// SenderSummary adalah view kaya untuk konfigurasi default sender.
type SenderSummary struct {
	SenderType   SenderKind
	SenderID     uuid.UUID
	Email        string
	DisplayLabel string
	ViaDisplay   *string
	IsActive     bool
	Credentials  ResolvedSender
}
