package repository

import (
	"mailgate/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	APIToken      APITokenRepository
	PendingSignup PendingSignupRepository
	ResetToken    ResetTokenRepository
	Account       AccountRepository
	Alias         AliasRepository
	DefaultSender DefaultSenderRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		APIToken:      NewAPITokenRepository(db, log),
		PendingSignup: NewPendingSignupRepository(db, log),
		ResetToken:    NewResetTokenRepository(db, log),
		Account:       NewAccountRepository(db, log),
		Alias:         NewAliasRepository(db, log),
		DefaultSender: NewDefaultSenderRepository(db, log),
	}
}
