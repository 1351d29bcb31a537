package adaptor

import (
	"mailgate/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Token   *TokenHandler
	Account *AccountHandler
	Alias   *AliasHandler
	Sender  *SenderHandler
	Mail    *MailHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, service.Lifecycle, log),
		User:    NewUserHandler(service.User, log),
		Token:   NewTokenHandler(service.Token, log),
		Account: NewAccountHandler(service.Account, log),
		Alias:   NewAliasHandler(service.Alias, log),
		Sender:  NewSenderHandler(service.Sender, log),
		Mail:    NewMailHandler(service.Mail, log),
	}
}
