package usecase

import (
	"mailgate/internal/data/repository"
	"mailgate/pkg/captcha"
	"mailgate/pkg/mail"
	"mailgate/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	Lifecycle LifecycleService
	User      UserService
	Token     TokenService
	Account   AccountService
	Alias     AliasService
	Sender    SenderService
	Mail      MailService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	verifier captcha.Verifier,
	mailer mail.Sender,
	log *zap.Logger,
) *Service {
	sender := NewSenderService(repo, log)

	return &Service{
		Auth:      NewAuthService(repo, config, verifier, log),
		Lifecycle: NewLifecycleService(repo, sender, mailer, config, verifier, log),
		User:      NewUserService(repo, config, log),
		Token:     NewTokenService(repo, log),
		Account:   NewAccountService(repo, sender, log),
		Alias:     NewAliasService(repo, sender, log),
		Sender:    sender,
		Mail:      NewMailService(sender, mailer, log),
	}
}
