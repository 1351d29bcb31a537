package usecase

import (
	"context"
	"fmt"

	"mailgate/internal/data/entity"
	"mailgate/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SenderService interface {
	ResolveByEmail(ctx context.Context, email string) (*entity.ResolvedSender, error)
	Summarize(ctx context.Context, kind entity.SenderKind, id uuid.UUID) (*entity.SenderSummary, error)
	GetDefault(ctx context.Context) (*entity.SenderSummary, error)
	SetDefault(ctx context.Context, kind entity.SenderKind, id uuid.UUID) (*entity.SenderSummary, error)
	ClearDefaultIfMatches(ctx context.Context, kind entity.SenderKind, id uuid.UUID) error
}

type senderService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSenderService(repo *repository.Repository, log *zap.Logger) SenderService {
	return &senderService{
		repo: repo,
		log:  log,
	}
}

// ResolveByEmail mencocokkan alamat "from" ke kredensial SMTP. Account aktif
// menang dulu; alias hanya dipakai kalau alias DAN account induknya aktif.
func (s *senderService) ResolveByEmail(ctx context.Context, email string) (*entity.ResolvedSender, error) {
	account, err := s.repo.Account.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("resolve sender: %w", err)
	}
	if account != nil {
		return &entity.ResolvedSender{
			HeaderFrom:   account.Email,
			AuthEmail:    account.Email,
			AuthPassword: account.Password,
		}, nil
	}

	alias, err := s.repo.Alias.FindByEmailWithAccount(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("resolve sender: %w", err)
	}
	if alias != nil && alias.IsActive && alias.AccountIsActive {
		return &entity.ResolvedSender{
			HeaderFrom:   alias.AliasEmail,
			AuthEmail:    alias.AccountEmail,
			AuthPassword: alias.AccountPassword,
		}, nil
	}

	return nil, fmt.Errorf("sender account or alias not found or inactive for %s", email)
}

func (s *senderService) Summarize(ctx context.Context, kind entity.SenderKind, id uuid.UUID) (*entity.SenderSummary, error) {
	switch kind {
	case entity.SenderKindAccount:
		return s.summarizeAccount(ctx, id)
	case entity.SenderKindAlias:
		return s.summarizeAlias(ctx, id)
	default:
		return nil, fmt.Errorf("unknown sender type: %s", kind)
	}
}

func (s *senderService) summarizeAccount(ctx context.Context, id uuid.UUID) (*entity.SenderSummary, error) {
	account, err := s.repo.Account.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("summarize account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("Account not found")
	}
	if !account.IsActive {
		return nil, fmt.Errorf("Account is inactive")
	}

	return &entity.SenderSummary{
		SenderType:   entity.SenderKindAccount,
		SenderID:     account.ID,
		Email:        account.Email,
		DisplayLabel: account.DisplayName,
		ViaDisplay:   nil,
		IsActive:     account.IsActive,
		Credentials: entity.ResolvedSender{
			HeaderFrom:   account.Email,
			AuthEmail:    account.Email,
			AuthPassword: account.Password,
		},
	}, nil
}

func (s *senderService) summarizeAlias(ctx context.Context, id uuid.UUID) (*entity.SenderSummary, error) {
	alias, err := s.repo.Alias.FindByIDWithAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("summarize alias: %w", err)
	}
	if alias == nil {
		return nil, fmt.Errorf("Alias not found")
	}
	if !alias.IsActive {
		return nil, fmt.Errorf("Alias is inactive")
	}
	if !alias.AccountIsActive {
		return nil, fmt.Errorf("Underlying account is inactive")
	}

	displayLabel := alias.AliasEmail
	if alias.DisplayName != nil && *alias.DisplayName != "" {
		displayLabel = *alias.DisplayName
	}
	viaDisplay := fmt.Sprintf("%s (%s)", alias.AccountDisplayName, alias.AccountEmail)

	return &entity.SenderSummary{
		SenderType:   entity.SenderKindAlias,
		SenderID:     alias.ID,
		Email:        alias.AliasEmail,
		DisplayLabel: displayLabel,
		ViaDisplay:   &viaDisplay,
		IsActive:     alias.IsActive && alias.AccountIsActive,
		Credentials: entity.ResolvedSender{
			HeaderFrom:   alias.AliasEmail,
			AuthEmail:    alias.AccountEmail,
			AuthPassword: alias.AccountPassword,
		},
	}, nil
}

// GetDefault mengembalikan (nil, nil) kalau belum ada default sender.
// Kalau baris default menunjuk target yang hilang atau nonaktif, error dari
// Summarize diteruskan apa adanya.
func (s *senderService) GetDefault(ctx context.Context) (*entity.SenderSummary, error) {
	current, err := s.repo.DefaultSender.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get default sender: %w", err)
	}
	if current == nil {
		return nil, nil
	}

	return s.Summarize(ctx, current.SenderType, current.SenderID)
}

// SetDefault memvalidasi target lewat Summarize dulu; target invalid tidak
// pernah menyentuh baris singleton.
func (s *senderService) SetDefault(ctx context.Context, kind entity.SenderKind, id uuid.UUID) (*entity.SenderSummary, error) {
	summary, err := s.Summarize(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	err = s.repo.DefaultSender.Upsert(ctx, &entity.DefaultSender{
		SenderType: summary.SenderType,
		SenderID:   summary.SenderID,
	})
	if err != nil {
		s.log.Error("Failed to upsert default sender", zap.Error(err))
		return nil, fmt.Errorf("failed to set default sender")
	}

	s.log.Info("Default sender updated",
		zap.String("sender_type", string(summary.SenderType)),
		zap.String("sender_id", summary.SenderID.String()),
	)

	return summary, nil
}

func (s *senderService) ClearDefaultIfMatches(ctx context.Context, kind entity.SenderKind, id uuid.UUID) error {
	return s.repo.DefaultSender.DeleteIfMatches(ctx, kind, id)
}
