package usecase

import (
	"context"
	"fmt"

	"mailgate/internal/data/entity"
	"mailgate/internal/data/repository"
	"mailgate/internal/dto/request"
	"mailgate/internal/dto/response"
	"mailgate/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountService interface {
	List(ctx context.Context) ([]response.AccountResponse, error)
	Create(ctx context.Context, req *request.CreateAccountRequest) (*response.AccountResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.UpdateAccountRequest) (*response.AccountResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type accountService struct {
	repo   *repository.Repository
	sender SenderService
	log    *zap.Logger
}

func NewAccountService(repo *repository.Repository, sender SenderService, log *zap.Logger) AccountService {
	return &accountService{
		repo:   repo,
		sender: sender,
		log:    log,
	}
}

func (s *accountService) List(ctx context.Context) ([]response.AccountResponse, error) {
	accounts, err := s.repo.Account.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts")
	}

	responses := make([]response.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, response.AccountToResponse(account))
	}

	return responses, nil
}

func (s *accountService) Create(ctx context.Context, req *request.CreateAccountRequest) (*response.AccountResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create account validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Account.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check account")
	}
	if existing != nil {
		return nil, fmt.Errorf("email address already exists")
	}

	account := &entity.Account{
		ID:          uuid.New(),
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		IsActive:    req.IsActive,
	}

	if err := s.repo.Account.Create(ctx, account); err != nil {
		s.log.Error("Failed to create account", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create account")
	}

	s.log.Info("Account created",
		zap.String("account_id", account.ID.String()),
		zap.String("email", account.Email),
	)

	resp := response.AccountToResponse(account)
	return &resp, nil
}

func (s *accountService) Update(ctx context.Context, id uuid.UUID, req *request.UpdateAccountRequest) (*response.AccountResponse, error) {
	// Patch kosong ditolak
	if req.IsActive == nil && req.Password == nil {
		return nil, fmt.Errorf("no fields to update")
	}

	if req.IsActive != nil {
		if err := s.repo.Account.UpdateIsActive(ctx, id, *req.IsActive); err != nil {
			return nil, err
		}
	}

	if req.Password != nil {
		if *req.Password == "" {
			return nil, fmt.Errorf("password cannot be empty")
		}
		if err := s.repo.Account.UpdatePassword(ctx, id, *req.Password); err != nil {
			return nil, err
		}
	}

	account, err := s.repo.Account.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load account")
	}
	if account == nil {
		return nil, fmt.Errorf("account %s not found", id.String())
	}

	s.log.Info("Account updated", zap.String("account_id", id.String()))

	resp := response.AccountToResponse(account)
	return &resp, nil
}

func (s *accountService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Account.Delete(ctx, id); err != nil {
		return err
	}

	// Default sender yang menunjuk account ini ikut dibersihkan; gagal
	// bersih-bersih tidak membatalkan delete yang sudah terjadi
	if err := s.sender.ClearDefaultIfMatches(ctx, entity.SenderKindAccount, id); err != nil {
		s.log.Warn("Failed to clear default sender after account deletion",
			zap.Error(err),
			zap.String("account_id", id.String()),
		)
	}

	return nil
}
