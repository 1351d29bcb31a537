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

type AliasService interface {
	List(ctx context.Context) ([]response.AliasResponse, error)
	Create(ctx context.Context, req *request.CreateAliasRequest) (*response.AliasResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.UpdateAliasRequest) (*response.AliasResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type aliasService struct {
	repo   *repository.Repository
	sender SenderService
	log    *zap.Logger
}

func NewAliasService(repo *repository.Repository, sender SenderService, log *zap.Logger) AliasService {
	return &aliasService{
		repo:   repo,
		sender: sender,
		log:    log,
	}
}

func (s *aliasService) List(ctx context.Context) ([]response.AliasResponse, error) {
	aliases, err := s.repo.Alias.FindAllWithAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list aliases")
	}

	responses := make([]response.AliasResponse, 0, len(aliases))
	for _, alias := range aliases {
		responses = append(responses, response.AliasToResponse(alias))
	}

	return responses, nil
}

func (s *aliasService) Create(ctx context.Context, req *request.CreateAliasRequest) (*response.AliasResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create alias validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("validation failed: invalid account id")
	}

	// Account induk harus ada
	account, err := s.repo.Account.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to check account")
	}
	if account == nil {
		return nil, fmt.Errorf("unknown account")
	}

	// alias_email unik
	exists, err := s.repo.Alias.ExistsByAliasEmail(ctx, req.AliasEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check alias")
	}
	if exists {
		return nil, fmt.Errorf("alias email already exists")
	}

	alias := &entity.Alias{
		ID:          uuid.New(),
		AliasEmail:  req.AliasEmail,
		DisplayName: req.DisplayName,
		IsActive:    req.IsActive,
		AccountID:   accountID,
	}

	if err := s.repo.Alias.Create(ctx, alias); err != nil {
		s.log.Error("Failed to create alias", zap.Error(err), zap.String("alias_email", req.AliasEmail))
		return nil, fmt.Errorf("failed to create alias")
	}

	s.log.Info("Alias created",
		zap.String("alias_id", alias.ID.String()),
		zap.String("alias_email", alias.AliasEmail),
	)

	resp := response.AliasToResponse(&entity.AliasWithAccount{
		Alias:              *alias,
		AccountEmail:       account.Email,
		AccountDisplayName: account.DisplayName,
		AccountPassword:    account.Password,
		AccountIsActive:    account.IsActive,
	})
	return &resp, nil
}

func (s *aliasService) Update(ctx context.Context, id uuid.UUID, req *request.UpdateAliasRequest) (*response.AliasResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update alias validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.AccountID == nil && req.DisplayName == nil && req.IsActive == nil {
		return nil, fmt.Errorf("no fields to update")
	}

	if req.AccountID != nil {
		accountID, err := uuid.Parse(*req.AccountID)
		if err != nil {
			return nil, fmt.Errorf("validation failed: invalid account id")
		}
		account, err := s.repo.Account.FindByID(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to check account")
		}
		if account == nil {
			return nil, fmt.Errorf("unknown account")
		}
		if err := s.repo.Alias.UpdateAccountID(ctx, id, accountID); err != nil {
			return nil, err
		}
	}

	if req.DisplayName != nil {
		if err := s.repo.Alias.UpdateDisplayName(ctx, id, *req.DisplayName); err != nil {
			return nil, err
		}
	}

	if req.IsActive != nil {
		if err := s.repo.Alias.UpdateIsActive(ctx, id, *req.IsActive); err != nil {
			return nil, err
		}
	}

	alias, err := s.repo.Alias.FindByIDWithAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load alias")
	}
	if alias == nil {
		return nil, fmt.Errorf("alias %s not found", id.String())
	}

	s.log.Info("Alias updated", zap.String("alias_id", id.String()))

	resp := response.AliasToResponse(alias)
	return &resp, nil
}

func (s *aliasService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Alias.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.sender.ClearDefaultIfMatches(ctx, entity.SenderKindAlias, id); err != nil {
		s.log.Warn("Failed to clear default sender after alias deletion",
			zap.Error(err),
			zap.String("alias_id", id.String()),
		)
	}

	return nil
}
