package usecase

import (
	"context"
	"fmt"
	"time"

	"mailgate/internal/data/entity"
	"mailgate/internal/data/repository"
	"mailgate/internal/dto/request"
	"mailgate/internal/dto/response"
	"mailgate/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TokenService interface {
	Create(ctx context.Context, userID uuid.UUID, req *request.CreateAPITokenRequest) (*response.APITokenCreatedResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]response.APITokenResponse, error)
	Delete(ctx context.Context, userID, tokenID uuid.UUID) error
}

type tokenService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTokenService(repo *repository.Repository, log *zap.Logger) TokenService {
	return &tokenService{
		repo: repo,
		log:  log,
	}
}

func (s *tokenService) Create(ctx context.Context, userID uuid.UUID, req *request.CreateAPITokenRequest) (*response.APITokenCreatedResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create API token validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Plaintext digenerate sekali; database hanya menyimpan digest
	plaintext, err := utils.GenerateAPIToken()
	if err != nil {
		s.log.Error("Failed to generate API token", zap.Error(err))
		return nil, fmt.Errorf("failed to generate token")
	}

	token := &entity.APIToken{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		TokenHash: utils.DigestToken(plaintext),
		Name:      req.Name,
	}

	if err := s.repo.APIToken.Create(ctx, token); err != nil {
		s.log.Error("Failed to store API token", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to create token")
	}

	s.log.Info("API token created",
		zap.String("token_id", token.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return &response.APITokenCreatedResponse{
		ID:        token.ID.String(),
		Token:     plaintext,
		Name:      token.Name,
		CreatedAt: token.CreatedAt,
		Message:   "API token created. Save this token now - you won't be able to see it again!",
	}, nil
}

func (s *tokenService) List(ctx context.Context, userID uuid.UUID) ([]response.APITokenResponse, error) {
	tokens, err := s.repo.APIToken.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens")
	}

	responses := make([]response.APITokenResponse, 0, len(tokens))
	for _, token := range tokens {
		responses = append(responses, response.APITokenToResponse(token))
	}

	return responses, nil
}

func (s *tokenService) Delete(ctx context.Context, userID, tokenID uuid.UUID) error {
	// Delete di-scope ke pemilik; token user lain berperilaku seperti tidak ada
	return s.repo.APIToken.DeleteOwned(ctx, tokenID, userID)
}
