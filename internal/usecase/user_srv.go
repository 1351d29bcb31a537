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

type UserService interface {
	Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	List(ctx context.Context) ([]response.UserResponse, error)
	Update(ctx context.Context, targetID uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, actorID, targetID uuid.UUID) error
	EnsureDefaultAdmin(ctx context.Context) error
}

type userService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewUserService(repo *repository.Repository, config *utils.Config, log *zap.Logger) UserService {
	return &userService{
		repo:   repo,
		config: config,
		log:    log,
	}
}

func (s *userService) Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Role opsional, default user
	role := entity.RoleUser
	if req.Role != nil {
		parsed, err := entity.ParseUserRole(*req.Role)
		if err != nil {
			return nil, fmt.Errorf("validation failed: invalid role")
		}
		role = parsed
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	user := &entity.User{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Email:              req.Email,
		PasswordHash:       hash,
		Role:               role,
		MustChangePassword: false,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create user")
	}

	s.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context) ([]response.UserResponse, error) {
	users, err := s.repo.User.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users")
	}

	responses := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, response.UserToResponse(user))
	}

	return responses, nil
}

func (s *userService) Update(ctx context.Context, targetID uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Patch kosong ditolak
	if req.Password == nil && req.Role == nil && req.MustChangePassword == nil {
		return nil, fmt.Errorf("no fields to update")
	}

	if req.Role != nil {
		role, err := entity.ParseUserRole(*req.Role)
		if err != nil {
			return nil, fmt.Errorf("validation failed: invalid role")
		}
		if err := s.repo.User.UpdateRole(ctx, targetID, role); err != nil {
			return nil, err
		}
	}

	if req.MustChangePassword != nil {
		if err := s.repo.User.UpdateMustChangePassword(ctx, targetID, *req.MustChangePassword); err != nil {
			return nil, err
		}
	}

	// Password terakhir: set password sekaligus membersihkan flag,
	// menimpa nilai flag dari patch yang sama
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			s.log.Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("failed to process password")
		}
		if err := s.repo.User.UpdatePassword(ctx, targetID, hash); err != nil {
			return nil, err
		}
	}

	user, err := s.repo.User.FindByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user")
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", targetID.String())
	}

	s.log.Info("User updated", zap.String("user_id", targetID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, actorID, targetID uuid.UUID) error {
	// Admin tidak boleh menghapus dirinya sendiri
	if actorID == targetID {
		return fmt.Errorf("cannot delete your own account")
	}

	if err := s.repo.User.Delete(ctx, targetID); err != nil {
		return err
	}

	return nil
}

// EnsureDefaultAdmin membuat akun admin pertama saat startup. Password seed
// wajib diganti sebelum akun bisa dipakai untuk operasi lain.
func (s *userService) EnsureDefaultAdmin(ctx context.Context) error {
	if s.config.Admin.Email == "" || s.config.Admin.Password == "" {
		s.log.Warn("Admin seed skipped, ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	existing, err := s.repo.User.FindByEmail(ctx, s.config.Admin.Email)
	if err != nil {
		return fmt.Errorf("check default admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := utils.HashPassword(s.config.Admin.Password)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}

	admin := &entity.User{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Email:              s.config.Admin.Email,
		PasswordHash:       hash,
		Role:               entity.RoleAdmin,
		MustChangePassword: true,
	}

	if err := s.repo.User.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}

	s.log.Info("Default admin seeded", zap.String("email", admin.Email))
	return nil
}
