package usecase

import (
	"context"
	"fmt"
	"time"

	"mailgate/internal/data/repository"
	"mailgate/internal/dto/request"
	"mailgate/internal/dto/response"
	"mailgate/pkg/captcha"
	"mailgate/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error
}

type authService struct {
	repo     *repository.Repository
	config   *utils.Config
	verifier captcha.Verifier
	log      *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	verifier captcha.Verifier,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		config:   config,
		verifier: verifier,
		log:      log,
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Gate CAPTCHA (aktif hanya kalau secret dikonfigurasi)
	if err := verifyCaptchaToken(ctx, s.verifier, req.TurnstileToken); err != nil {
		s.log.Warn("Login captcha gate failed", zap.Error(err))
		return nil, err
	}

	// 3. Cari user; row dengan role tak dikenal sudah difilter repo,
	//    jadi jatuhnya sama dengan user tidak ada
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user for login", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid credentials")
	}

	// 4. Cek password. Hash rusak diperlakukan sama dengan password salah
	ok, err := utils.CheckPasswordHash(user.PasswordHash, req.Password)
	if err != nil {
		s.log.Error("Stored password hash is malformed",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return nil, fmt.Errorf("invalid credentials")
	}
	if !ok {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("invalid credentials")
	}

	// 5. Terbitkan session token
	expiry := time.Duration(s.config.JWT.ExpiryHours) * time.Hour
	token, err := utils.IssueSessionToken(
		user.ID.String(),
		user.Email,
		string(user.Role),
		s.config.JWT.Secret,
		expiry,
	)
	if err != nil {
		s.log.Error("Failed to issue session token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return &response.LoginResponse{
		Token:              token,
		ID:                 user.ID.String(),
		Email:              user.Email,
		Role:               user.Role,
		MustChangePassword: user.MustChangePassword,
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error {
	// 1. Validasi (termasuk panjang minimum password baru)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Change password validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Ambil hash terkini dari database
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load user for password change", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to load user")
	}
	if user == nil {
		return fmt.Errorf("user %s not found", userID.String())
	}

	// 3. Verifikasi password lama
	ok, err := utils.CheckPasswordHash(user.PasswordHash, req.CurrentPassword)
	if err != nil || !ok {
		s.log.Warn("Current password mismatch", zap.String("user_id", userID.String()))
		return fmt.Errorf("invalid credentials")
	}

	// 4. Hash dan simpan; UpdatePassword sekaligus membersihkan flag
	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash new password", zap.Error(err))
		return fmt.Errorf("failed to process password")
	}

	if err := s.repo.User.UpdatePassword(ctx, userID, newHash); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to update password")
	}

	s.log.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}
