package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mailgate/internal/data/entity"
	"mailgate/internal/data/repository"
	"mailgate/internal/dto/request"
	"mailgate/internal/dto/response"
	"mailgate/pkg/captcha"
	"mailgate/pkg/mail"
	"mailgate/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lifecycleTokenTTL = 30 * time.Minute

// LifecycleService menangani signup dan password reset. Hampir semua hasil
// dipulangkan sebagai envelope status/message di HTTP 200 supaya klien tidak
// bisa membedakan kegagalan lewat status code; error hanya untuk kegagalan
// infrastruktur atau gate CAPTCHA.
type LifecycleService interface {
	RequestSignup(ctx context.Context, req *request.SignupRequest) (*response.Envelope, error)
	VerifySignup(ctx context.Context, req *request.SignupVerifyRequest) (*response.Envelope, error)
	RequestPasswordReset(ctx context.Context, req *request.PasswordResetRequest) (*response.Envelope, error)
	ConfirmPasswordReset(ctx context.Context, req *request.PasswordResetConfirmRequest) (*response.Envelope, error)
}

type lifecycleService struct {
	repo     *repository.Repository
	sender   SenderService
	mailer   mail.Sender
	config   *utils.Config
	verifier captcha.Verifier
	log      *zap.Logger
}

func NewLifecycleService(
	repo *repository.Repository,
	sender SenderService,
	mailer mail.Sender,
	config *utils.Config,
	verifier captcha.Verifier,
	log *zap.Logger,
) LifecycleService {
	return &lifecycleService{
		repo:     repo,
		sender:   sender,
		mailer:   mailer,
		config:   config,
		verifier: verifier,
		log:      log,
	}
}

func normalizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func (s *lifecycleService) RequestSignup(ctx context.Context, req *request.SignupRequest) (*response.Envelope, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	email := normalizeEmail(req.Email)

	// 2. Email yang sudah punya akun tidak boleh daftar lagi
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check existing user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existing != nil {
		return &response.Envelope{
			Status:  "error",
			Message: "Email already registered",
		}, nil
	}

	// 3. Hash password sekarang; user baru dibuat saat verifikasi
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash signup password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	token := uuid.NewString()
	pending := &entity.PendingSignup{
		ID:                uuid.New(),
		Email:             email,
		PasswordHash:      passwordHash,
		VerificationToken: token,
		ExpiresAt:         time.Now().Add(lifecycleTokenTTL),
	}

	// 4. Pendaftaran ulang mengganti pending row lama (delete lalu insert)
	if err := s.repo.PendingSignup.DeleteByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to register")
	}
	if err := s.repo.PendingSignup.Create(ctx, pending); err != nil {
		return nil, fmt.Errorf("failed to register")
	}

	// 5. Link verifikasi dikirim lewat default sender; tanpa default sender
	//    registrasi ditutup sementara
	summary, err := s.sender.GetDefault(ctx)
	if err != nil {
		s.log.Error("Failed to load default sender", zap.Error(err))
		return nil, fmt.Errorf("failed to load default sender")
	}
	if summary == nil {
		return &response.Envelope{
			Status:  "error",
			Message: "Registration is temporarily unavailable. Ask an admin to set a default sender.",
		}, nil
	}

	verifyURL := fmt.Sprintf("%s/signup/verify?token=%s", strings.TrimRight(s.config.App.BaseURL, "/"), token)
	bodyLines := []string{
		fmt.Sprintf("Welcome! Confirm that %s should send through Mailgate.", email),
		"This link expires in 30 minutes.",
	}
	emailBody := mail.BuildSystemEmailHTML("Verify your Mailgate account", bodyLines, "Verify account", verifyURL)

	err = s.mailer.Send(ctx, mail.Message{
		HeaderFrom:   summary.Credentials.HeaderFrom,
		AuthEmail:    summary.Credentials.AuthEmail,
		AuthPassword: summary.Credentials.AuthPassword,
		To:           email,
		Subject:      "Verify your Mailgate account",
		Body:         emailBody,
		HTML:         true,
	})
	if err != nil {
		s.log.Error("Failed to send verification email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to send verification email")
	}

	s.log.Info("Signup requested", zap.String("email", email))

	return &response.Envelope{
		Status:  "pending",
		Message: "Check your inbox for a verification link.",
	}, nil
}

func (s *lifecycleService) VerifySignup(ctx context.Context, req *request.SignupVerifyRequest) (*response.Envelope, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	pending, err := s.repo.PendingSignup.FindByToken(ctx, req.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to verify signup")
	}
	if pending == nil {
		return &response.Envelope{
			Status:  "error",
			Message: "Invalid or expired verification link.",
		}, nil
	}

	// Expiry dicek lazy: baris kadaluarsa baru dihapus saat disentuh
	if pending.Expired(time.Now()) {
		if err := s.repo.PendingSignup.DeleteByID(ctx, pending.ID); err != nil {
			s.log.Warn("Failed to delete expired pending signup", zap.Error(err))
		}
		return &response.Envelope{
			Status:  "error",
			Message: "Verification link expired. Please register again.",
		}, nil
	}

	user := &entity.User{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Email:              pending.Email,
		PasswordHash:       pending.PasswordHash,
		Role:               entity.RoleUser,
		MustChangePassword: false,
	}

	// Insert gagal berarti email keburu diaktivasi lewat jalur lain
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Warn("Failed to finalize signup", zap.Error(err), zap.String("email", pending.Email))
		return &response.Envelope{
			Status:  "error",
			Message: "This email is already activated. Try signing in.",
		}, nil
	}

	if err := s.repo.PendingSignup.DeleteByID(ctx, pending.ID); err != nil {
		s.log.Warn("Failed to delete consumed pending signup", zap.Error(err))
	}

	s.log.Info("Signup verified",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return &response.Envelope{
		Status:  "verified",
		Message: "Account verified. You can sign in now.",
	}, nil
}

func (s *lifecycleService) RequestPasswordReset(ctx context.Context, req *request.PasswordResetRequest) (*response.Envelope, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := verifyCaptchaToken(ctx, s.verifier, req.TurnstileToken); err != nil {
		s.log.Warn("Password reset captcha gate failed", zap.Error(err))
		return nil, err
	}

	// Jawaban selalu sama, ada atau tidaknya akun tidak boleh bocor
	genericReply := &response.Envelope{
		Status:  "ok",
		Message: "If the email exists, a reset link was sent.",
	}

	email := normalizeEmail(req.Email)

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to look up user for reset", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to request reset")
	}
	if user == nil {
		return genericReply, nil
	}

	token := uuid.NewString()
	reset := &entity.ResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(lifecycleTokenTTL),
	}

	// Request baru mengganti token lama milik user yang sama
	if err := s.repo.ResetToken.DeleteByUser(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to request reset")
	}
	if err := s.repo.ResetToken.Create(ctx, reset); err != nil {
		return nil, fmt.Errorf("failed to request reset")
	}

	summary, err := s.sender.GetDefault(ctx)
	if err != nil || summary == nil {
		// Tetap envelope error, bukan 500: jalur ini juga tidak boleh
		// membedakan diri dari balasan generik secara mencolok
		if err != nil {
			s.log.Error("Failed to load default sender for reset", zap.Error(err))
		}
		return &response.Envelope{
			Status:  "error",
			Message: "Password reset is unavailable. Contact an admin.",
		}, nil
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.config.App.BaseURL, "/"), token)
	bodyLines := []string{
		fmt.Sprintf("We received a reset request for %s.", email),
		"This link expires in 30 minutes. If you didn't request it, you can ignore this email.",
	}
	emailBody := mail.BuildSystemEmailHTML("Reset your Mailgate password", bodyLines, "Reset password", resetURL)

	err = s.mailer.Send(ctx, mail.Message{
		HeaderFrom:   summary.Credentials.HeaderFrom,
		AuthEmail:    summary.Credentials.AuthEmail,
		AuthPassword: summary.Credentials.AuthPassword,
		To:           email,
		Subject:      "Reset your Mailgate password",
		Body:         emailBody,
		HTML:         true,
	})
	if err != nil {
		s.log.Error("Failed to send reset email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to send reset email")
	}

	s.log.Info("Password reset requested", zap.String("user_id", user.ID.String()))

	return genericReply, nil
}

func (s *lifecycleService) ConfirmPasswordReset(ctx context.Context, req *request.PasswordResetConfirmRequest) (*response.Envelope, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := verifyCaptchaToken(ctx, s.verifier, req.TurnstileToken); err != nil {
		s.log.Warn("Reset confirm captcha gate failed", zap.Error(err))
		return nil, err
	}

	reset, err := s.repo.ResetToken.FindByToken(ctx, req.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm reset")
	}
	if reset == nil {
		return &response.Envelope{
			Status:  "error",
			Message: "Invalid or expired reset link.",
		}, nil
	}

	if reset.Expired(time.Now()) {
		if err := s.repo.ResetToken.DeleteByToken(ctx, req.Token); err != nil {
			s.log.Warn("Failed to delete expired reset token", zap.Error(err))
		}
		return &response.Envelope{
			Status:  "error",
			Message: "Reset link expired. Request a new one.",
		}, nil
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash reset password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	if err := s.repo.User.UpdatePassword(ctx, reset.UserID, newHash); err != nil {
		s.log.Error("Failed to apply password reset", zap.Error(err), zap.String("user_id", reset.UserID.String()))
		return nil, fmt.Errorf("failed to update password")
	}

	// Semua token milik user dibersihkan, bukan cuma yang dipakai
	if err := s.repo.ResetToken.DeleteByUser(ctx, reset.UserID); err != nil {
		s.log.Warn("Failed to clear reset tokens", zap.Error(err), zap.String("user_id", reset.UserID.String()))
	}

	s.log.Info("Password reset confirmed", zap.String("user_id", reset.UserID.String()))

	return &response.Envelope{
		Status:  "success",
		Message: "Password updated. You can sign in now.",
	}, nil
}
