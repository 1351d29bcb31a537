package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"mailgate/internal/data/entity"
	"mailgate/internal/dto/request"
	"mailgate/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLifecycleFixture(t *testing.T) (LifecycleService, *testRepos, *fakeMailer) {
	t.Helper()

	repo, repos := newTestRepos()
	mailer := &fakeMailer{}
	sender := NewSenderService(repo, testLogger())
	service := NewLifecycleService(repo, sender, mailer, testConfig(), nil, testLogger())

	return service, repos, mailer
}

func withDefaultSender(repos *testRepos) *entity.Account {
	account := seedAccount(repos, "relay@example.com", "Relay", "smtp-pass", true)
	repos.defaultSender.current = &entity.DefaultSender{
		SenderType: entity.SenderKindAccount,
		SenderID:   account.ID,
	}
	return account
}

func TestRequestSignupAlreadyRegistered(t *testing.T) {
	service, repos, _ := newLifecycleFixture(t)
	seedUser(repos, "taken@example.com", "hash", entity.RoleUser)

	envelope, err := service.RequestSignup(context.Background(), &request.SignupRequest{
		Email:    "taken@example.com",
		Password: "password-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "error", envelope.Status)
	assert.Equal(t, "Email already registered", envelope.Message)
}

func TestRequestSignupWithoutDefaultSender(t *testing.T) {
	service, repos, _ := newLifecycleFixture(t)

	envelope, err := service.RequestSignup(context.Background(), &request.SignupRequest{
		Email:    "new@example.com",
		Password: "password-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "error", envelope.Status)
	assert.Equal(t, "Registration is temporarily unavailable. Ask an admin to set a default sender.", envelope.Message)

	// Pending row tetap dibuat sebelum cek default sender
	assert.Len(t, repos.pendingSignups.rows, 1)
}

func TestRequestSignupSuccess(t *testing.T) {
	service, repos, mailer := newLifecycleFixture(t)
	withDefaultSender(repos)

	envelope, err := service.RequestSignup(context.Background(), &request.SignupRequest{
		Email:    "New@Example.COM",
		Password: "password-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", envelope.Status)
	assert.Equal(t, "Check your inbox for a verification link.", envelope.Message)

	require.Len(t, repos.pendingSignups.rows, 1)
	var pending *entity.PendingSignup
	for _, row := range repos.pendingSignups.rows {
		pending = row
	}
	// Email dinormalisasi, password tersimpan sebagai hash
	assert.Equal(t, "new@example.com", pending.Email)
	ok, err := utils.CheckPasswordHash(pending.PasswordHash, "password-123")
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "new@example.com", msg.To)
	assert.Equal(t, "Verify your Mailgate account", msg.Subject)
	assert.Equal(t, "relay@example.com", msg.AuthEmail)
	assert.True(t, msg.HTML)
	assert.Contains(t, msg.Body, "https://mail.example.com/signup/verify?token="+pending.VerificationToken)
}

func TestRequestSignupReplacesPendingRow(t *testing.T) {
	service, repos, _ := newLifecycleFixture(t)
	withDefaultSender(repos)

	for i := 0; i < 2; i++ {
		_, err := service.RequestSignup(context.Background(), &request.SignupRequest{
			Email:    "new@example.com",
			Password: fmt.Sprintf("password-%d", i),
		})
		require.NoError(t, err)
	}

	// Request kedua mengganti baris pertama, bukan menambah
	assert.Len(t, repos.pendingSignups.rows, 1)
}

func TestVerifySignupUnknownToken(t *testing.T) {
	service, _, _ := newLifecycleFixture(t)

	envelope, err := service.VerifySignup(context.Background(), &request.SignupVerifyRequest{
		Token: "no-such-token",
	})
	require.NoError(t, err)
	assert.Equal(t, "error", envelope.Status)
	assert.Equal(t, "Invalid or expired verification link.", envelope.Message)
}

func TestVerifySignupExpiredToken(t *testing.T) {
	service, repos, _ := newLifecycleFixture(t)

	pending := &entity.PendingSignup{
		ID:                uuid.New(),
		Email:             "late@example.com",
		PasswordHash:      "hash",
		VerificationToken: "expired-token",
		ExpiresAt:         time.Now().Add(-time.Minute),
	}
	repos.pendingSignups.rows[pending.ID] = pending

	envelope, err := service.VerifySignup(context.Background(), &request.SignupVerifyRequest{
		Token: "expired-token",
	})
	require.NoError(t, err)
	assert.Equal(t, "error", envelope.Status)
	assert.Equal(t, "Verification link expired. Please register again.", envelope.Message)

	// Baris kadaluarsa dihapus saat disentuh
	assert.Empty(t, repos.pendingSignups.rows)
}

func TestVerifySignupSuccess(t *testing.T) {
	service, repos, _ := newLifecycleFixture(t)

	pending := &entity.PendingSignup{
		ID:                uuid.New(),
		Email:             "fresh@example.com",
		PasswordHash:      "hash",
		VerificationToken: "good-token",
		ExpiresAt:         time.Now().Add(10 * time.Minute),
	}
	repos.pendingSignups.rows[pending.ID] = pending

	envelope, err := service.VerifySignup(context.Background(), &request.SignupVerifyRequest{
		Token: "good-token",
	})
	require.NoError(t, err)
	assert.Equal(t, "verified", envelope.Status)
	assert.Equal(t, "Account verified. You can sign in now.", envelope.Message)

	user, err := repos.users.FindByEmail(context.Background(), "fresh@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.False(t, user.MustChangePassword)

	assert.Empty(t, repos.pendingSignups.rows)
}

func TestVerifySignupEmailAlreadyActivated(t *testing.T) {
	service, repos, _ := newLifecycleFixture(t)
	seedUser(repos, "raced@example.com", "hash", entity.RoleUser)

	pending := &entity.PendingSignup{
		ID:                uuid.New(),
		Email:             "raced@example.com",
		PasswordHash:      "hash",
		VerificationToken: "raced-token",
		ExpiresAt:         time.Now().Add(10 * time.Minute),
	}
	repos.pendingSignups.rows[pending.ID] = pending

	envelope, err := service.VerifySignup(context.Background(), &request.SignupVerifyRequest{
		Token: "raced-token",
	})
	require.NoError(t, err)
	assert.Equal(t, "error", envelope.Status)
	assert.Equal(t, "This email is already activated. Try signing in.", envelope.Message)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	service, repos, mailer := newLifecycleFixture(t)
	withDefaultSender(repos)

	envelope, err := service.RequestPasswordReset(context.Background(), &request.PasswordResetRequest{
		Email: "ghost@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", envelope.Status)
	assert.Equal(t, "If the email exists, a reset link was sent.", envelope.Message)

	// Tidak ada email terkirim dan tidak ada token dibuat
	assert.Empty(t, mailer.sent)
	assert.Empty(t, repos.resetTokens.rows)
}

func TestRequestPasswordResetKnownEmail(t *testing.T) {
	service, repos, mailer := newLifecycleFixture(t)
	withDefaultSender(repos)
	user := seedUser(repos, "member@example.com", "hash", entity.RoleUser)

	envelope, err := service.RequestPasswordReset(context.Background(), &request.PasswordResetRequest{
		Email: "member@example.com",
	})
	require.NoError(t, err)

	// Balasan identik dengan kasus email tidak dikenal
	assert.Equal(t, "ok", envelope.Status)
	assert.Equal(t, "If the email exists, a reset link was sent.", envelope.Message)

	require.Len(t, repos.resetTokens.rows, 1)
	var reset *entity.ResetToken
	for _, row := range repos.resetTokens.rows {
		reset = row
	}
	assert.Equal(t, user.ID, reset.UserID)

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "Reset your Mailgate password", msg.Subject)
	assert.Contains(t, msg.Body, "https://mail.example.com/reset-password?token="+reset.Token)
}

func TestRequestPasswordResetWithoutDefaultSender(t *testing.T) {
	service, repos, _ := newLifecycleFixture(t)
	seedUser(repos, "member@example.com", "hash", entity.RoleUser)

	envelope, err := service.RequestPasswordReset(context.Background(), &request.PasswordResetRequest{
		Email: "member@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "error", envelope.Status)
	assert.Equal(t, "Password reset is unavailable. Contact an admin.", envelope.Message)
}

func TestConfirmPasswordResetUnknownToken(t *testing.T) {
	service, _, _ := newLifecycleFixture(t)

	envelope, err := service.ConfirmPasswordReset(context.Background(), &request.PasswordResetConfirmRequest{
		Token:       "no-such-token",
		NewPassword: "brand-new-pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "error", envelope.Status)
	assert.Equal(t, "Invalid or expired reset link.", envelope.Message)
}

func TestConfirmPasswordResetExpiredToken(t *testing.T) {
	service, repos, _ := newLifecycleFixture(t)
	user := seedUser(repos, "member@example.com", "hash", entity.RoleUser)

	reset := &entity.ResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	repos.resetTokens.rows[reset.ID] = reset

	envelope, err := service.ConfirmPasswordReset(context.Background(), &request.PasswordResetConfirmRequest{
		Token:       "stale-token",
		NewPassword: "brand-new-pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "error", envelope.Status)
	assert.Equal(t, "Reset link expired. Request a new one.", envelope.Message)
	assert.Empty(t, repos.resetTokens.rows)
}

func TestConfirmPasswordResetSuccess(t *testing.T) {
	service, repos, _ := newLifecycleFixture(t)
	user := seedUser(repos, "member@example.com", "old-hash", entity.RoleUser)

	first := &entity.ResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     "live-token",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	second := &entity.ResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     "other-token",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	repos.resetTokens.rows[first.ID] = first
	repos.resetTokens.rows[second.ID] = second

	envelope, err := service.ConfirmPasswordReset(context.Background(), &request.PasswordResetConfirmRequest{
		Token:       "live-token",
		NewPassword: "brand-new-pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "success", envelope.Status)
	assert.Equal(t, "Password updated. You can sign in now.", envelope.Message)

	stored := repos.users.users[user.ID]
	ok, err := utils.CheckPasswordHash(stored.PasswordHash, "brand-new-pw")
	require.NoError(t, err)
	assert.True(t, ok)

	// Semua token milik user dibersihkan, bukan hanya yang dipakai
	assert.Empty(t, repos.resetTokens.rows)
}

func TestResetFlowsCaptchaGate(t *testing.T) {
	repo, repos := newTestRepos()
	seedUser(repos, "member@example.com", "hash", entity.RoleUser)
	mailer := &fakeMailer{}
	sender := NewSenderService(repo, testLogger())
	verifier := &fakeVerifier{ok: true}
	service := NewLifecycleService(repo, sender, mailer, testConfig(), verifier, testLogger())

	_, err := service.RequestPasswordReset(context.Background(), &request.PasswordResetRequest{
		Email: "member@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "captcha token required")

	_, err = service.ConfirmPasswordReset(context.Background(), &request.PasswordResetConfirmRequest{
		Token:       "some-token",
		NewPassword: "brand-new-pw",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "captcha token required")
}
