package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mailgate/internal/data/entity"
	"mailgate/internal/data/repository"
	"mailgate/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubUserRepo struct {
	user *entity.User
}

func (s *stubUserRepo) Create(context.Context, *entity.User) error { return nil }

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindAll(context.Context) ([]*entity.User, error) { return nil, nil }

func (s *stubUserRepo) UpdatePassword(context.Context, uuid.UUID, string) error { return nil }

func (s *stubUserRepo) UpdateRole(context.Context, uuid.UUID, entity.UserRole) error { return nil }

func (s *stubUserRepo) UpdateMustChangePassword(context.Context, uuid.UUID, bool) error { return nil }

func (s *stubUserRepo) Delete(context.Context, uuid.UUID) error { return nil }

type stubAPITokenRepo struct {
	ownerByHash map[string]*entity.User
}

func (s *stubAPITokenRepo) Create(context.Context, *entity.APIToken) error { return nil }

func (s *stubAPITokenRepo) FindOwnerByHash(_ context.Context, tokenHash string) (*entity.User, error) {
	return s.ownerByHash[tokenHash], nil
}

func (s *stubAPITokenRepo) TouchLastUsed(context.Context, string) error { return nil }

func (s *stubAPITokenRepo) FindAllByUser(context.Context, uuid.UUID) ([]*entity.APIToken, error) {
	return nil, nil
}

func (s *stubAPITokenRepo) DeleteOwned(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func authTestRepo(user *entity.User, tokenOwners map[string]*entity.User) *repository.Repository {
	if tokenOwners == nil {
		tokenOwners = map[string]*entity.User{}
	}
	return &repository.Repository{
		User:     &stubUserRepo{user: user},
		APIToken: &stubAPITokenRepo{ownerByHash: tokenOwners},
	}
}

func principalEcho(t *testing.T, captured **utils.Principal) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := utils.GetPrincipalFromContext(r.Context())
		require.True(t, ok)
		*captured = principal
		w.WriteHeader(http.StatusOK)
	})
}

func testUser(role entity.UserRole, mustChange bool) *entity.User {
	return &entity.User{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Email:              "user@example.com",
		Role:               role,
		MustChangePassword: mustChange,
	}
}

func TestAuthMissingHeader(t *testing.T) {
	handler := Auth(authTestRepo(nil, nil), "secret", zap.NewNop())(principalEcho(t, new(*utils.Principal)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tokens", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	handler := Auth(authTestRepo(nil, nil), "secret", zap.NewNop())(principalEcho(t, new(*utils.Principal)))

	req := httptest.NewRequest(http.MethodGet, "/api/tokens", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthAPIToken(t *testing.T) {
	owner := testUser(entity.RoleDev, false)
	plaintext := "tok-plaintext-value"
	repo := authTestRepo(nil, map[string]*entity.User{
		utils.DigestToken(plaintext): owner,
	})

	var captured *utils.Principal
	handler := Auth(repo, "secret", zap.NewNop())(principalEcho(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/api/tokens", nil)
	req.Header.Set("Authorization", "Bearer "+plaintext)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, owner.ID, captured.ID)
	assert.Equal(t, string(entity.RoleDev), captured.Role)
}

func TestAuthSessionTokenReloadsUser(t *testing.T) {
	// Role di database sudah berubah; klaim di token basi
	user := testUser(entity.RoleAdmin, true)
	repo := authTestRepo(user, nil)

	token, err := utils.IssueSessionToken(user.ID.String(), user.Email, "user", "secret", time.Hour)
	require.NoError(t, err)

	var captured *utils.Principal
	handler := Auth(repo, "secret", zap.NewNop())(principalEcho(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/api/tokens", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, string(entity.RoleAdmin), captured.Role)
	assert.True(t, captured.MustChangePassword)
}

func TestAuthSessionTokenDeletedUser(t *testing.T) {
	ghost := uuid.New()
	repo := authTestRepo(nil, nil)

	token, err := utils.IssueSessionToken(ghost.String(), "ghost@example.com", "user", "secret", time.Hour)
	require.NoError(t, err)

	handler := Auth(repo, "secret", zap.NewNop())(principalEcho(t, new(*utils.Principal)))

	req := httptest.NewRequest(http.MethodGet, "/api/tokens", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthGarbageToken(t *testing.T) {
	handler := Auth(authTestRepo(nil, nil), "secret", zap.NewNop())(principalEcho(t, new(*utils.Principal)))

	req := httptest.NewRequest(http.MethodGet, "/api/tokens", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePasswordCurrentBlocksStale(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequirePasswordCurrent(zap.NewNop())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/send", nil)
	ctx := utils.SetPrincipalContext(req.Context(), &utils.Principal{
		ID:                 uuid.New(),
		Role:               string(entity.RoleUser),
		MustChangePassword: true,
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminBlocksNonAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Admin(zap.NewNop())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	ctx := utils.SetPrincipalContext(req.Context(), &utils.Principal{
		ID:   uuid.New(),
		Role: string(entity.RoleDev),
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)

	ctx = utils.SetPrincipalContext(req.Context(), &utils.Principal{
		ID:   uuid.New(),
		Role: string(entity.RoleAdmin),
	})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
}
