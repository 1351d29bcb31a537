package usecase

import (
	"context"
	"testing"

	"mailgate/internal/data/entity"
	"mailgate/internal/dto/request"
	"mailgate/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAPITokenStoresDigestOnly(t *testing.T) {
	repo, repos := newTestRepos()
	user := seedUser(repos, "member@example.com", "hash", entity.RoleUser)
	service := NewTokenService(repo, testLogger())

	name := "deploy hook"
	resp, err := service.Create(context.Background(), user.ID, &request.CreateAPITokenRequest{
		Name: &name,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Token, 64)
	assert.Equal(t, "API token created. Save this token now - you won't be able to see it again!", resp.Message)

	require.Len(t, repos.apiTokens.tokens, 1)
	var stored *entity.APIToken
	for _, token := range repos.apiTokens.tokens {
		stored = token
	}
	// Plaintext tidak pernah dipersist, hanya digest-nya
	assert.NotEqual(t, resp.Token, stored.TokenHash)
	assert.Equal(t, utils.DigestToken(resp.Token), stored.TokenHash)
	assert.Equal(t, user.ID, stored.UserID)
}

func TestListAPITokensScopedToUser(t *testing.T) {
	repo, repos := newTestRepos()
	owner := seedUser(repos, "owner@example.com", "hash", entity.RoleUser)
	other := seedUser(repos, "other@example.com", "hash", entity.RoleUser)
	service := NewTokenService(repo, testLogger())

	_, err := service.Create(context.Background(), owner.ID, &request.CreateAPITokenRequest{})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), other.ID, &request.CreateAPITokenRequest{})
	require.NoError(t, err)

	tokens, err := service.List(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Len(t, tokens, 1)
}

func TestDeleteAPITokenOwnerScoped(t *testing.T) {
	repo, repos := newTestRepos()
	owner := seedUser(repos, "owner@example.com", "hash", entity.RoleUser)
	other := seedUser(repos, "other@example.com", "hash", entity.RoleUser)
	service := NewTokenService(repo, testLogger())

	created, err := service.Create(context.Background(), owner.ID, &request.CreateAPITokenRequest{})
	require.NoError(t, err)
	tokenID := uuid.MustParse(created.ID)

	// Token orang lain berperilaku seperti tidak ada
	err = service.Delete(context.Background(), other.ID, tokenID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	require.NoError(t, service.Delete(context.Background(), owner.ID, tokenID))
	assert.Empty(t, repos.apiTokens.tokens)
}
