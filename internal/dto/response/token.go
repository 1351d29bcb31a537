package response

import (
	"time"

	"mailgate/internal/data/entity"
)

type APITokenResponse struct {
	ID         string     `json:"id"`
	Name       *string    `json:"name"`
	CreatedAt  time.Time  `json:"createdAt"`
	LastUsedAt *time.Time `json:"lastUsedAt"`
}

// APITokenCreatedResponse membawa plaintext token satu-satunya kali.
type APITokenCreatedResponse struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Message   string    `json:"message"`
}

func APITokenToResponse(token *entity.APIToken) APITokenResponse {
	return APITokenResponse{
		ID:         token.ID.String(),
		Name:       token.Name,
		CreatedAt:  token.CreatedAt,
		LastUsedAt: token.LastUsedAt,
	}
}
