package response

import "mailgate/internal/data/entity"

type AccountResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsActive    bool   `json:"isActive"`
}

// AccountCreatedResponse adalah envelope sukses dengan account yang baru dibuat.
type AccountCreatedResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Account AccountResponse `json:"account"`
}

func AccountToResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID.String(),
		Email:       account.Email,
		DisplayName: account.DisplayName,
		IsActive:    account.IsActive,
	}
}
