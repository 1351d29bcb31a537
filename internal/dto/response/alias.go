package response

import "mailgate/internal/data/entity"

type AliasResponse struct {
	ID                 string  `json:"id"`
	AliasEmail         string  `json:"aliasEmail"`
	DisplayName        *string `json:"displayName"`
	IsActive           bool    `json:"isActive"`
	AccountID          string  `json:"accountId"`
	AccountEmail       string  `json:"accountEmail"`
	AccountDisplayName string  `json:"accountDisplayName"`
	AccountIsActive    bool    `json:"accountIsActive"`
}

func AliasToResponse(alias *entity.AliasWithAccount) AliasResponse {
	return AliasResponse{
		ID:                 alias.ID.String(),
		AliasEmail:         alias.AliasEmail,
		DisplayName:        alias.DisplayName,
		IsActive:           alias.IsActive,
		AccountID:          alias.AccountID.String(),
		AccountEmail:       alias.AccountEmail,
		AccountDisplayName: alias.AccountDisplayName,
		AccountIsActive:    alias.AccountIsActive,
	}
}
