package request

type CreateAliasRequest struct {
	AccountID   string  `json:"accountId" validate:"required,uuid"`
	AliasEmail  string  `json:"aliasEmail" validate:"required,email"`
	DisplayName *string `json:"displayName,omitempty"`
	IsActive    bool    `json:"isActive"`
}

type UpdateAliasRequest struct {
	AccountID   *string `json:"accountId,omitempty" validate:"omitempty,uuid"`
	DisplayName *string `json:"displayName,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}
