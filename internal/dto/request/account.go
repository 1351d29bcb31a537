package request

type CreateAccountRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName" validate:"required"`
	Password    string `json:"password" validate:"required"`
	IsActive    bool   `json:"isActive"`
}

type UpdateAccountRequest struct {
	IsActive *bool   `json:"isActive,omitempty"`
	Password *string `json:"password,omitempty"`
}
