package request

type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin dev user"`
}

type UpdateUserRequest struct {
	Password           *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role               *string `json:"role,omitempty" validate:"omitempty,oneof=admin dev user"`
	MustChangePassword *bool   `json:"mustChangePassword,omitempty"`
}
