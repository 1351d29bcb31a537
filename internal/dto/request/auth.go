package request

type LoginRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required"`
	TurnstileToken *string `json:"turnstile_token,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type SignupRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8"`
	TurnstileToken *string `json:"turnstile_token,omitempty"`
}

type SignupVerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

type PasswordResetRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	TurnstileToken *string `json:"turnstile_token,omitempty"`
}

type PasswordResetConfirmRequest struct {
	Token          string  `json:"token" validate:"required"`
	NewPassword    string  `json:"newPassword" validate:"required,min=8"`
	TurnstileToken *string `json:"turnstile_token,omitempty"`
}
