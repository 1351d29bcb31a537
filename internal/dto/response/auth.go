package response

import "mailgate/internal/data/entity"

type LoginResponse struct {
	Token              string          `json:"token"`
	ID                 string          `json:"id"`
	Email              string          `json:"email"`
	Role               entity.UserRole `json:"role"`
	MustChangePassword bool            `json:"mustChangePassword"`
}
