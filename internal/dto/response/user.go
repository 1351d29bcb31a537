package response

import "mailgate/internal/data/entity"

type UserResponse struct {
	ID                 string          `json:"id"`
	Email              string          `json:"email"`
	Role               entity.UserRole `json:"role"`
	MustChangePassword bool            `json:"mustChangePassword"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                 user.ID.String(),
		Email:              user.Email,
		Role:               user.Role,
		MustChangePassword: user.MustChangePassword,
	}
}
