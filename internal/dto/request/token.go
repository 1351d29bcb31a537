package request

type CreateAPITokenRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=100"`
}
