package request

type UpdateDefaultSenderRequest struct {
	SenderType string `json:"senderType" validate:"required,oneof=account alias"`
	SenderID   string `json:"senderId" validate:"required,uuid"`
}
