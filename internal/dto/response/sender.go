package response

import "mailgate/internal/data/entity"

type DefaultSenderResponse struct {
	SenderType   entity.SenderKind `json:"senderType"`
	SenderID     string            `json:"senderId"`
	Email        string            `json:"email"`
	DisplayLabel string            `json:"displayLabel"`
	ViaDisplay   *string           `json:"viaDisplay"`
	IsActive     bool              `json:"isActive"`
}

// SenderSummaryToResponse membuang kredensial; password tidak pernah ikut
// keluar lewat endpoint default sender.
func SenderSummaryToResponse(summary *entity.SenderSummary) DefaultSenderResponse {
	return DefaultSenderResponse{
		SenderType:   summary.SenderType,
		SenderID:     summary.SenderID.String(),
		Email:        summary.Email,
		DisplayLabel: summary.DisplayLabel,
		ViaDisplay:   summary.ViaDisplay,
		IsActive:     summary.IsActive,
	}
}
