package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"mailgate/internal/dto/request"
	"mailgate/internal/usecase"
	"mailgate/pkg/utils"

	"go.uber.org/zap"
)

type MailHandler struct {
	service usecase.MailService
	log     *zap.Logger
}

func NewMailHandler(service usecase.MailService, log *zap.Logger) *MailHandler {
	return &MailHandler{
		service: service,
		log:     log,
	}
}

// Send handles POST /api/send
func (h *MailHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req request.SendEmailRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	envelope, err := h.service.Send(r.Context(), &req)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "validation failed") {
			h.log.Warn("Send email rejected", zap.Error(err))
			utils.ResponseBadRequest(w, errMsg, nil)
			return
		}
		h.log.Error("Failed to send email", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, envelope)
}
