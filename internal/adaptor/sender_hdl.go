package adaptor

import (
	"encoding/json"
	"net/http"

	"mailgate/internal/data/entity"
	"mailgate/internal/dto/request"
	"mailgate/internal/dto/response"
	"mailgate/internal/usecase"
	"mailgate/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SenderHandler struct {
	service usecase.SenderService
	log     *zap.Logger
}

func NewSenderHandler(service usecase.SenderService, log *zap.Logger) *SenderHandler {
	return &SenderHandler{
		service: service,
		log:     log,
	}
}

// GetDefault handles GET /api/settings/default-sender
func (h *SenderHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetDefault(r.Context())
	if err != nil {
		h.log.Error("Failed to load default sender", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	// Belum ada default: body-nya JSON null
	if summary == nil {
		utils.WriteJSON(w, http.StatusOK, nil)
		return
	}

	utils.WriteJSON(w, http.StatusOK, response.SenderSummaryToResponse(summary))
}

// UpdateDefault handles PUT /api/settings/default-sender
func (h *SenderHandler) UpdateDefault(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateDefaultSenderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(&req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	kind, err := entity.ParseSenderKind(req.SenderType)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid sender type", nil)
		return
	}

	senderID, err := uuid.Parse(req.SenderID)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid sender ID", nil)
		return
	}

	summary, err := h.service.SetDefault(r.Context(), kind, senderID)
	if err != nil {
		// Target hilang/nonaktif dipulangkan sebagai 400 dengan pesan
		// dari validasi Summarize
		h.log.Warn("Set default sender rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	utils.WriteJSON(w, http.StatusOK, response.SenderSummaryToResponse(summary))
}
