package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"mailgate/internal/dto/request"
	"mailgate/internal/usecase"
	"mailgate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AliasHandler struct {
	service usecase.AliasService
	log     *zap.Logger
}

func NewAliasHandler(service usecase.AliasService, log *zap.Logger) *AliasHandler {
	return &AliasHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/aliases
func (h *AliasHandler) List(w http.ResponseWriter, r *http.Request) {
	aliases, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list aliases")
		return
	}

	utils.WriteJSON(w, http.StatusOK, aliases)
}

// Create handles POST /api/aliases
func (h *AliasHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAliasRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	alias, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create alias")
		return
	}

	utils.WriteJSON(w, http.StatusOK, alias)
}

// Update handles PATCH /api/aliases/{id}
func (h *AliasHandler) Update(w http.ResponseWriter, r *http.Request) {
	aliasID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid alias ID", nil)
		return
	}

	var req request.UpdateAliasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	alias, err := h.service.Update(r.Context(), aliasID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update alias")
		return
	}

	utils.WriteJSON(w, http.StatusOK, alias)
}

// Delete handles DELETE /api/aliases/{id}
func (h *AliasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	aliasID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid alias ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), aliasID); err != nil {
		h.handleServiceError(w, err, "delete alias")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AliasHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "alias email already exists"):
		h.log.Warn(operation+" failed - duplicate alias", zap.Error(err))
		utils.ResponseJSON(w, http.StatusConflict, false, errMsg, nil, nil)

	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "no fields to update"),
		strings.Contains(errMsg, "unknown account"):
		h.log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
