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

type TokenHandler struct {
	service usecase.TokenService
	log     *zap.Logger
}

func NewTokenHandler(service usecase.TokenService, log *zap.Logger) *TokenHandler {
	return &TokenHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/tokens
func (h *TokenHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	// Body opsional; token tanpa nama itu valid
	var req request.CreateAPITokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Create(r.Context(), principal.ID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create API token")
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// List handles GET /api/tokens
func (h *TokenHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	tokens, err := h.service.List(r.Context(), principal.ID)
	if err != nil {
		h.handleServiceError(w, err, "list API tokens")
		return
	}

	utils.WriteJSON(w, http.StatusOK, tokens)
}

// Delete handles DELETE /api/tokens/{id}
func (h *TokenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	tokenID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid token ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), principal.ID, tokenID); err != nil {
		h.handleServiceError(w, err, "delete API token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TokenHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
