package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"mailgate/internal/dto/request"
	"mailgate/internal/dto/response"
	"mailgate/internal/usecase"
	"mailgate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountHandler struct {
	service usecase.AccountService
	log     *zap.Logger
}

func NewAccountHandler(service usecase.AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/accounts
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list accounts")
		return
	}

	utils.WriteJSON(w, http.StatusOK, accounts)
}

// Create handles POST /api/accounts
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAccountRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	account, err := h.service.Create(r.Context(), &req)
	if err != nil {
		errMsg := err.Error()

		// Duplikat dan kegagalan insert dipulangkan sebagai envelope 200,
		// bukan status HTTP
		switch {
		case strings.Contains(errMsg, "email address already exists"):
			utils.WriteJSON(w, http.StatusOK, response.Envelope{
				Status:  "error",
				Message: "Email address already exists",
			})
		case strings.Contains(errMsg, "failed to create account"):
			utils.WriteJSON(w, http.StatusOK, response.Envelope{
				Status:  "error",
				Message: "Failed to create account",
			})
		default:
			h.handleServiceError(w, err, "create account")
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, response.AccountCreatedResponse{
		Status:  "success",
		Message: "Account created successfully",
		Account: *account,
	})
}

// Update handles PATCH /api/accounts/{id}
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid account ID", nil)
		return
	}

	var req request.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	account, err := h.service.Update(r.Context(), accountID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update account")
		return
	}

	utils.WriteJSON(w, http.StatusOK, account)
}

// Delete handles DELETE /api/accounts/{id}
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid account ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), accountID); err != nil {
		h.handleServiceError(w, err, "delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "no fields to update"),
		strings.Contains(errMsg, "password cannot be empty"):
		h.log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
