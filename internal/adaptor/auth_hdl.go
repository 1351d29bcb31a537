package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"mailgate/internal/dto/request"
	"mailgate/internal/dto/response"
	"mailgate/internal/usecase"
	"mailgate/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	auth      usecase.AuthService
	lifecycle usecase.LifecycleService
	log       *zap.Logger
}

func NewAuthHandler(auth usecase.AuthService, lifecycle usecase.LifecycleService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		lifecycle: lifecycle,
		log:       log,
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "login")
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	envelope, err := h.lifecycle.RequestSignup(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "signup")
		return
	}

	utils.WriteJSON(w, http.StatusOK, envelope)
}

// VerifySignup handles POST /api/auth/signup/verify
func (h *AuthHandler) VerifySignup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupVerifyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	envelope, err := h.lifecycle.VerifySignup(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "verify signup")
		return
	}

	utils.WriteJSON(w, http.StatusOK, envelope)
}

// RequestPasswordReset handles POST /api/auth/password-reset
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req request.PasswordResetRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	envelope, err := h.lifecycle.RequestPasswordReset(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "request password reset")
		return
	}

	utils.WriteJSON(w, http.StatusOK, envelope)
}

// ConfirmPasswordReset handles POST /api/auth/password-reset/confirm
func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req request.PasswordResetConfirmRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	envelope, err := h.lifecycle.ConfirmPasswordReset(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "confirm password reset")
		return
	}

	utils.WriteJSON(w, http.StatusOK, envelope)
}

// ChangePassword handles POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.auth.ChangePassword(r.Context(), principal.ID, &req); err != nil {
		h.handleServiceError(w, err, "change password")
		return
	}

	utils.WriteJSON(w, http.StatusOK, response.Envelope{
		Status:  "success",
		Message: "Password updated",
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"id":                 principal.ID.String(),
		"email":              principal.Email,
		"role":               principal.Role,
		"mustChangePassword": principal.MustChangePassword,
	})
}

func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "captcha token required"),
		strings.Contains(errMsg, "captcha rejected"):
		h.log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid credentials"):
		h.log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
