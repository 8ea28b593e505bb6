package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-crm/internal/dto/request"
	"travel-crm/internal/usecase"
	"travel-crm/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// StaffLogin handles POST /api/auth/login (public)
func (h *AuthHandler) StaffLogin(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	auth, err := h.service.StaffLogin(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", auth)
}

// CustomerLogin handles POST /api/auth/customer/login (public)
func (h *AuthHandler) CustomerLogin(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	auth, err := h.service.CustomerLogin(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", auth)
}

// Logout handles POST /api/auth/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
