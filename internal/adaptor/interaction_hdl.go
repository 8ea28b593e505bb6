package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-crm/internal/dto/request"
	"travel-crm/internal/usecase"
	"travel-crm/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type InteractionHandler struct {
	service usecase.InteractionService
	log     *zap.Logger
}

func NewInteractionHandler(service usecase.InteractionService, log *zap.Logger) *InteractionHandler {
	return &InteractionHandler{
		service: service,
		log:     log.With(zap.String("handler", "interaction")),
	}
}

// CreateInteraction handles POST /api/interactions (staff only)
func (h *InteractionHandler) CreateInteraction(w http.ResponseWriter, r *http.Request) {
	actorID, ok := utils.GetActorIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	interaction, err := h.service.CreateInteraction(r.Context(), actorID.String(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "success", interaction)
}

// GetCustomerInteractions handles GET /api/customers/{id}/interactions (staff only)
func (h *InteractionHandler) GetCustomerInteractions(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	interactions, err := h.service.GetCustomerInteractions(r.Context(), customerID, req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", interactions)
}
