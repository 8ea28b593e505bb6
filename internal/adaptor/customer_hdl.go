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

type CustomerHandler struct {
	service usecase.CustomerService
	log     *zap.Logger
}

func NewCustomerHandler(service usecase.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log.With(zap.String("handler", "customer")),
	}
}

// CreateCustomer handles POST /api/customers (public registration)
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "success", customer)
}

// GetCustomerByID handles GET /api/customers/{id} (protected)
func (h *CustomerHandler) GetCustomerByID(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	if !h.ownsProfile(r, customerID) {
		utils.ResponseForbidden(w, "You do not have access to this customer")
		return
	}

	customer, err := h.service.GetCustomerByID(r.Context(), customerID)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", customer)
}

// GetAllCustomers handles GET /api/customers (staff only)
func (h *CustomerHandler) GetAllCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	customers, err := h.service.GetAllCustomers(r.Context(), req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", customers)
}

// UpdateCustomer handles PUT /api/customers/{id} (protected)
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	if !h.ownsProfile(r, customerID) {
		utils.ResponseForbidden(w, "You do not have access to this customer")
		return
	}

	var req request.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	customer, err := h.service.UpdateCustomer(r.Context(), customerID, &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", customer)
}

// RecalculateStatus handles POST /api/customers/{id}/recalculate-status (staff only)
func (h *CustomerHandler) RecalculateStatus(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	customer, err := h.service.RecalculateStatus(r.Context(), customerID)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", customer)
}

// ownsProfile reports whether the actor may read or change a customer
// record: staff always, customers only themselves.
func (h *CustomerHandler) ownsProfile(r *http.Request, customerID string) bool {
	actorType, _ := utils.GetActorTypeFromContext(r.Context())
	if actorType != utils.ActorTypeCustomer {
		return true
	}

	actorID, ok := utils.GetActorIDFromContext(r.Context())
	return ok && actorID.String() == customerID
}
