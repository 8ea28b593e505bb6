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

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// InitiatePayment handles POST /api/bookings/{id}/pay (protected)
func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	payment, err := h.service.InitiatePayment(r.Context(), bookingID)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "success", payment)
}

// HandleNotification handles POST /api/payments/notification (public).
// The provider authenticates itself through the payload signature, so
// the route carries no session middleware.
func (h *PaymentHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.ProcessNotification(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetTransactionStatus handles GET /api/payments/{orderID}/status (staff only)
func (h *PaymentHandler) GetTransactionStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		utils.ResponseBadRequest(w, "Order ID is required", nil)
		return
	}

	status, err := h.service.GetTransactionStatus(r.Context(), orderID)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", status)
}
