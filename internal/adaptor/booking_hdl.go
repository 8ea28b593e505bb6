package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-crm/internal/data/entity"
	"travel-crm/internal/dto/request"
	"travel-crm/internal/usecase"
	"travel-crm/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected). A customer
// actor always books for themselves; staff supply customer_id.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if actorType, _ := utils.GetActorTypeFromContext(r.Context()); actorType == utils.ActorTypeCustomer {
		actorID, ok := utils.GetActorIDFromContext(r.Context())
		if !ok {
			utils.ResponseUnauthorized(w, "Authentication required")
			return
		}
		req.CustomerID = actorID.String()
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetBookingByID handles GET /api/bookings/{id} (protected)
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	if !h.ownsBooking(r, booking.CustomerID) {
		utils.ResponseForbidden(w, "You do not have access to this booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetMyBookings handles GET /api/bookings (protected, customer actor)
func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	actorID, ok := utils.GetActorIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.service.GetCustomerBookings(r.Context(), actorID.String(), req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetCustomerBookings handles GET /api/customers/{id}/bookings (staff only)
func (h *BookingHandler) GetCustomerBookings(w http.ResponseWriter, r *http.Request) {
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

	bookings, err := h.service.GetCustomerBookings(r.Context(), customerID, req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// UpdateBooking handles PUT /api/bookings/{id} (protected)
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	existing, err := h.service.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}
	if !h.ownsBooking(r, existing.CustomerID) {
		utils.ResponseForbidden(w, "You do not have access to this booking")
		return
	}

	var req request.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), bookingID, &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel (protected)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	existing, err := h.service.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}
	if !h.ownsBooking(r, existing.CustomerID) {
		utils.ResponseForbidden(w, "You do not have access to this booking")
		return
	}

	if err := h.service.CancelBooking(r.Context(), bookingID); err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// UpdateBookingStatus handles PUT /api/bookings/{id}/status (staff only)
func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	target := entity.BookingStatus(req.Status)

	// confirmed requires a paid booking, completed a confirmed one.
	valid := (target == entity.BookingStatusConfirmed && booking.Status == entity.BookingStatusPaid) ||
		(target == entity.BookingStatusCompleted && booking.Status == entity.BookingStatusConfirmed) ||
		booking.Status == target
	if !valid {
		utils.ResponseBadRequest(w, "Cannot move a "+string(booking.Status)+" booking to "+req.Status, nil)
		return
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID format", nil)
		return
	}

	if err := h.service.UpdateBookingStatus(r.Context(), id, target); err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ownsBooking reports whether the request actor may touch a booking:
// staff always, customers only their own.
func (h *BookingHandler) ownsBooking(r *http.Request, bookingCustomerID string) bool {
	actorType, _ := utils.GetActorTypeFromContext(r.Context())
	if actorType != utils.ActorTypeCustomer {
		return true
	}

	actorID, ok := utils.GetActorIDFromContext(r.Context())
	return ok && actorID.String() == bookingCustomerID
}
