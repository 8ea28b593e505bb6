package wire

import (
	"travel-crm/internal/adaptor"
	"travel-crm/internal/data/repository"
	"travel-crm/pkg/middleware"
	"travel-crm/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	// Customers manage their own bookings, staff manage any.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/api/bookings", bookingHandler.CreateBooking)
		r.Get("/api/bookings", bookingHandler.GetMyBookings)
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)
		r.Put("/api/bookings/{id}", bookingHandler.UpdateBooking)
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// Hosted-checkout initiation hangs off the booking
		r.Post("/api/bookings/{id}/pay", paymentHandler.InitiatePayment)
	})

	// ==================== STAFF ROUTES ====================
	// Confirm after payment, complete after the trip.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireStaff(log))

		r.Put("/api/bookings/{id}/status", bookingHandler.UpdateBookingStatus)
	})
}
