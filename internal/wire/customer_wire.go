package wire

import (
	"travel-crm/internal/adaptor"
	"travel-crm/internal/data/repository"
	"travel-crm/pkg/middleware"
	"travel-crm/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCustomer(
	r chi.Router,
	customerHandler *adaptor.CustomerHandler,
	bookingHandler *adaptor.BookingHandler,
	interactionHandler *adaptor.InteractionHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Self-service registration
	r.Post("/api/customers", customerHandler.CreateCustomer)

	// ==================== PROTECTED ROUTES ====================
	// Customers reach their own profile, staff reach any.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Get("/api/customers/{id}", customerHandler.GetCustomerByID)
		r.Put("/api/customers/{id}", customerHandler.UpdateCustomer)
	})

	// ==================== STAFF ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireStaff(log))

		r.Get("/api/customers", customerHandler.GetAllCustomers)
		r.Post("/api/customers/{id}/recalculate-status", customerHandler.RecalculateStatus)
		r.Get("/api/customers/{id}/bookings", bookingHandler.GetCustomerBookings)
		r.Get("/api/customers/{id}/interactions", interactionHandler.GetCustomerInteractions)
	})
}
