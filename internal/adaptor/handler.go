package adaptor

import (
	"travel-crm/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Customer    *CustomerHandler
	Package     *PackageHandler
	Booking     *BookingHandler
	Payment     *PaymentHandler
	Interaction *InteractionHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		Customer:    NewCustomerHandler(service.Customer, log),
		Package:     NewPackageHandler(service.Package, service.Availability, log),
		Booking:     NewBookingHandler(service.Booking, log),
		Payment:     NewPaymentHandler(service.Payment, log),
		Interaction: NewInteractionHandler(service.Interaction, log),
	}
}
