package usecase

import (
	"travel-crm/internal/data/repository"
	"travel-crm/internal/gateway"
	"travel-crm/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Customer     CustomerService
	Package      PackageService
	Availability AvailabilityService
	Booking      BookingService
	Payment      PaymentService
	Interaction  InteractionService
}

func NewService(repo *repository.Repository, gw gateway.PaymentGateway, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Customer:     NewCustomerService(repo, log),
		Package:      NewPackageService(repo, log),
		Availability: NewAvailabilityService(repo, log),
		Booking:      NewBookingService(repo, repo, config, log),
		Payment:      NewPaymentService(repo, repo, gw, config, log),
		Interaction:  NewInteractionService(repo, log),
	}
}
