// internal/wire/wire.go
package wire

import (
	"net/http"

	"travel-crm/internal/adaptor"
	"travel-crm/internal/data/repository"
	"travel-crm/internal/gateway"
	"travel-crm/internal/usecase"
	"travel-crm/pkg/middleware"
	"travel-crm/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and the router.
func Wiring(repo *repository.Repository, gw gateway.PaymentGateway, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, gw, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, config, logger)
	wirePackage(r, handler.Package, repo, config, logger)
	wireBooking(r, handler.Booking, handler.Payment, repo, config, logger)
	wirePayment(r, handler.Payment, repo, config, logger)
	wireCustomer(r, handler.Customer, handler.Booking, handler.Interaction, repo, config, logger)
	wireInteraction(r, handler.Interaction, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
