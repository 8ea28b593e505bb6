package wire

import (
	"travel-crm/internal/adaptor"
	"travel-crm/internal/data/repository"
	"travel-crm/pkg/middleware"
	"travel-crm/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePackage(
	r chi.Router,
	packageHandler *adaptor.PackageHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Browsing the catalog and checking availability need no session.
	r.Get("/api/packages", packageHandler.GetAllPackages)
	r.Get("/api/packages/{id}", packageHandler.GetPackageByID)
	r.Get("/api/packages/{id}/availability", packageHandler.CheckAvailability)

	// ==================== STAFF ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireStaff(log))

		r.Post("/api/packages", packageHandler.CreatePackage)
		r.Put("/api/packages/{id}", packageHandler.UpdatePackage)
		r.Delete("/api/packages/{id}", packageHandler.DeactivatePackage)
	})
}
