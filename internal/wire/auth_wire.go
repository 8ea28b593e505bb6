package wire

import (
	"travel-crm/internal/adaptor"
	"travel-crm/internal/data/repository"
	"travel-crm/pkg/middleware"
	"travel-crm/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Public login endpoints
	r.Post("/api/auth/login", authHandler.StaffLogin)
	r.Post("/api/auth/customer/login", authHandler.CustomerLogin)

	// Logout needs the session to revoke
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/api/auth/logout", authHandler.Logout)
	})
}
