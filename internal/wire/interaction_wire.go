package wire

import (
	"travel-crm/internal/adaptor"
	"travel-crm/internal/data/repository"
	"travel-crm/pkg/middleware"
	"travel-crm/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireInteraction(
	r chi.Router,
	interactionHandler *adaptor.InteractionHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Contact logs are a staff-only concern.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireStaff(log))

		r.Post("/api/interactions", interactionHandler.CreateInteraction)
	})
}
