package middleware

import (
	"net/http"
	"strings"

	"travel-crm/internal/data/repository"
	"travel-crm/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession validates the bearer session token and stamps the actor
// onto the request context. Sessions carry either a staff user or a
// customer; the role is resolved lazily only for staff sessions.
func AuthSession(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := parts[1]

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Warn("Invalid or expired session")
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			role := ""
			if session.ActorType == utils.ActorTypeStaff {
				user, err := userRepo.FindByID(r.Context(), session.ActorID)
				if err != nil {
					logger.Error("Failed to resolve session user",
						zap.Error(err),
						zap.String("actor_id", session.ActorID.String()))
					utils.ResponseInternalError(w, "Internal server error")
					return
				}
				if user == nil || !user.IsActive {
					utils.ResponseUnauthorized(w, "Invalid or expired session")
					return
				}
				role = string(user.Role)
			}

			ctx := utils.SetActorContext(r.Context(), session.ActorID, session.ActorType, role)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff rejects customer sessions. Must run after AuthSession.
func RequireStaff(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorType, ok := utils.GetActorTypeFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if actorType != utils.ActorTypeStaff {
				logger.Warn("Staff-only access attempt",
					zap.String("actor_type", actorType),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Staff access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole restricts a staff route to one role. Must run after
// AuthSession and RequireStaff.
func RequireRole(role string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorRole, ok := utils.GetRoleFromContext(r.Context())
			if !ok || actorRole != role {
				logger.Warn("Role check failed",
					zap.String("required", role),
					zap.String("actual", actorRole),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, role+" access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
