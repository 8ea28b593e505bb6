package repository

import (
	"context"
	"fmt"

	"travel-crm/internal/data/entity"
	"travel-crm/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindValidSession(ctx context.Context, token string) (*entity.Session, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForActor(ctx context.Context, actorID uuid.UUID, actorType string) error
	CleanExpiredSessions(ctx context.Context) error
}

type sessionRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSessionRepository(db database.Querier, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (id, actor_id, actor_type, token, user_agent, ip_address, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.ActorID,
		session.ActorType,
		session.Token,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("actor_id", session.ActorID.String()),
			zap.String("actor_type", session.ActorType),
		)
		return fmt.Errorf("create session for %s %s: %w", session.ActorType, session.ActorID.String(), err)
	}

	return nil
}

func (r *sessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	query := `
		SELECT id, actor_id, actor_type, token, user_agent, ip_address, expires_at, revoked_at, created_at
		FROM sessions
		WHERE token = $1
		  AND revoked_at IS NULL
		  AND expires_at > NOW()
	`

	var session entity.Session
	err := r.db.QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.ActorID,
		&session.ActorType,
		&session.Token,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.RevokedAt,
		&session.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid session", zap.Error(err))
		return nil, fmt.Errorf("find valid session: %w", err)
	}

	return &session, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, token string) error {
	query := `UPDATE sessions SET revoked_at = NOW() WHERE token = $1 AND revoked_at IS NULL`

	if _, err := r.db.Exec(ctx, query, token); err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	return nil
}

func (r *sessionRepository) RevokeAllForActor(ctx context.Context, actorID uuid.UUID, actorType string) error {
	query := `UPDATE sessions SET revoked_at = NOW() WHERE actor_id = $1 AND actor_type = $2 AND revoked_at IS NULL`

	if _, err := r.db.Exec(ctx, query, actorID, actorType); err != nil {
		r.log.Error("Failed to revoke actor sessions",
			zap.Error(err),
			zap.String("actor_id", actorID.String()),
			zap.String("actor_type", actorType),
		)
		return fmt.Errorf("revoke sessions for %s %s: %w", actorType, actorID.String(), err)
	}

	return nil
}

func (r *sessionRepository) CleanExpiredSessions(ctx context.Context) error {
	query := `DELETE FROM sessions WHERE expires_at < NOW() - INTERVAL '7 days'`

	if _, err := r.db.Exec(ctx, query); err != nil {
		r.log.Error("Failed to clean expired sessions", zap.Error(err))
		return fmt.Errorf("clean expired sessions: %w", err)
	}

	return nil
}
