package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session authenticates either a staff user or a customer; ActorType
// distinguishes the two.
type Session struct {
	BaseSimple
	ActorID   uuid.UUID  `db:"actor_id"`
	ActorType string     `db:"actor_type"`
	Token     uuid.UUID  `db:"token"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
