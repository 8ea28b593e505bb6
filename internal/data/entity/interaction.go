package entity

import (
	"time"

	"github.com/google/uuid"
)

type InteractionType string

const (
	InteractionTypeCall    InteractionType = "call"
	InteractionTypeEmail   InteractionType = "email"
	InteractionTypeMeeting InteractionType = "meeting"
	InteractionTypeChat    InteractionType = "chat"
)

// Interaction is a contact log entry a staff user records against a customer.
type Interaction struct {
	BaseSimple
	CustomerID uuid.UUID       `db:"customer_id"`
	UserID     uuid.UUID       `db:"user_id"`
	Type       InteractionType `db:"type"`
	Notes      string          `db:"notes"`
	OccurredAt time.Time       `db:"occurred_at"`
}
