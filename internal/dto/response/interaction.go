package response

import (
	"time"

	"travel-crm/internal/data/entity"
)

type InteractionResponse struct {
	ID         string                 `json:"id"`
	CustomerID string                 `json:"customer_id"`
	UserID     string                 `json:"user_id"`
	Type       entity.InteractionType `json:"type"`
	Notes      string                 `json:"notes"`
	OccurredAt time.Time              `json:"occurred_at"`
	CreatedAt  time.Time              `json:"created_at"`
}

func InteractionToResponse(interaction *entity.Interaction) InteractionResponse {
	return InteractionResponse{
		ID:         interaction.ID.String(),
		CustomerID: interaction.CustomerID.String(),
		UserID:     interaction.UserID.String(),
		Type:       interaction.Type,
		Notes:      interaction.Notes,
		OccurredAt: interaction.OccurredAt,
		CreatedAt:  interaction.CreatedAt,
	}
}
