package request

type CreateInteractionRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid4"`
	Type       string `json:"type" validate:"required,oneof=call email meeting chat"`
	Notes      string `json:"notes" validate:"required,max=2000"`
	OccurredAt string `json:"occurred_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}
