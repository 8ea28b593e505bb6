package response

import (
	"time"

	"travel-crm/internal/data/entity"
)

type PaymentResponse struct {
	ID          string               `json:"id"`
	BookingID   string               `json:"booking_id"`
	OrderID     string               `json:"order_id"`
	Token       string               `json:"token,omitempty"`
	RedirectURL string               `json:"redirect_url,omitempty"`
	Amount      float64              `json:"amount"`
	Status      entity.PaymentStatus `json:"status"`
	PaymentType *string              `json:"payment_type,omitempty"`
	PaidAt      *time.Time           `json:"paid_at,omitempty"`
	ExpiredAt   time.Time            `json:"expired_at"`
	CreatedAt   time.Time            `json:"created_at"`
}

// PaymentNotificationResponse acknowledges a processed webhook.
type PaymentNotificationResponse struct {
	PaymentID string               `json:"payment_id"`
	Status    entity.PaymentStatus `json:"status"`
}

type TransactionStatusResponse struct {
	OrderID           string               `json:"order_id"`
	TransactionStatus string               `json:"transaction_status"`
	PaymentStatus     entity.PaymentStatus `json:"payment_status"`
	BookingStatus     entity.BookingStatus `json:"booking_status"`
}

func PaymentToResponse(payment *entity.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:          payment.ID.String(),
		BookingID:   payment.BookingID.String(),
		OrderID:     payment.OrderID,
		Token:       payment.Token,
		RedirectURL: payment.RedirectURL,
		Amount:      payment.Amount,
		Status:      payment.Status,
		PaymentType: payment.PaymentType,
		PaidAt:      payment.PaidAt,
		ExpiredAt:   payment.ExpiredAt,
		CreatedAt:   payment.CreatedAt,
	}
}
