package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusExpired PaymentStatus = "expired"
	PaymentStatusRefund  PaymentStatus = "refund"
)

// IsTerminal reports whether the provider has reached a final verdict.
// Terminal statuses never regress to pending.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed ||
		s == PaymentStatusExpired || s == PaymentStatusRefund
}

type Payment struct {
	Base
	BookingID   uuid.UUID     `db:"booking_id"`
	OrderID     string        `db:"order_id"`
	Token       string        `db:"token"`
	RedirectURL string        `db:"redirect_url"`
	Amount      float64       `db:"amount"`
	Status      PaymentStatus `db:"status"`
	PaymentType *string       `db:"payment_type"`
	PaidAt      *time.Time    `db:"paid_at"`
	ExpiredAt   time.Time     `db:"expired_at"`
}
