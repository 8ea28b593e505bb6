package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// SlotHoldingStatuses are the booking states that count against package
// quota. Cancelled bookings release their slots, completed trips have
// already departed.
var SlotHoldingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusPaid,
	BookingStatusConfirmed,
}

// IsPaid reports whether the status counts as a paid booking for
// customer tier derivation.
func (s BookingStatus) IsPaid() bool {
	return s == BookingStatusPaid || s == BookingStatusConfirmed || s == BookingStatusCompleted
}

// IsMutable reports whether participants/date/notes may still change.
// Every status past pending freezes the booking; cancelled bookings
// additionally release their slots.
func (s BookingStatus) IsMutable() bool {
	return s == BookingStatusPending
}

type Booking struct {
	Base
	BookingCode   string        `db:"booking_code"`
	CustomerID    uuid.UUID     `db:"customer_id"`
	PackageID     uuid.UUID     `db:"package_id"`
	Participants  int           `db:"participants"`
	TotalAmount   float64       `db:"total_amount"`
	DepartureDate time.Time     `db:"departure_date"`
	Status        BookingStatus `db:"status"`
	Notes         *string       `db:"notes"`
}
