package response

import (
	"time"

	"travel-crm/internal/data/entity"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	BookingCode   string               `json:"booking_code"`
	CustomerID    string               `json:"customer_id"`
	PackageID     string               `json:"package_id"`
	PackageName   string               `json:"package_name,omitempty"`
	Destination   string               `json:"destination,omitempty"`
	Participants  int                  `json:"participants"`
	TotalAmount   float64              `json:"total_amount"`
	DepartureDate string               `json:"departure_date"`
	Status        entity.BookingStatus `json:"status"`
	Notes         *string              `json:"notes,omitempty"`
	Payment       *PaymentResponse     `json:"payment,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

type AvailabilityResponse struct {
	PackageID      string `json:"package_id"`
	IsAvailable    bool   `json:"is_available"`
	AvailableSlots int    `json:"available_slots"`
}

func BookingToResponse(booking *entity.Booking, pkg *entity.TravelPackage, payment *PaymentResponse) *BookingResponse {
	resp := &BookingResponse{
		ID:            booking.ID.String(),
		BookingCode:   booking.BookingCode,
		CustomerID:    booking.CustomerID.String(),
		PackageID:     booking.PackageID.String(),
		Participants:  booking.Participants,
		TotalAmount:   booking.TotalAmount,
		DepartureDate: booking.DepartureDate.Format("2006-01-02"),
		Status:        booking.Status,
		Notes:         booking.Notes,
		Payment:       payment,
		CreatedAt:     booking.CreatedAt,
	}
	if pkg != nil {
		resp.PackageName = pkg.Name
		resp.Destination = pkg.Destination
	}
	return resp
}
