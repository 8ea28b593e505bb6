package request

type CreateBookingRequest struct {
	CustomerID    string  `json:"customer_id" validate:"required,uuid4"`
	PackageID     string  `json:"package_id" validate:"required,uuid4"`
	Participants  int     `json:"participants" validate:"required,min=1"`
	DepartureDate string  `json:"departure_date" validate:"required,datetime=2006-01-02"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// UpdateBookingStatusRequest moves a booking through the staff-driven
// part of the lifecycle. Payment-driven transitions come from the
// webhook, not this request.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed"`
}

// UpdateBookingRequest patches a pending booking; absent fields stay
// unchanged.
type UpdateBookingRequest struct {
	Participants  *int    `json:"participants,omitempty" validate:"omitempty,min=1"`
	DepartureDate *string `json:"departure_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}
