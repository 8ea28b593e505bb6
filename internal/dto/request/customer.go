package request

type CreateCustomerRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2,max=150"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=300"`
}

// UpdateCustomerRequest never carries status; the tier is derived from
// paid bookings only.
type UpdateCustomerRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=150"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=300"`
}
