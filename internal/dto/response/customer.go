package response

import (
	"time"

	"travel-crm/internal/data/entity"
)

type CustomerResponse struct {
	ID        string                `json:"id"`
	FullName  string                `json:"full_name"`
	Email     string                `json:"email"`
	Phone     *string               `json:"phone,omitempty"`
	Address   *string               `json:"address,omitempty"`
	Status    entity.CustomerStatus `json:"status"`
	CreatedAt time.Time             `json:"created_at"`
}

func CustomerToResponse(customer *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        customer.ID.String(),
		FullName:  customer.FullName,
		Email:     customer.Email,
		Phone:     customer.Phone,
		Address:   customer.Address,
		Status:    customer.Status,
		CreatedAt: customer.CreatedAt,
	}
}
