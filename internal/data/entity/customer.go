package entity

type CustomerStatus string

const (
	CustomerStatusProspect CustomerStatus = "prospect"
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusLoyal    CustomerStatus = "loyal"
)

// DeriveCustomerStatus maps a paid-booking count to a tier.
func DeriveCustomerStatus(paidBookings int64) CustomerStatus {
	switch {
	case paidBookings >= 3:
		return CustomerStatusLoyal
	case paidBookings >= 1:
		return CustomerStatusActive
	default:
		return CustomerStatusProspect
	}
}

type Customer struct {
	Base
	FullName     string         `db:"full_name"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password"`
	Phone        *string        `db:"phone"`
	Address      *string        `db:"address"`
	Status       CustomerStatus `db:"status"`
}
