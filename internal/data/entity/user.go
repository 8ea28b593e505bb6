package entity

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleSales UserRole = "sales"
)

// User is a staff account.
type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
