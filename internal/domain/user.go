package domain

import "time"

// Role is the closed set of user roles. It is resolved once at login and
// drives which parts of the API a user may reach.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleFarmer   Role = "farmer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleFarmer
}

// User represents a registered account, either a customer or a farmer.
// Role-specific fields are populated according to Role.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`

	// Customer fields.
	ShippingAddress string `json:"shippingAddress,omitempty"`

	// Farmer fields.
	FarmName string `json:"farmName,omitempty"`
	Location string `json:"location,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
