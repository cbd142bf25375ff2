package model

import "time"

// Operator roles.  ADMIN manages events and sees reservation lists;
// GATE may only scan codes at the door.
const (
	RoleAdmin = "ADMIN"
	RoleGate  = "GATE"
)

// Operator is a staff account that can authenticate against the API.
type Operator struct {
	ID           uint64    // operators.id
	Email        string    // operators.email
	PasswordHash string    // operators.password_hash
	Role         string    // operators.role
	IsActive     bool      // operators.is_active
	CreatedAt    time.Time // operators.created_at
	UpdatedAt    time.Time // operators.updated_at
}
