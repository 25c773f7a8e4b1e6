package entity

import "time"

// Roles válidos para User (uno por tablero de la aplicación).
const (
	RoleAdmin    = "admin"
	RoleRetailer = "retailer"
	RoleSupplier = "supplier"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, retailer, supplier
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
