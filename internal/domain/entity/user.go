package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleWarehouse = "warehouse" // registra entradas y salidas
	RoleSeller    = "seller"    // registra ventas
)

// ValidRole valida un rol.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleWarehouse || role == RoleSeller
}

// User representa un operador del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, warehouse, seller
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
