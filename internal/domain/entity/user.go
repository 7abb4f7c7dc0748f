package entity

import "time"

// Roles de usuario de la fábrica.
const (
	RoleAdmin    = "admin"
	RoleOperario = "operario"
)

// User representa un operario o administrador. El campo Username alimenta el
// campo "usuario" de movimientos, producciones y despachos.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Name         string
	Role         string // "admin" | "operario"
	Status       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
