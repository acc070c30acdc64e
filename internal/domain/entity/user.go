package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleWorker = "worker"
	RoleClient = "client"
)

// User representa un usuario del sistema (admin, trabajador o cliente).
// Phone, University y Position son opcionales: punteros nil cuando no aplican.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, worker, client
	Phone        *string
	University   *string
	Position     *string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si el rol pertenece a la enumeración conocida.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleWorker, RoleClient:
		return true
	}
	return false
}
