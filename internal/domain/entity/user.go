package entity

import "time"

// Roles válidos para User, ordenados de mayor a menor privilegio de lectura.
const (
	RoleAdmin       = "admin"
	RoleBackoffice  = "backoffice"
	RoleSalesperson = "salesperson"
)

// ValidRole indica si el string corresponde a un rol conocido.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBackoffice, RoleSalesperson:
		return true
	}
	return false
}

// User representa un usuario del sistema.
// PasswordHash nunca se serializa hacia el cliente.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Role         string    `bson:"role" json:"role"` // admin, backoffice, salesperson
	PasswordHash string    `bson:"password_hash" json:"-"`
	Active       bool      `bson:"active" json:"active"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
