// Package domain contiene los errores y la política de autorización del CRM,
// sin dependencias de infraestructura.
package domain

import "github.com/leiritrix/crm-api/internal/domain/entity"

// Scope restringe las consultas sobre ventas según el rol del usuario.
// SellerID vacío significa sin restricción (admin y backoffice).
type Scope struct {
	SellerID string
}

// Unrestricted indica si el scope no filtra por vendedor.
func (s Scope) Unrestricted() bool {
	return s.SellerID == ""
}

// ScopeForUser devuelve el scope de lectura del usuario:
// los salesperson solo ven sus propias ventas; admin y backoffice ven todo.
func ScopeForUser(u *entity.User) Scope {
	if u.Role == entity.RoleSalesperson {
		return Scope{SellerID: u.ID}
	}
	return Scope{}
}

// CanMutateSale indica si el usuario puede modificar la venta:
// admin y backoffice siempre; salesperson solo si es el dueño.
func CanMutateSale(u *entity.User, s *entity.Sale) bool {
	if u.Role == entity.RoleAdmin || u.Role == entity.RoleBackoffice {
		return true
	}
	return u.Role == entity.RoleSalesperson && s.SellerID == u.ID
}

// RoleAllowed indica si el rol está dentro del conjunto permitido.
func RoleAllowed(role string, allowed ...string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
