package dto

// RegisterRequest entrada para registrar un usuario (solo admin).
// El password viaja en claro y se hashea en el use case.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"` // admin, backoffice, salesperson
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin password hash).
type UserResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// LoginResponse salida de login: token JWT + perfil.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToggleActiveResponse salida de PUT /users/{id}/toggle-active.
type ToggleActiveResponse struct {
	Message string `json:"message"`
	Active  bool   `json:"active"`
}

// InitResponse salida de POST /init. Las credenciales solo se incluyen
// cuando el admin de arranque se acaba de crear.
type InitResponse struct {
	Message       string `json:"message"`
	AdminEmail    string `json:"admin_email,omitempty"`
	AdminPassword string `json:"admin_password,omitempty"`
}
