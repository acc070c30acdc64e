package dto

import "time"

// RegisterRequest entrada para registro de usuario.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse proyección pública del usuario (sin password). Los campos
// opcionales del perfil van como punteros: null cuando no aplican.
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Phone      *string   `json:"phone,omitempty"`
	University *string   `json:"university,omitempty"`
	Position   *string   `json:"position,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoginResponse salida de login y de refresh: par de tokens + usuario.
type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// RefreshRequest entrada para POST /refresh-token; el token también puede
// llegar por cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SessionResponse resultado de la rehidratación de sesión al arrancar el
// cliente: autenticado con par fresco, o no autenticado con todo limpio.
type SessionResponse struct {
	IsAuthenticated bool          `json:"isAuthenticated"`
	Token           string        `json:"token,omitempty"`
	RefreshToken    string        `json:"refreshToken,omitempty"`
	User            *UserResponse `json:"user,omitempty"`
}

// UpdateUserRequest entrada para PUT /me. Los campos nil no se tocan.
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	University *string `json:"university"`
	Position   *string `json:"position"`
}
