package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role distingue empleados de administradores en sesión y claims.
type Role string

const (
	RoleEmployee Role = "empleado"
	RoleAdmin    Role = "admin"
)

// LoginRequest represents credentials provided by the client.
// Identifier numérico ⇒ empleado (DNI); no numérico ⇒ admin (nombre).
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// SessionDTO is the identity echoed back to the client on login.
type SessionDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	DNI    string `json:"dni,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// LoginResponse is returned upon successful authentication.
type LoginResponse struct {
	Token     string     `json:"token"`
	User      SessionDTO `json:"user"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// SessionClaims is the signed session token payload: identidad y rol viajan
// firmados en lugar de campos sueltos escribibles por el cliente.
type SessionClaims struct {
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	DNI    string `json:"dni,omitempty"`
	Branch string `json:"branch,omitempty"`
	jwt.RegisteredClaims
}

// ErrorResponse is a simple error shape for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
