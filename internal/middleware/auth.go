package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yourorg/asistenciapp/internal/models"
)

// ============================================================================
// MIDDLEWARE DE AUTENTICACIÓN
// ============================================================================
// Valida el token de sesión firmado y deja la identidad en c.Locals para los
// handlers protegidos. Sin token válido el cliente recibe 401 y el frontend
// redirige al login; el mismatch de rol responde 403 sin más detalle.

// Claves de c.Locals pobladas por RequireAuth.
const (
	LocalUserID = "userID"
	LocalName   = "userName"
	LocalRole   = "userRole"
	LocalDNI    = "userDNI"
	LocalBranch = "userBranch"
)

// RequireAuth parses the Bearer token (o ?token= para la conexión WebSocket
// del dashboard) and stores the session identity in request locals.
func RequireAuth(secret func() []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ""
		if auth := c.Get("Authorization"); auth != "" {
			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "formato de Authorization inválido"})
			}
			tokenString = parts[1]
		} else if q := c.Query("token"); q != "" {
			tokenString = q
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "sesión requerida"})
		}

		claims := &models.SessionClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
			}
			return secret(), nil
		})
		if err != nil || !token.Valid {
			msg := "sesión inválida"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "sesión expirada"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: msg})
		}

		c.Locals(LocalUserID, claims.Subject)
		c.Locals(LocalName, claims.Name)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalDNI, claims.DNI)
		c.Locals(LocalBranch, claims.Branch)
		return c.Next()
	}
}

func requireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if got, ok := c.Locals(LocalRole).(models.Role); !ok || got != role {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{Error: "acceso denegado"})
		}
		return c.Next()
	}
}

// RequireAdmin gates admin-only routes. Debe ir después de RequireAuth.
func RequireAdmin() fiber.Handler {
	return requireRole(models.RoleAdmin)
}

// RequireEmployee gates the self-service attendance routes.
func RequireEmployee() fiber.Handler {
	return requireRole(models.RoleEmployee)
}
