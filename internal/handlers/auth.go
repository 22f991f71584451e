package handlers

import (
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/asistenciapp/internal/models"
	"github.com/yourorg/asistenciapp/internal/validation"
)

// JWTSecret expone el secret de firma para el middleware de autenticación.
func JWTSecret() []byte {
	return getJWTSecret()
}

func issueToken(s models.SessionDTO) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(tokenTTL)
	claims := models.SessionClaims{
		Name:   s.Name,
		Role:   s.Role,
		DNI:    s.DNI,
		Branch: s.Branch,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(getJWTSecret())
	return signed, expires, err
}

// Login handles POST /api/login.
//
// Identificador numérico ⇒ búsqueda de empleado por DNI; cualquier otro ⇒
// búsqueda de admin por nombre. Una sola rama por intento, sin fallback: un
// admin con nombre completamente numérico no puede loguearse (limitación
// documentada). Toda falla responde el mismo mensaje genérico.
func Login(c *fiber.Ctx) error {
	db := getDBConn()
	if db == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "server not ready"})
	}
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid json"})
	}
	req.Identifier = strings.TrimSpace(req.Identifier)
	if req.Identifier == "" || strings.TrimSpace(req.Password) == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{Error: "identificador y contraseña requeridos"})
	}

	var (
		session      models.SessionDTO
		passwordHash string
	)

	if validation.IsNumeric(req.Identifier) {
		// ============ EMPLEADO (por DNI) ============
		var branch sql.NullString
		err := db.QueryRow(
			`SELECT id, name, dni, branch, password_hash FROM users WHERE dni = ?`,
			req.Identifier,
		).Scan(&session.ID, &session.Name, &session.DNI, &branch, &passwordHash)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				log.Printf("❌ Error consultando empleado: %v", err)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "credenciales incorrectas"})
		}
		session.Role = models.RoleEmployee
		session.Branch = branch.String
	} else {
		// ============ ADMIN (por nombre) ============
		err := db.QueryRow(
			`SELECT id, name, password_hash FROM admins WHERE name = ?`,
			req.Identifier,
		).Scan(&session.ID, &session.Name, &passwordHash)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				log.Printf("❌ Error consultando admin: %v", err)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "credenciales incorrectas"})
		}
		session.Role = models.RoleAdmin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "credenciales incorrectas"})
	}

	token, expiresAt, err := issueToken(session)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "failed to sign token"})
	}

	log.Printf("✅ Login exitoso: id=%s, rol=%s", session.ID, session.Role)
	c.Set("Cache-Control", "no-store")
	return c.Status(fiber.StatusOK).JSON(models.LoginResponse{
		Token:     token,
		User:      session,
		ExpiresAt: expiresAt,
	})
}
