package handlers

import (
	"database/sql"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/asistenciapp/internal/models"
	"github.com/yourorg/asistenciapp/internal/validation"
)

// EmployeeHandler cubre el alta y listado de empleados (solo admins).
// Reemplaza el atajo con contraseña embebida del panel original por una
// operación protegida por rol.
type EmployeeHandler struct {
	db *sql.DB
}

func NewEmployeeHandler(db *sql.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

// Create handles POST /api/employees.
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req models.EmployeeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid json"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.DNI = strings.TrimSpace(req.DNI)
	req.Branch = strings.TrimSpace(req.Branch)

	if req.Name == "" || req.DNI == "" || req.Password == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{Error: "nombre, dni y contraseña requeridos"})
	}
	if !validation.IsNumeric(req.DNI) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{Error: "el dni debe ser numérico"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "failed to secure password"})
	}

	id := uuid.NewString()
	var branch interface{}
	if req.Branch != "" {
		branch = req.Branch
	}
	_, err = h.db.Exec(
		`INSERT INTO users (id, name, dni, branch, password_hash) VALUES (?, ?, ?, ?, ?)`,
		id, req.Name, req.DNI, branch, string(hash),
	)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{Error: "ya existe un empleado con ese dni"})
		}
		log.Printf("❌ Error insertando empleado: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "db error"})
	}

	if agg := getAggregator(); agg != nil {
		agg.InvalidateRoster()
	}

	log.Printf("✅ Empleado creado: id=%s, dni=%s", id, req.DNI)
	return c.Status(fiber.StatusCreated).JSON(models.EmployeeDTO{
		ID:     id,
		Name:   req.Name,
		DNI:    req.DNI,
		Branch: req.Branch,
	})
}

// List handles GET /api/employees, ordenado por nombre.
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	agg := getAggregator()
	if agg == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "server not ready"})
	}
	employees, err := agg.Roster(c.Context())
	if err != nil {
		log.Printf("❌ Error listando empleados: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "no se pudo cargar el padrón"})
	}
	return c.JSON(fiber.Map{
		"employees": employees,
		"count":     len(employees),
	})
}
