package routes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/yourorg/asistenciapp/internal/handlers"
	"github.com/yourorg/asistenciapp/internal/live"
	"github.com/yourorg/asistenciapp/internal/middleware"
)

func Register(app *fiber.App, db *sql.DB) {
	api := app.Group("/api")

	// Health check (sin rate limiting)
	api.Get("/health", handlers.Health)

	// ============================================================================
	// AUTENTICACIÓN (con rate limiting estricto)
	// ============================================================================
	api.Post("/login", middleware.AuthRateLimiter(), handlers.Login)

	attendanceHandler := handlers.NewAttendanceHandler(db)
	employeeHandler := handlers.NewEmployeeHandler(db)
	reportHandler := handlers.NewReportHandler()

	auth := middleware.RequireAuth(handlers.JWTSecret)

	// ============================================================================
	// AUTOSERVICIO DEL EMPLEADO
	// ============================================================================
	att := api.Group("/attendance", auth, middleware.RequireEmployee())
	att.Post("/check", attendanceHandler.Check)
	// POST /api/attendance/check  Body: {shift, event}
	// Registra ingreso/egreso del día para el turno; sesión de único uso

	// ============================================================================
	// PANEL DE ADMINISTRACIÓN
	// ============================================================================
	admin := api.Group("", auth, middleware.RequireAdmin())

	employees := admin.Group("/employees")
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)

	reports := admin.Group("/reports")
	reports.Get("/daily", reportHandler.Daily)
	// GET /api/reports/daily?date=YYYY-MM-DD - una fila por empleado + stats
	reports.Get("/range", reportHandler.Range)
	// GET /api/reports/range?from=&to= - rango inclusivo, fila por (empleado, fecha)
	reports.Get("/export", middleware.ExportRateLimiter(), reportHandler.Export)
	// GET /api/reports/export?from=&to=&employee_id=&split=1 - planilla o zip
	reports.Get("/print", middleware.ExportRateLimiter(), reportHandler.Print)
	// GET /api/reports/print?from=&to= - PDF imprimible

	// ============================================================================
	// FEED EN VIVO DEL DASHBOARD (WebSocket)
	// ============================================================================
	app.Use("/ws/dashboard", auth, middleware.RequireAdmin(), func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/dashboard", websocket.New(live.HandleConn))
}
