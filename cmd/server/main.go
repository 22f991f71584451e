package main

import (
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	appdb "github.com/yourorg/asistenciapp/internal/db"
	"github.com/yourorg/asistenciapp/internal/handlers"
	"github.com/yourorg/asistenciapp/internal/routes"
)

func main() {
	_ = godotenv.Load()

	app := fiber.New()
	app.Use(logger.New())

	// ============================================================================
	// DB CONNECTION
	// ============================================================================
	var dbReady atomic.Bool

	go func() {
		for {
			db, err := appdb.Connect()
			if err != nil {
				log.Printf("db connect error: %v (retrying in 5s)", err)
				time.Sleep(5 * time.Second)
				continue
			}
			if err := appdb.EnsureSchema(db); err != nil {
				log.Printf("ensure schema error: %v (retrying in 5s)", err)
				time.Sleep(5 * time.Second)
				continue
			}
			handlers.Setup(db)
			routes.Register(app, db)
			dbReady.Store(true)
			log.Printf("✅ Database ready and routes registered")
			return
		}
	}()

	// Wait briefly for DB to be ready
	for i := 0; i < 10 && !dbReady.Load(); i++ {
		time.Sleep(500 * time.Millisecond)
	}

	// ============================================================================
	// GRACEFUL SHUTDOWN
	// ============================================================================
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\n🛑 Señal de terminación recibida, cerrando servidor...")
		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️  Error cerrando servidor: %v", err)
		}
		log.Println("✅ Servidor cerrado correctamente")
		os.Exit(0)
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Servidor escuchando en :%s", port)
	log.Println("📍 Endpoints disponibles:")
	log.Println("   POST /api/login                  - Login empleado (DNI) o admin (nombre)")
	log.Println("   POST /api/attendance/check       - Registrar ingreso/egreso del turno")
	log.Println("   GET  /api/reports/daily          - Asistencia de un día (panel admin)")
	log.Println("   GET  /api/reports/range          - Asistencia por rango de fechas")
	log.Println("   GET  /api/reports/export         - Exportar planilla (.xlsx / zip)")
	log.Println("   GET  /api/reports/print          - Reporte imprimible (PDF)")
	log.Println("   POST /api/employees              - Alta de empleado (admin)")
	log.Println("   GET  /ws/dashboard               - Feed en vivo del dashboard")
	log.Println("💡 Presiona Ctrl+C para detener")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
