package handlers

import (
	"database/sql"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/yourorg/asistenciapp/internal/attendance"
	"github.com/yourorg/asistenciapp/internal/report"
)

// package-level dependencies
var (
	setupOnce    sync.Once    // Garantiza inicialización única
	setupMu      sync.RWMutex // Protege acceso a variables globales
	dbConn       *sql.DB
	jwtSecret    []byte
	tokenTTL     = 12 * time.Hour
	location     *time.Location
	branchShifts map[string]attendance.Shift
	aggregator   *report.Aggregator
)

const defaultTimezone = "America/Argentina/Buenos_Aires"

// Setup wires shared dependencies for handlers. Call this during app bootstrap.
func Setup(db *sql.DB) {
	setupOnce.Do(func() {
		setupMu.Lock()
		defer setupMu.Unlock()

		dbConn = db
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			if os.Getenv("ENV") == "production" || os.Getenv("ENVIRONMENT") == "production" {
				log.Fatal("❌ CRITICAL: JWT_SECRET must be set in production environment")
			}
			log.Println("⚠️ WARNING: Using default JWT secret (development only)")
			secret = "dev-secret-change-me-0123456789abc"
		}
		if len(secret) < 32 {
			log.Fatalf("❌ CRITICAL: JWT_SECRET must be at least 32 characters long (current: %d)", len(secret))
		}
		jwtSecret = []byte(secret)

		if ttl := os.Getenv("JWT_TTL"); ttl != "" {
			dur, err := time.ParseDuration(ttl)
			if err != nil || dur <= 0 {
				log.Printf("invalid JWT_TTL=%q, using default %s", ttl, tokenTTL)
			} else {
				tokenTTL = dur
			}
		}

		tz := strings.TrimSpace(os.Getenv("APP_TIMEZONE"))
		if tz == "" {
			tz = defaultTimezone
		}
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Printf("invalid APP_TIMEZONE=%q, using local time: %v", tz, err)
			loc = time.Local
		}
		location = loc

		// Sucursales con un único turno habilitado (ej: "Centro:mañana")
		branchShifts = attendance.ParseBranchShifts(os.Getenv("BRANCH_SHIFTS"))

		aggregator = report.NewAggregator(db)
	})
}

// getDBConn retorna la conexión de base de datos de forma segura
func getDBConn() *sql.DB {
	setupMu.RLock()
	defer setupMu.RUnlock()
	return dbConn
}

// getJWTSecret retorna el secret JWT de forma segura
func getJWTSecret() []byte {
	setupMu.RLock()
	defer setupMu.RUnlock()
	return jwtSecret
}

// getLocation retorna la zona horaria de la aplicación
func getLocation() *time.Location {
	setupMu.RLock()
	defer setupMu.RUnlock()
	if location == nil {
		return time.Local
	}
	return location
}

func getAggregator() *report.Aggregator {
	setupMu.RLock()
	defer setupMu.RUnlock()
	return aggregator
}

func getBranchShifts() map[string]attendance.Shift {
	setupMu.RLock()
	defer setupMu.RUnlock()
	return branchShifts
}
