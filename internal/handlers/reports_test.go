package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/asistenciapp/internal/models"
	"github.com/yourorg/asistenciapp/internal/report"
)

const genericLoadError = "no se pudieron cargar los registros de asistencia"

// closedDB returns a handle whose queries fail without tocar una base real.
func closedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("mysql", "user:pass@tcp(127.0.0.1:3306)/asistencia?parseTime=true")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	db.Close()
	return db
}

func newReportTestApp(t *testing.T, agg *report.Aggregator) *fiber.App {
	t.Helper()
	setupMu.Lock()
	aggregator = agg
	if location == nil {
		location = time.UTC
	}
	setupMu.Unlock()

	app := fiber.New()
	h := NewReportHandler()
	app.Get("/api/reports/export", h.Export)
	app.Get("/api/reports/print", h.Print)
	return app
}

// Una falla de base durante la agregación no es un error de validación: el
// export responde 500 con el mensaje genérico, sin filtrar el error interno.
func TestExportBackendFailureRespondsGeneric(t *testing.T) {
	agg := report.NewAggregator(closedDB(t))
	defer agg.Close()
	app := newReportTestApp(t, agg)

	for _, path := range []string{
		"/api/reports/export?from=2025-03-01&to=2025-03-02",
		"/api/reports/print?from=2025-03-01&to=2025-03-02",
	} {
		req := httptest.NewRequest("GET", path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Errorf("%s: status = %d, esperaba 500", path, resp.StatusCode)
		}
		var body models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decodificando respuesta: %v", path, err)
		}
		resp.Body.Close()
		if body.Error != genericLoadError {
			t.Errorf("%s: error = %q, esperaba el mensaje genérico %q", path, body.Error, genericLoadError)
		}
	}
}

// Un rango inválido sigue siendo un 422 con el mensaje de validación.
func TestExportInvalidRangeResponds422(t *testing.T) {
	agg := report.NewAggregator(closedDB(t))
	defer agg.Close()
	app := newReportTestApp(t, agg)

	req := httptest.NewRequest("GET", "/api/reports/export?from=2025-03-10&to=2025-03-01", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("status = %d, esperaba 422", resp.StatusCode)
	}
	var body models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decodificando respuesta: %v", err)
	}
	if body.Error == "" || body.Error == genericLoadError {
		t.Errorf("error = %q, esperaba el mensaje de validación del rango", body.Error)
	}
}
