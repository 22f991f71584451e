package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/asistenciapp/internal/models"
	"github.com/yourorg/asistenciapp/internal/report"
	"github.com/yourorg/asistenciapp/internal/validation"
)

// ReportHandler sirve la vista agregada del dashboard y sus exportaciones.
type ReportHandler struct{}

func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

// Daily handles GET /api/reports/daily?date=YYYY-MM-DD (hoy por defecto).
// Una fila por empleado aunque no tenga registros, más los contadores del
// panel.
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	agg := getAggregator()
	if agg == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "server not ready"})
	}

	raw := c.Query("date")
	var date time.Time
	if raw == "" {
		date = time.Now().In(getLocation())
	} else {
		parsed, err := validation.ParseDate(raw)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{Error: err.Error()})
		}
		date = parsed
	}

	resp, err := agg.Day(c.Context(), date)
	if err != nil {
		log.Printf("❌ Error al cargar los registros: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "no se pudieron cargar los registros de asistencia"})
	}
	return c.JSON(resp)
}

// Range handles GET /api/reports/range?from=&to=.
func (h *ReportHandler) Range(c *fiber.Ctx) error {
	agg := getAggregator()
	if agg == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "server not ready"})
	}

	from, to, err := validation.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{Error: err.Error()})
	}

	resp, err := agg.Range(c.Context(), from, to)
	if err != nil {
		log.Printf("❌ Error al cargar los registros del rango: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "no se pudieron cargar los registros de asistencia"})
	}
	return c.JSON(resp)
}

func periodLabel(resp *models.ReportResponse) string {
	if resp.From == resp.To {
		return resp.From
	}
	return fmt.Sprintf("%s_a_%s", resp.From, resp.To)
}

func employeeName(resp *models.ReportResponse, id string) string {
	for _, e := range resp.Employees {
		if e.ID == id {
			return e.Name
		}
	}
	return ""
}

// fetchPeriod resuelve el rango pedido para Export/Print. Si algo falla ya
// escribió la respuesta (422 para rango inválido, 500 genérico para fallas de
// base, igual que Daily/Range) y retorna resp nulo.
func (h *ReportHandler) fetchPeriod(c *fiber.Ctx) (*models.ReportResponse, error) {
	agg := getAggregator()
	if agg == nil {
		return nil, c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "server not ready"})
	}
	from, to, err := validation.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return nil, c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{Error: err.Error()})
	}
	resp, err := agg.Range(c.Context(), from, to)
	if err != nil {
		log.Printf("❌ Error al cargar los registros del período: %v", err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "no se pudieron cargar los registros de asistencia"})
	}
	return resp, nil
}

// Export handles GET /api/reports/export?from=&to=&employee_id=&split=.
// Con split=1 produce un zip con una planilla por empleado; si no, una sola
// planilla (opcionalmente filtrada a un empleado). Un período sin registros
// no produce archivo: responde el aviso y nada más.
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	resp, err := h.fetchPeriod(c)
	if resp == nil {
		return err
	}

	label := periodLabel(resp)
	loc := getLocation()

	var (
		data     []byte
		filename string
	)
	if c.QueryBool("split") {
		data, filename, err = report.ExportSplit(resp.Records, label, loc)
	} else {
		employeeID := c.Query("employee_id")
		data, filename, err = report.Export(resp.Records, label, employeeID, employeeName(resp, employeeID), loc)
	}
	if err != nil {
		if errors.Is(err, report.ErrNothingToExport) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: err.Error()})
		}
		log.Printf("❌ Error generando exportación: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "no se pudo generar la exportación"})
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	if c.QueryBool("split") {
		c.Set(fiber.HeaderContentType, "application/zip")
	} else {
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	}
	return c.Send(data)
}

// Print handles GET /api/reports/print?from=&to=&employee_id=.
// Versión PDF imprimible del período, renderizada con Chrome headless.
func (h *ReportHandler) Print(c *fiber.Ctx) error {
	resp, err := h.fetchPeriod(c)
	if resp == nil {
		return err
	}

	label := periodLabel(resp)
	pdf, err := report.PrintPDF(c.Context(), resp.Records, label, c.Query("employee_id"), getLocation())
	if err != nil {
		if errors.Is(err, report.ErrNothingToExport) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: err.Error()})
		}
		log.Printf("❌ Error generando PDF: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{Error: report.ErrChromeUnavailable.Error()})
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fmt.Sprintf("Asistencia_%s.pdf", label)))
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}
