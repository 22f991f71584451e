package report

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/yourorg/asistenciapp/internal/models"
)

// ============================================================================
// REPORTE IMPRIMIBLE (PDF)
// ============================================================================
// Versión servidor del botón "Imprimir" del panel: arma la misma tabla del
// período en HTML y la imprime con Chrome headless. Requiere un Chrome
// instalado; sin él el endpoint responde que la impresión no está disponible.

// ErrChromeUnavailable indica que no se pudo lanzar Chrome headless.
var ErrChromeUnavailable = errors.New("impresión no disponible: Chrome headless no pudo iniciarse")

const printTimeout = 60 * time.Second

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Asistencia {{.Label}}</title>
<style>
  body { font-family: sans-serif; margin: 24px; }
  h1 { font-size: 18px; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #999; padding: 4px 8px; font-size: 12px; }
  th { background: #eee; }
  td.late { background: #ffc7ce; color: #9c0006; font-weight: bold; }
</style>
</head>
<body>
<h1>Asistencia — {{.Label}}</h1>
<table>
  <tr>
    <th>Empleado</th><th>Fecha</th>
    <th>Ingreso Mañana</th><th>Egreso Mañana</th>
    <th>Ingreso Tarde</th><th>Egreso Tarde</th>
  </tr>
  {{range .Rows}}
  <tr>
    <td>{{.Name}}</td><td>{{.Date}}</td>
    <td{{if .MorningLate}} class="late"{{end}}>{{.MorningIn}}</td>
    <td>{{.MorningOut}}</td>
    <td{{if .AfternoonLate}} class="late"{{end}}>{{.AfternoonIn}}</td>
    <td>{{.AfternoonOut}}</td>
  </tr>
  {{end}}
</table>
</body>
</html>`))

// RenderHTML produces the printable table for the period.
func RenderHTML(records []models.AggregatedDayRecord, label, employeeID string, loc *time.Location) (string, error) {
	rows := PrepareRows(records, employeeID, loc)
	if len(rows) == 0 {
		return "", ErrNothingToExport
	}

	var sb strings.Builder
	err := reportTemplate.Execute(&sb, struct {
		Label string
		Rows  []Row
	}{Label: label, Rows: rows})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// PrintPDF renders the aggregated period to PDF bytes via headless Chrome.
func PrintPDF(ctx context.Context, records []models.AggregatedDayRecord, label, employeeID string, loc *time.Location) ([]byte, error) {
	html, err := RenderHTML(records, label, employeeID, loc)
	if err != nil {
		return nil, err
	}

	// Chrome navega un archivo temporal; data: URLs largas fallan en CDP.
	tmp, err := os.CreateTemp("", "asistencia-*.html")
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	runCtx, cancelRun := context.WithTimeout(browserCtx, printTimeout)
	defer cancelRun()

	fileURL := "file://" + filepath.ToSlash(tmpPath)
	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate(fileURL),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChromeUnavailable, err)
	}
	return pdf, nil
}
