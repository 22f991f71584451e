package report

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yourorg/asistenciapp/internal/attendance"
	"github.com/yourorg/asistenciapp/internal/models"
)

// ============================================================================
// EXPORTADOR DE REPORTES
// ============================================================================
// Convierte las filas agregadas en una planilla: una hoja "Asistencia" con
// los cuatro horarios formateados, anchos fijos de columna y el resaltado de
// llegadas tarde sobre las celdas de ingreso.

const (
	sheetName   = "Asistencia"
	notRecorded = "No registrado"
	timeOfDay   = "15:04"
)

// ErrNothingToExport signals an empty filtered set: no hay bytes de archivo,
// solo el aviso al usuario.
var ErrNothingToExport = errors.New("no hay registros de asistencia para exportar")

// Row is one formatted line of the artifact, shared by the spreadsheet and
// the printable PDF.
type Row struct {
	Name          string
	Date          string
	MorningIn     string
	MorningOut    string
	AfternoonIn   string
	AfternoonOut  string
	MorningLate   bool
	AfternoonLate bool
}

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return notRecorded
	}
	return t.In(loc).Format(timeOfDay)
}

// PrepareRows filters the aggregated records down to the exportable set:
// opcionalmente un solo empleado, sin filas completamente vacías, ordenado
// por nombre y luego fecha, con horarios localizados y marca de tardanza.
func PrepareRows(records []models.AggregatedDayRecord, employeeID string, loc *time.Location) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		if employeeID != "" && rec.UserID != employeeID {
			continue
		}
		if !rec.HasAttendance() {
			continue
		}

		row := Row{
			Name:         rec.Name,
			Date:         rec.Date,
			MorningIn:    notRecorded,
			MorningOut:   notRecorded,
			AfternoonIn:  notRecorded,
			AfternoonOut: notRecorded,
		}
		if rec.Morning != nil {
			row.MorningIn = formatTime(rec.Morning.CheckIn, loc)
			row.MorningOut = formatTime(rec.Morning.CheckOut, loc)
			if rec.Morning.CheckIn != nil {
				row.MorningLate = attendance.IsLate(attendance.ShiftMorning, rec.Morning.CheckIn.In(loc))
			}
		}
		if rec.Afternoon != nil {
			row.AfternoonIn = formatTime(rec.Afternoon.CheckIn, loc)
			row.AfternoonOut = formatTime(rec.Afternoon.CheckOut, loc)
			if rec.Afternoon.CheckIn != nil {
				row.AfternoonLate = attendance.IsLate(attendance.ShiftAfternoon, rec.Afternoon.CheckIn.In(loc))
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Date < rows[j].Date
	})
	return rows
}

// buildWorkbook writes the rows into a styled workbook.
func buildWorkbook(rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"Empleado", "Fecha", "Ingreso Mañana", "Egreso Mañana", "Ingreso Tarde", "Egreso Tarde"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", headerStyle); err != nil {
		return nil, err
	}

	// Resaltado de tardanza: negrita sobre relleno rojo claro.
	lateStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		line := i + 2
		values := []interface{}{row.Name, row.Date, row.MorningIn, row.MorningOut, row.AfternoonIn, row.AfternoonOut}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, line)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
		if row.MorningLate {
			cell, _ := excelize.CoordinatesToCellName(3, line)
			if err := f.SetCellStyle(sheetName, cell, cell, lateStyle); err != nil {
				return nil, err
			}
		}
		if row.AfternoonLate {
			cell, _ := excelize.CoordinatesToCellName(5, line)
			if err := f.SetCellStyle(sheetName, cell, cell, lateStyle); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 20); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "B", "B", 12); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "C", "F", 15); err != nil {
		return nil, err
	}

	return f, nil
}

// sanitizeFilePart keeps artifact names filesystem-friendly.
func sanitizeFilePart(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(s)
}

// Export builds a single workbook for the period, optionally filtered to one
// employee (employeeName solo etiqueta el archivo). Returns the file bytes
// and the artifact name.
func Export(records []models.AggregatedDayRecord, label, employeeID, employeeName string, loc *time.Location) ([]byte, string, error) {
	rows := PrepareRows(records, employeeID, loc)
	if len(rows) == 0 {
		return nil, "", ErrNothingToExport
	}

	f, err := buildWorkbook(rows)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	who := "Todos"
	if employeeID != "" && employeeName != "" {
		who = employeeName
	}
	name := fmt.Sprintf("Asistencia_%s_%s.xlsx", sanitizeFilePart(who), sanitizeFilePart(label))
	return buf.Bytes(), name, nil
}

// ExportSplit builds one workbook per employee with data in the period and
// bundles them in a zip, cada uno nombrado con el empleado y el período.
func ExportSplit(records []models.AggregatedDayRecord, label string, loc *time.Location) ([]byte, string, error) {
	all := PrepareRows(records, "", loc)
	if len(all) == 0 {
		return nil, "", ErrNothingToExport
	}

	byName := make(map[string][]Row)
	order := []string{}
	for _, row := range all {
		if _, seen := byName[row.Name]; !seen {
			order = append(order, row.Name)
		}
		byName[row.Name] = append(byName[row.Name], row)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		f, err := buildWorkbook(byName[name])
		if err != nil {
			return nil, "", err
		}
		entry, err := zw.Create(fmt.Sprintf("Asistencia_%s_%s.xlsx", sanitizeFilePart(name), sanitizeFilePart(label)))
		if err != nil {
			f.Close()
			return nil, "", err
		}
		if err := f.Write(entry); err != nil {
			f.Close()
			return nil, "", err
		}
		f.Close()
	}
	if err := zw.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), fmt.Sprintf("Asistencia_%s.zip", sanitizeFilePart(label)), nil
}
