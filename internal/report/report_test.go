package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yourorg/asistenciapp/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDatesBetweenSingleDay(t *testing.T) {
	dates := DatesBetween(day(2025, 3, 10), day(2025, 3, 10))
	if len(dates) != 1 || dates[0] != "2025-03-10" {
		t.Errorf("unexpected dates %v", dates)
	}
}

func TestDatesBetweenCrossesMonthBoundary(t *testing.T) {
	// Ene 30 – Feb 2: exactamente 4 fechas
	dates := DatesBetween(day(2025, 1, 30), day(2025, 2, 2))
	want := []string{"2025-01-30", "2025-01-31", "2025-02-01", "2025-02-02"}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %d (%v)", len(want), len(dates), dates)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %q, want %q", i, dates[i], want[i])
		}
	}
}

func TestDatesBetweenLeapFebruary(t *testing.T) {
	dates := DatesBetween(day(2024, 2, 28), day(2024, 3, 1))
	if len(dates) != 3 || dates[1] != "2024-02-29" {
		t.Errorf("expected leap day in %v", dates)
	}
}

func ts(hour, min int) *time.Time {
	t := time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
	return &t
}

func sampleRecords() []models.AggregatedDayRecord {
	return []models.AggregatedDayRecord{
		{
			Date: "2025-03-10", UserID: "u1", Name: "Beatriz",
			Morning:   &models.ShiftTimes{CheckIn: ts(8, 16)}, // tarde por un minuto
			Afternoon: &models.ShiftTimes{CheckIn: ts(17, 15), CheckOut: ts(21, 0)},
		},
		{
			Date: "2025-03-10", UserID: "u2", Name: "Alberto",
			Morning: &models.ShiftTimes{CheckIn: ts(8, 15), CheckOut: ts(12, 30)},
		},
		{
			// Sin asistencia en ningún turno: se descarta al exportar
			Date: "2025-03-10", UserID: "u3", Name: "Carla",
		},
		{
			Date: "2025-03-11", UserID: "u2", Name: "Alberto",
			Afternoon: &models.ShiftTimes{CheckOut: ts(21, 10)}, // egreso sin ingreso
		},
	}
}

func TestPrepareRowsDropsEmptyAndSorts(t *testing.T) {
	rows := PrepareRows(sampleRecords(), "", time.UTC)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Orden: nombre y luego fecha
	if rows[0].Name != "Alberto" || rows[0].Date != "2025-03-10" {
		t.Errorf("rows[0] = %s %s", rows[0].Name, rows[0].Date)
	}
	if rows[1].Name != "Alberto" || rows[1].Date != "2025-03-11" {
		t.Errorf("rows[1] = %s %s", rows[1].Name, rows[1].Date)
	}
	if rows[2].Name != "Beatriz" {
		t.Errorf("rows[2] = %s", rows[2].Name)
	}
}

func TestPrepareRowsLatenessBoundary(t *testing.T) {
	rows := PrepareRows(sampleRecords(), "", time.UTC)

	// Beatriz: 08:16 mañana marcada, 17:15 tarde exacta no marcada
	beatriz := rows[2]
	if !beatriz.MorningLate {
		t.Error("expected 08:16 morning check-in flagged late")
	}
	if beatriz.AfternoonLate {
		t.Error("expected 17:15 afternoon check-in not flagged")
	}

	// Alberto 08:15 exacto: no marcado
	if rows[0].MorningLate {
		t.Error("expected 08:15 morning check-in not flagged")
	}
}

func TestPrepareRowsPlaceholders(t *testing.T) {
	rows := PrepareRows(sampleRecords(), "u2", time.UTC)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for u2, got %d", len(rows))
	}
	first := rows[0]
	if first.MorningIn != "08:15" || first.MorningOut != "12:30" {
		t.Errorf("unexpected morning times %q / %q", first.MorningIn, first.MorningOut)
	}
	if first.AfternoonIn != "No registrado" || first.AfternoonOut != "No registrado" {
		t.Errorf("expected placeholders, got %q / %q", first.AfternoonIn, first.AfternoonOut)
	}
	// Egreso sin ingreso: el ingreso queda como no registrado
	second := rows[1]
	if second.AfternoonIn != "No registrado" || second.AfternoonOut != "21:10" {
		t.Errorf("unexpected afternoon times %q / %q", second.AfternoonIn, second.AfternoonOut)
	}
	if second.AfternoonLate {
		t.Error("missing check-in must not be flagged late")
	}
}

func TestExportEmptySetProducesNoFile(t *testing.T) {
	empty := []models.AggregatedDayRecord{{Date: "2025-03-10", UserID: "u1", Name: "Ana"}}

	data, name, err := Export(empty, "Marzo_2025", "", "", time.UTC)
	if !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
	if data != nil || name != "" {
		t.Error("expected no artifact bytes for empty export")
	}

	if _, _, err := ExportSplit(empty, "Marzo_2025", time.UTC); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("expected ErrNothingToExport from split export, got %v", err)
	}
}

func TestExportProducesWorkbook(t *testing.T) {
	data, name, err := Export(sampleRecords(), "Marzo 2025", "", "", time.UTC)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected workbook bytes")
	}
	if name != "Asistencia_Todos_Marzo_2025.xlsx" {
		t.Errorf("unexpected artifact name %q", name)
	}
}

func TestExportFilteredNamesArtifactAfterEmployee(t *testing.T) {
	_, name, err := Export(sampleRecords(), "Marzo 2025", "u2", "Alberto Gómez", time.UTC)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if name != "Asistencia_Alberto_Gómez_Marzo_2025.xlsx" {
		t.Errorf("unexpected artifact name %q", name)
	}
}

func TestRenderHTMLMarksLateCells(t *testing.T) {
	html, err := RenderHTML(sampleRecords(), "Marzo 2025", "", time.UTC)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(html, `class="late"`) {
		t.Error("expected a late-flagged cell in rendered HTML")
	}
	if !strings.Contains(html, "No registrado") {
		t.Error("expected placeholder text in rendered HTML")
	}
}

func TestComputeStats(t *testing.T) {
	stats := computeStats(sampleRecords()[:3]) // un solo día
	if stats.TotalEmployees != 3 {
		t.Errorf("total = %d, want 3", stats.TotalEmployees)
	}
	if stats.MorningPresent != 2 {
		t.Errorf("morning = %d, want 2", stats.MorningPresent)
	}
	if stats.AfternoonPresent != 1 {
		t.Errorf("afternoon = %d, want 1", stats.AfternoonPresent)
	}
}
