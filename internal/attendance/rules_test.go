package attendance

import (
	"testing"
	"time"

	"github.com/yourorg/asistenciapp/internal/models"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.Local)
}

func TestParseShift(t *testing.T) {
	if s, err := ParseShift(" Mañana "); err != nil || s != ShiftMorning {
		t.Errorf("expected ShiftMorning, got %q err=%v", s, err)
	}
	if s, err := ParseShift("tarde"); err != nil || s != ShiftAfternoon {
		t.Errorf("expected ShiftAfternoon, got %q err=%v", s, err)
	}
	if _, err := ParseShift("noche"); err == nil {
		t.Error("expected error for unknown shift")
	}
	if _, err := ParseShift(""); err == nil {
		t.Error("expected error for empty shift")
	}
}

func TestParseEvent(t *testing.T) {
	if e, err := ParseEvent("INGRESO"); err != nil || e != EventCheckIn {
		t.Errorf("expected EventCheckIn, got %q err=%v", e, err)
	}
	if e, err := ParseEvent("egreso"); err != nil || e != EventCheckOut {
		t.Errorf("expected EventCheckOut, got %q err=%v", e, err)
	}
	if _, err := ParseEvent("almuerzo"); err == nil {
		t.Error("expected error for unknown event")
	}
}

func TestShiftTable(t *testing.T) {
	if ShiftMorning.Table() != "attendance_morning" {
		t.Errorf("unexpected morning table %q", ShiftMorning.Table())
	}
	if ShiftAfternoon.Table() != "attendance_afternoon" {
		t.Errorf("unexpected afternoon table %q", ShiftAfternoon.Table())
	}
}

func TestWithinCheckInWindow(t *testing.T) {
	cases := []struct {
		shift     Shift
		hour, min int
		want      bool
	}{
		{ShiftMorning, 8, 0, true},
		{ShiftMorning, 9, 0, true},  // límite inclusivo
		{ShiftMorning, 9, 1, false}, // un minuto después, rechazado
		{ShiftMorning, 12, 0, false},
		{ShiftAfternoon, 17, 59, true},
		{ShiftAfternoon, 18, 0, true},
		{ShiftAfternoon, 18, 1, false},
	}
	for _, c := range cases {
		got := WithinCheckInWindow(c.shift, at(c.hour, c.min))
		if got != c.want {
			t.Errorf("WithinCheckInWindow(%s, %02d:%02d) = %v, want %v", c.shift, c.hour, c.min, got, c.want)
		}
	}
}

func TestIsLate(t *testing.T) {
	cases := []struct {
		shift     Shift
		hour, min int
		want      bool
	}{
		{ShiftMorning, 8, 15, false}, // exacto no es tarde
		{ShiftMorning, 8, 16, true},
		{ShiftMorning, 7, 45, false},
		{ShiftAfternoon, 17, 15, false},
		{ShiftAfternoon, 17, 16, true},
	}
	for _, c := range cases {
		got := IsLate(c.shift, at(c.hour, c.min))
		if got != c.want {
			t.Errorf("IsLate(%s, %02d:%02d) = %v, want %v", c.shift, c.hour, c.min, got, c.want)
		}
	}
}

func TestDecideNoExistingRow(t *testing.T) {
	action, err := Decide(nil, EventCheckIn)
	if err != nil || action != ActionInsertCheckIn {
		t.Errorf("expected ActionInsertCheckIn, got %v err=%v", action, err)
	}

	// Egreso sin ingreso previo: permitido, inserta solo check_out
	action, err = Decide(nil, EventCheckOut)
	if err != nil || action != ActionInsertCheckOut {
		t.Errorf("expected ActionInsertCheckOut, got %v err=%v", action, err)
	}
}

func TestDecideExistingRow(t *testing.T) {
	now := time.Now()

	withCheckIn := &models.AttendanceRecord{CheckIn: &now}
	if _, err := Decide(withCheckIn, EventCheckIn); err != ErrAlreadyCheckedIn {
		t.Errorf("expected ErrAlreadyCheckedIn, got %v", err)
	}
	if action, err := Decide(withCheckIn, EventCheckOut); err != nil || action != ActionSetCheckOut {
		t.Errorf("expected ActionSetCheckOut, got %v err=%v", action, err)
	}

	withBoth := &models.AttendanceRecord{CheckIn: &now, CheckOut: &now}
	if _, err := Decide(withBoth, EventCheckOut); err != ErrAlreadyCheckedOut {
		t.Errorf("expected ErrAlreadyCheckedOut, got %v", err)
	}

	// Fila creada por un egreso suelto: el ingreso posterior todavía se acepta
	onlyOut := &models.AttendanceRecord{CheckOut: &now}
	if action, err := Decide(onlyOut, EventCheckIn); err != nil || action != ActionSetCheckIn {
		t.Errorf("expected ActionSetCheckIn, got %v err=%v", action, err)
	}
}

func TestParseBranchShifts(t *testing.T) {
	m := ParseBranchShifts("Centro:mañana, Norte:tarde, malformado, Vacia: , :tarde")
	if len(m) != 2 {
		t.Fatalf("expected 2 entries, got %d (%v)", len(m), m)
	}
	if s, ok := ForcedShift(m, "Centro"); !ok || s != ShiftMorning {
		t.Errorf("expected Centro forced to mañana, got %q ok=%v", s, ok)
	}
	if s, ok := ForcedShift(m, "Norte"); !ok || s != ShiftAfternoon {
		t.Errorf("expected Norte forced to tarde, got %q ok=%v", s, ok)
	}
	if _, ok := ForcedShift(m, "Sur"); ok {
		t.Error("expected Sur to have no forced shift")
	}
}
