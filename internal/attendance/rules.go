package attendance

import (
	"errors"
	"strings"
	"time"

	"github.com/yourorg/asistenciapp/internal/models"
)

// ============================================================================
// REGLAS DE ASISTENCIA
// ============================================================================
// Lógica pura del registro de ingreso/egreso: qué turno, qué evento, si la
// hora está dentro de la ventana permitida y qué escritura corresponde dada
// la fila existente del día. Los handlers solo ejecutan la decisión.

// Shift is one of the two fixed daily work periods.
type Shift string

const (
	ShiftMorning   Shift = "mañana"
	ShiftAfternoon Shift = "tarde"
)

// Event is one of the two events recorded per shift per day.
type Event string

const (
	EventCheckIn  Event = "ingreso"
	EventCheckOut Event = "egreso"
)

var (
	ErrUnknownShift      = errors.New("turno inválido: debe ser mañana o tarde")
	ErrUnknownEvent      = errors.New("evento inválido: debe ser ingreso o egreso")
	ErrAlreadyCheckedIn  = errors.New("ya se registró el ingreso para hoy")
	ErrAlreadyCheckedOut = errors.New("ya se registró el egreso para hoy")
	ErrOutsideWindow     = errors.New("fuera del horario permitido para registrar ingreso")
)

// ParseShift validates a client-provided shift selector.
func ParseShift(s string) (Shift, error) {
	switch Shift(strings.TrimSpace(strings.ToLower(s))) {
	case ShiftMorning:
		return ShiftMorning, nil
	case ShiftAfternoon:
		return ShiftAfternoon, nil
	}
	return "", ErrUnknownShift
}

// ParseEvent validates a client-provided event type.
func ParseEvent(s string) (Event, error) {
	switch Event(strings.TrimSpace(strings.ToLower(s))) {
	case EventCheckIn:
		return EventCheckIn, nil
	case EventCheckOut:
		return EventCheckOut, nil
	}
	return "", ErrUnknownEvent
}

// Table returns the attendance table backing the shift.
func (s Shift) Table() string {
	if s == ShiftAfternoon {
		return "attendance_afternoon"
	}
	return "attendance_morning"
}

// Horarios límite, en minutos desde medianoche.
const (
	morningCheckInCutoff   = 9 * 60     // 09:00
	afternoonCheckInCutoff = 18 * 60    // 18:00
	morningLateAfter       = 8*60 + 15  // 08:15
	afternoonLateAfter     = 17*60 + 15 // 17:15
)

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// WithinCheckInWindow reports whether a check-in at local time t is still
// accepted for the shift. El límite es inclusivo: a las 09:00 en punto el
// ingreso de mañana todavía vale; 09:01 ya no. El egreso no tiene ventana.
func WithinCheckInWindow(s Shift, t time.Time) bool {
	cutoff := morningCheckInCutoff
	if s == ShiftAfternoon {
		cutoff = afternoonCheckInCutoff
	}
	return minuteOfDay(t) <= cutoff
}

// IsLate reports whether a check-in at local time t gets the lateness flag on
// the exported report: estrictamente después de 08:15 (mañana) o 17:15
// (tarde). En el minuto exacto del límite no se marca.
func IsLate(s Shift, t time.Time) bool {
	limit := morningLateAfter
	if s == ShiftAfternoon {
		limit = afternoonLateAfter
	}
	return minuteOfDay(t) > limit
}

// Action is the single write the recorder must perform.
type Action int

const (
	ActionInsertCheckIn Action = iota
	ActionInsertCheckOut
	ActionSetCheckIn
	ActionSetCheckOut
)

// Decide resolves the insert-or-update for one event against today's existing
// row (nil when none). Un egreso sin ingreso previo inserta la fila con solo
// check_out; un segundo ingreso o egreso del mismo día se rechaza sin tocar
// la fila.
func Decide(existing *models.AttendanceRecord, ev Event) (Action, error) {
	if existing == nil {
		if ev == EventCheckOut {
			return ActionInsertCheckOut, nil
		}
		return ActionInsertCheckIn, nil
	}
	if ev == EventCheckIn {
		if existing.CheckIn != nil {
			return 0, ErrAlreadyCheckedIn
		}
		return ActionSetCheckIn, nil
	}
	if existing.CheckOut != nil {
		return 0, ErrAlreadyCheckedOut
	}
	return ActionSetCheckOut, nil
}
