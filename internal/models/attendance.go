package models

import "time"

// AttendanceRecord is one row of a shift table: a (user, date) pair with its
// optional check-in/check-out timestamps. Nunca se borra; se escribe a lo
// sumo dos veces (ingreso y luego egreso).
type AttendanceRecord struct {
	UserID   string     `json:"user_id"`
	Date     string     `json:"date"` // YYYY-MM-DD
	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`
}

// ShiftTimes is the pair of timestamps of one shift inside an aggregated row.
type ShiftTimes struct {
	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`
}

// AggregatedDayRecord joins one employee with its morning/afternoon rows for
// one date. Derivado, solo para visualización/exportación; no se persiste.
type AggregatedDayRecord struct {
	Date      string      `json:"date"`
	UserID    string      `json:"user_id"`
	Name      string      `json:"name"`
	Morning   *ShiftTimes `json:"morning,omitempty"`
	Afternoon *ShiftTimes `json:"afternoon,omitempty"`
}

// HasAttendance reports whether any of the four timestamps is set.
func (r AggregatedDayRecord) HasAttendance() bool {
	if r.Morning != nil && (r.Morning.CheckIn != nil || r.Morning.CheckOut != nil) {
		return true
	}
	if r.Afternoon != nil && (r.Afternoon.CheckIn != nil || r.Afternoon.CheckOut != nil) {
		return true
	}
	return false
}

// CheckRequest is the body of POST /api/attendance/check.
type CheckRequest struct {
	Shift string `json:"shift"` // "mañana" | "tarde"
	Event string `json:"event"` // "ingreso" | "egreso"
}

// CheckResponse confirms a recorded event. SessionClosed marca la sesión de
// único uso: tras un registro exitoso el cliente descarta su token.
type CheckResponse struct {
	Message       string `json:"message"`
	Shift         string `json:"shift"`
	Event         string `json:"event"`
	RecordedAt    string `json:"recorded_at"`
	SessionClosed bool   `json:"session_closed"`
}

// DayStats mirrors the dashboard counters: total roster plus how many
// employees checked in per shift on the selected date.
type DayStats struct {
	TotalEmployees   int `json:"total_employees"`
	MorningPresent   int `json:"morning_present"`
	AfternoonPresent int `json:"afternoon_present"`
}

// ReportResponse is the aggregator output for a date or range.
type ReportResponse struct {
	From      string                `json:"from"`
	To        string                `json:"to"`
	Records   []AggregatedDayRecord `json:"records"`
	Employees []EmployeeDTO         `json:"employees"`
	Stats     *DayStats             `json:"stats,omitempty"`
}
