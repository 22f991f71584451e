package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/asistenciapp/internal/attendance"
	"github.com/yourorg/asistenciapp/internal/live"
	"github.com/yourorg/asistenciapp/internal/middleware"
	"github.com/yourorg/asistenciapp/internal/models"
	"github.com/yourorg/asistenciapp/internal/validation"
)

// AttendanceHandler registra ingresos y egresos por turno.
type AttendanceHandler struct {
	db *sql.DB
}

func NewAttendanceHandler(db *sql.DB) *AttendanceHandler {
	return &AttendanceHandler{db: db}
}

// Check handles POST /api/attendance/check.
//
// Una sola escritura por llamada: inserta la fila del día si no existe o
// completa el campo que falta. El duplicado del mismo evento se rechaza con
// el mensaje de la regla; un fallo de base deja la sesión intacta para
// reintentar. Tras un registro exitoso la sesión es de único uso: el cliente
// descarta el token (session_closed).
func (h *AttendanceHandler) Check(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)
	userName, _ := c.Locals(middleware.LocalName).(string)
	branch, _ := c.Locals(middleware.LocalBranch).(string)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "sesión requerida"})
	}

	var req models.CheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid json"})
	}

	// Sucursal de turno único: el turno viene preseteado, no se elige.
	var shift attendance.Shift
	if forced, ok := attendance.ForcedShift(getBranchShifts(), branch); ok {
		shift = forced
	} else {
		if req.Shift == "" {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{Error: "debe seleccionar un turno antes de registrar el evento"})
		}
		parsed, err := attendance.ParseShift(req.Shift)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{Error: err.Error()})
		}
		shift = parsed
	}

	event, err := attendance.ParseEvent(req.Event)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{Error: err.Error()})
	}

	now := time.Now().In(getLocation())
	date := now.Format(validation.DateLayout)

	// El ingreso solo se acepta hasta el horario límite del turno; el egreso
	// no tiene ventana.
	if event == attendance.EventCheckIn && !attendance.WithinCheckInWindow(shift, now) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{Error: attendance.ErrOutsideWindow.Error()})
	}

	existing, err := h.todaysRecord(shift, userID, date)
	if err != nil {
		log.Printf("❌ Error consultando asistencia: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "no se pudo registrar el evento, intente nuevamente"})
	}

	action, err := attendance.Decide(existing, event)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{Error: err.Error()})
	}

	if err := h.apply(shift, action, userID, date, now); err != nil {
		log.Printf("❌ Error registrando asistencia: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "no se pudo registrar el evento, intente nuevamente"})
	}

	live.Broadcast(live.AttendanceEvent{
		UserID:     userID,
		Name:       userName,
		Shift:      string(shift),
		Event:      string(event),
		RecordedAt: now,
	})

	log.Printf("✅ %s registrado: user=%s turno=%s", event, userID, shift)
	return c.Status(fiber.StatusOK).JSON(models.CheckResponse{
		Message:       fmt.Sprintf("%s registrado con éxito para el turno %s", event, shift),
		Shift:         string(shift),
		Event:         string(event),
		RecordedAt:    now.Format(time.RFC3339),
		SessionClosed: true,
	})
}

func (h *AttendanceHandler) todaysRecord(shift attendance.Shift, userID, date string) (*models.AttendanceRecord, error) {
	query := fmt.Sprintf(`SELECT user_id, date, check_in, check_out FROM %s WHERE user_id = ? AND date = ?`, shift.Table())

	var rec models.AttendanceRecord
	var d time.Time
	var checkIn, checkOut sql.NullTime
	err := h.db.QueryRow(query, userID, date).Scan(&rec.UserID, &d, &checkIn, &checkOut)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	rec.Date = d.Format(validation.DateLayout)
	if checkIn.Valid {
		t := checkIn.Time
		rec.CheckIn = &t
	}
	if checkOut.Valid {
		t := checkOut.Time
		rec.CheckOut = &t
	}
	return &rec, nil
}

// apply performs the single insert-or-update the decision resolved to.
// Los upserts preservan un valor ya presente (COALESCE) por si dos requests
// del mismo usuario compiten entre el select y la escritura.
func (h *AttendanceHandler) apply(shift attendance.Shift, action attendance.Action, userID, date string, now time.Time) error {
	table := shift.Table()
	switch action {
	case attendance.ActionInsertCheckIn:
		_, err := h.db.Exec(fmt.Sprintf(`
			INSERT INTO %s (user_id, date, check_in) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE check_in = COALESCE(check_in, VALUES(check_in))
		`, table), userID, date, now)
		return err
	case attendance.ActionInsertCheckOut:
		_, err := h.db.Exec(fmt.Sprintf(`
			INSERT INTO %s (user_id, date, check_out) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE check_out = COALESCE(check_out, VALUES(check_out))
		`, table), userID, date, now)
		return err
	case attendance.ActionSetCheckIn:
		_, err := h.db.Exec(fmt.Sprintf(`
			UPDATE %s SET check_in = ? WHERE user_id = ? AND date = ? AND check_in IS NULL
		`, table), now, userID, date)
		return err
	case attendance.ActionSetCheckOut:
		_, err := h.db.Exec(fmt.Sprintf(`
			UPDATE %s SET check_out = ? WHERE user_id = ? AND date = ? AND check_out IS NULL
		`, table), now, userID, date)
		return err
	}
	return fmt.Errorf("acción desconocida: %d", action)
}
