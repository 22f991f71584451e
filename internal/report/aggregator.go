package report

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/yourorg/asistenciapp/internal/attendance"
	"github.com/yourorg/asistenciapp/internal/cache"
	"github.com/yourorg/asistenciapp/internal/models"
	"github.com/yourorg/asistenciapp/internal/validation"
)

// ============================================================================
// AGREGADOR DE ASISTENCIA
// ============================================================================
// Junta, para una fecha o un rango, el padrón completo de empleados con las
// filas de mañana y tarde de cada día. Siempre produce una fila por
// (empleado, fecha), con turnos vacíos cuando no hubo registro: la ausencia
// se marca en la vista, no se omite la fila.

const rosterCacheKey = "roster"

// Aggregator reads users and both shift tables to build the dashboard view.
type Aggregator struct {
	db     *sql.DB
	roster *cache.Cache
}

func NewAggregator(db *sql.DB) *Aggregator {
	return &Aggregator{
		db:     db,
		roster: cache.New(time.Minute, 5*time.Minute),
	}
}

// Close releases the roster cache cleanup goroutine.
func (a *Aggregator) Close() {
	a.roster.Stop()
}

// InvalidateRoster fuerza una relectura del padrón (tras un alta de empleado).
func (a *Aggregator) InvalidateRoster() {
	a.roster.Delete(rosterCacheKey)
}

// Roster returns every employee ordered by name, cached briefly.
func (a *Aggregator) Roster(ctx context.Context) ([]models.EmployeeDTO, error) {
	if v, found := a.roster.Get(rosterCacheKey); found {
		if employees, ok := v.([]models.EmployeeDTO); ok {
			return employees, nil
		}
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, name, dni, COALESCE(branch, '')
		FROM users
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("consultar padrón: %w", err)
	}
	defer rows.Close()

	employees := []models.EmployeeDTO{}
	for rows.Next() {
		var e models.EmployeeDTO
		var dni sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &dni, &e.Branch); err != nil {
			return nil, err
		}
		e.DNI = dni.String
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	a.roster.Set(rosterCacheKey, employees)
	return employees, nil
}

// DatesBetween enumerates every calendar date in [start, end] inclusive as
// YYYY-MM-DD strings. Cruza meses y años sin casos especiales: [ene 30,
// feb 2] produce exactamente 4 fechas.
func DatesBetween(start, end time.Time) []string {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(validation.DateLayout))
	}
	return dates
}

// fetchShiftDay reads one shift table for one date, keyed by user id.
// A lo sumo una fila por usuario gracias a UNIQUE(user_id, date).
func (a *Aggregator) fetchShiftDay(ctx context.Context, shift attendance.Shift, date string) (map[string]models.ShiftTimes, error) {
	query := fmt.Sprintf(`SELECT user_id, check_in, check_out FROM %s WHERE date = ?`, shift.Table())
	rows, err := a.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("consultar %s (%s): %w", shift.Table(), date, err)
	}
	defer rows.Close()

	out := make(map[string]models.ShiftTimes)
	for rows.Next() {
		var userID string
		var checkIn, checkOut sql.NullTime
		if err := rows.Scan(&userID, &checkIn, &checkOut); err != nil {
			return nil, err
		}
		st := models.ShiftTimes{}
		if checkIn.Valid {
			t := checkIn.Time
			st.CheckIn = &t
		}
		if checkOut.Valid {
			t := checkOut.Time
			st.CheckOut = &t
		}
		out[userID] = st
	}
	return out, rows.Err()
}

// Range aggregates every date in [start, end]. Por cada fecha, las tablas de
// mañana y tarde se consultan en paralelo y se esperan ambas antes de seguir;
// los días se recorren secuencialmente como en la carga original del panel.
func (a *Aggregator) Range(ctx context.Context, start, end time.Time) (*models.ReportResponse, error) {
	employees, err := a.Roster(ctx)
	if err != nil {
		return nil, err
	}

	dates := DatesBetween(start, end)
	records := make([]models.AggregatedDayRecord, 0, len(dates)*len(employees))

	for _, date := range dates {
		var (
			wg                 sync.WaitGroup
			morning, afternoon map[string]models.ShiftTimes
			errMorning, errAft error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			morning, errMorning = a.fetchShiftDay(ctx, attendance.ShiftMorning, date)
		}()
		go func() {
			defer wg.Done()
			afternoon, errAft = a.fetchShiftDay(ctx, attendance.ShiftAfternoon, date)
		}()
		wg.Wait()
		if errMorning != nil {
			return nil, errMorning
		}
		if errAft != nil {
			return nil, errAft
		}

		for _, emp := range employees {
			rec := models.AggregatedDayRecord{
				Date:   date,
				UserID: emp.ID,
				Name:   emp.Name,
			}
			if st, ok := morning[emp.ID]; ok {
				s := st
				rec.Morning = &s
			}
			if st, ok := afternoon[emp.ID]; ok {
				s := st
				rec.Afternoon = &s
			}
			records = append(records, rec)
		}
	}

	return &models.ReportResponse{
		From:      dates[0],
		To:        dates[len(dates)-1],
		Records:   records,
		Employees: employees,
	}, nil
}

// Day aggregates a single date and attaches the dashboard counters.
func (a *Aggregator) Day(ctx context.Context, date time.Time) (*models.ReportResponse, error) {
	resp, err := a.Range(ctx, date, date)
	if err != nil {
		return nil, err
	}
	resp.Stats = computeStats(resp.Records)
	return resp, nil
}

func computeStats(records []models.AggregatedDayRecord) *models.DayStats {
	stats := &models.DayStats{TotalEmployees: len(records)}
	for _, r := range records {
		if r.Morning != nil && r.Morning.CheckIn != nil {
			stats.MorningPresent++
		}
		if r.Afternoon != nil && r.Afternoon.CheckIn != nil {
			stats.AfternoonPresent++
		}
	}
	return stats
}
