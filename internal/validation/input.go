package validation

import (
	"errors"
	"time"
	"unicode"
)

// DateLayout is the wire format for calendar dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

var (
	ErrEmptyIdentifier = errors.New("identificador vacío")
	ErrInvalidDate     = errors.New("fecha inválida: se espera YYYY-MM-DD")
	ErrInvalidRange    = errors.New("rango inválido: desde posterior a hasta")
	ErrRangeTooLarge   = errors.New("rango demasiado extenso")
)

// maxRangeDays acota el costo del agregador: una consulta por día por turno.
const maxRangeDays = 92

// IsNumeric reports whether s is a non-empty all-digit string. Decide la rama
// de login: numérico ⇒ empleado por DNI, resto ⇒ admin por nombre.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ParseDate validates a YYYY-MM-DD string and returns it at midnight local.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseDateRange validates an inclusive [from, to] pair.
func ParseDateRange(from, to string) (time.Time, time.Time, error) {
	start, err := ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return time.Time{}, time.Time{}, ErrRangeTooLarge
	}
	return start, end, nil
}
