package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barberia-api/internal/httperr"
)

// SlotLayout is the canonical textual form of a slot, as clients send it.
const SlotLayout = "2006-01-02 15:04:05"

var naiveLayouts = []string{
	SlotLayout,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseSlot turns a client timestamp into a slot. Values without an offset
// are read in loc; every slot is stored in UTC at second precision so that
// two requests for the same wall-clock time compare equal.
func ParseSlot(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, httperr.NewValidation("missing_fecha_hora", "La fecha y hora son obligatorias.")
	}
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return NormalizeSlot(t), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return NormalizeSlot(t), nil
		}
	}

	return time.Time{}, httperr.NewValidation("invalid_fecha_hora", "Fecha y hora no válidas.")
}

func NormalizeSlot(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// ParseDay reads a YYYY-MM-DD day in loc and returns its UTC bounds.
func ParseDay(raw string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, time.Time{}, httperr.NewValidation("invalid_fecha", "Fecha no válida.")
	}
	return d.UTC(), d.AddDate(0, 0, 1).UTC(), nil
}

// ParseMonth reads a YYYY-MM month in loc and returns its UTC bounds.
func ParseMonth(raw string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	m, err := time.ParseInLocation("2006-01", strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, time.Time{}, httperr.NewValidation("invalid_mes", "Mes no válido.")
	}
	return m.UTC(), m.AddDate(0, 1, 0).UTC(), nil
}
