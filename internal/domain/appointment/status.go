package appointment

import (
	"strings"

	"github.com/BruksfildServices01/barberia-api/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pendiente"
	StatusConfirmed Status = "confirmada"
	StatusCancelled Status = "cancelada"
	StatusCompleted Status = "completada"
)

var AllStatuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsActive reports whether an appointment in this status occupies its slot.
func (s Status) IsActive() bool {
	return s != StatusCancelled
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", httperr.NewValidation("invalid_status", "Estado de cita no válido.")
	}
	return s, nil
}

// ===============================
// Validations
// ===============================

func InitialStatus() Status {
	return StatusPending
}

// CanCancel: anything still open can be cancelled.
func CanCancel(current Status) error {
	if current == StatusCancelled || current == StatusCompleted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
