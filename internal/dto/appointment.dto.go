package dto

import (
	"time"

	"github.com/BruksfildServices01/barberia-api/internal/models"
)

// AppointmentDTO is an appointment enriched with its customer and service.
type AppointmentDTO struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"usuario_id"`
	ServiceID   uint      `json:"servicio_id"`
	ScheduledAt time.Time `json:"fecha_hora"`
	Status      string    `json:"estado"`
	Notes       *string   `json:"notas"`

	UserName     string   `json:"usuario_nombre,omitempty"`
	UserEmail    string   `json:"usuario_email,omitempty"`
	ServiceName  string   `json:"servicio_nombre,omitempty"`
	ServicePrice *float64 `json:"servicio_precio,omitempty"`
}

func FromAppointment(ap models.Appointment) AppointmentDTO {
	out := AppointmentDTO{
		ID:          ap.ID,
		UserID:      ap.UserID,
		ServiceID:   ap.ServiceID,
		ScheduledAt: ap.ScheduledAt,
		Status:      ap.Status,
		Notes:       ap.Notes,
	}
	if ap.User != nil {
		out.UserName = ap.User.Name
		out.UserEmail = ap.User.Email
	}
	if ap.Service != nil {
		price := ap.Service.Price
		out.ServiceName = ap.Service.Name
		out.ServicePrice = &price
	}
	return out
}

func FromAppointments(aps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
