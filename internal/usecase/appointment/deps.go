package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barberia-api/internal/audit"
	domain "github.com/BruksfildServices01/barberia-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barberia-api/internal/dto"
	"github.com/BruksfildServices01/barberia-api/internal/logger"
	"github.com/BruksfildServices01/barberia-api/internal/metrics"
	"github.com/BruksfildServices01/barberia-api/internal/models"
)

// Deps is shared by every appointment use case. Only Repo is required.
type Deps struct {
	Repo     domain.Repository
	Audit    *audit.Dispatcher
	Metrics  *metrics.Metrics
	Location *time.Location

	// OnChange runs after every committed write.
	OnChange func(ctx context.Context)
}

func (d Deps) location() *time.Location {
	if d.Location == nil {
		return time.UTC
	}
	return d.Location
}

func (d Deps) load(ctx context.Context, id uint) (*dto.AppointmentDTO, error) {
	ap, err := d.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromAppointment(*ap)
	return &out, nil
}

func (d Deps) committed(ctx context.Context, action string, ap *models.Appointment) {
	d.Metrics.RecordAppointmentWrite(action)

	ev := audit.Event{
		Action:   "appointment_" + action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	}
	if ap.UserID != 0 {
		ev.UserID = &ap.UserID
		ev.Metadata = map[string]any{
			"fecha_hora": ap.ScheduledAt,
			"estado":     ap.Status,
		}
	}
	d.Audit.Dispatch(ev)

	if d.OnChange != nil {
		d.OnChange(ctx)
	}
}

// rejected records slot conflicts and passes err through.
func (d Deps) rejected(ctx context.Context, err error, userID uint, slot time.Time) error {
	if !errors.Is(err, domain.ErrSlotOccupied) {
		return err
	}

	d.Metrics.RecordConflict()
	logger.WithContext(ctx).Info("appointment slot taken", "fecha_hora", slot)

	d.Audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_conflict",
		Entity:   "appointment",
		Metadata: map[string]any{"fecha_hora": slot},
	})
	return err
}
