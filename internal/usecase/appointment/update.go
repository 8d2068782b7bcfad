package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barberia-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barberia-api/internal/dto"
	"github.com/BruksfildServices01/barberia-api/internal/models"
)

// UpdateAppointmentInput replaces every editable field. Notes left nil are
// cleared.
type UpdateAppointmentInput struct {
	UserID      uint
	ServiceID   uint
	ScheduledAt string
	Status      string
	Notes       *string
}

type UpdateAppointment struct {
	deps Deps
}

func NewUpdateAppointment(deps Deps) *UpdateAppointment {
	return &UpdateAppointment{deps: deps}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uint,
	in UpdateAppointmentInput,
) (*dto.AppointmentDTO, error) {

	slot, err := domain.ParseSlot(in.ScheduledAt, uc.deps.location())
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	var ap *models.Appointment
	err = uc.deps.Repo.WithTx(ctx, func(tx domain.Repository) error {
		current, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		// Every update carries a timestamp, so the slot is always re-checked,
		// whatever the new status.
		if err := domain.EnsureSlotFree(ctx, tx, slot, id); err != nil {
			return err
		}

		current.UserID = in.UserID
		current.ServiceID = in.ServiceID
		current.ScheduledAt = slot
		current.Status = string(status)
		current.Notes = in.Notes

		ap = current
		return tx.Save(ctx, current)
	})
	if err != nil {
		return nil, uc.deps.rejected(ctx, err, in.UserID, slot)
	}

	uc.deps.committed(ctx, "updated", ap)

	return uc.deps.load(ctx, ap.ID)
}
