package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barberia-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barberia-api/internal/dto"
	"github.com/BruksfildServices01/barberia-api/internal/models"
)

type CancelAppointment struct {
	deps Deps
}

func NewCancelAppointment(deps Deps) *CancelAppointment {
	return &CancelAppointment{deps: deps}
}

// Execute frees the slot. Completed or already cancelled appointments fail
// with invalid_state.
func (uc *CancelAppointment) Execute(ctx context.Context, id uint) (*dto.AppointmentDTO, error) {
	ap, err := transition(ctx, uc.deps.Repo, id, domain.Cancel)
	if err != nil {
		return nil, err
	}

	uc.deps.committed(ctx, "cancelled", ap)
	return uc.deps.load(ctx, id)
}

// transition applies a status change under a row lock.
func transition(
	ctx context.Context,
	repo domain.Repository,
	id uint,
	apply func(*models.Appointment) error,
) (*models.Appointment, error) {

	var ap *models.Appointment
	err := repo.WithTx(ctx, func(tx domain.Repository) error {
		current, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(current); err != nil {
			return err
		}
		ap = current
		return tx.Save(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return ap, nil
}
