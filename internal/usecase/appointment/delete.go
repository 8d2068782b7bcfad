package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barberia-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barberia-api/internal/models"
)

type DeleteAppointment struct {
	deps Deps
}

func NewDeleteAppointment(deps Deps) *DeleteAppointment {
	return &DeleteAppointment{deps: deps}
}

// Execute removes the appointment whatever its status.
func (uc *DeleteAppointment) Execute(ctx context.Context, id uint) error {
	removed, err := uc.deps.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFound
	}

	uc.deps.committed(ctx, "deleted", &models.Appointment{ID: id})
	return nil
}
