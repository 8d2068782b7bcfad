package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barberia-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barberia-api/internal/dto"
)

type CompleteAppointment struct {
	deps Deps
}

func NewCompleteAppointment(deps Deps) *CompleteAppointment {
	return &CompleteAppointment{deps: deps}
}

func (uc *CompleteAppointment) Execute(ctx context.Context, id uint) (*dto.AppointmentDTO, error) {
	ap, err := transition(ctx, uc.deps.Repo, id, domain.Complete)
	if err != nil {
		return nil, err
	}

	uc.deps.committed(ctx, "completed", ap)
	return uc.deps.load(ctx, id)
}
