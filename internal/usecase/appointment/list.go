package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/barberia-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barberia-api/internal/dto"
	"github.com/BruksfildServices01/barberia-api/internal/httperr"
)

// ListAppointmentsInput narrows the listing. Date (YYYY-MM-DD) wins over
// Month (YYYY-MM) when both are given.
type ListAppointmentsInput struct {
	Date   string
	Month  string
	Status string
	UserID uint
}

type ListAppointments struct {
	deps Deps
}

func NewListAppointments(deps Deps) *ListAppointments {
	return &ListAppointments{deps: deps}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]dto.AppointmentDTO, error) {

	var f domain.ListFilter
	f.UserID = in.UserID

	switch {
	case strings.TrimSpace(in.Date) != "":
		from, to, err := domain.ParseDay(in.Date, uc.deps.location())
		if err != nil {
			return nil, err
		}
		f.From, f.To = &from, &to

	case strings.TrimSpace(in.Month) != "":
		from, to, err := domain.ParseMonth(in.Month, uc.deps.location())
		if err != nil {
			return nil, err
		}
		f.From, f.To = &from, &to
	}

	if in.Status != "" {
		status, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Status = status
	}

	apps, err := uc.deps.Repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(apps), nil
}

type GetAppointment struct {
	deps Deps
}

func NewGetAppointment(deps Deps) *GetAppointment {
	return &GetAppointment{deps: deps}
}

func (uc *GetAppointment) Execute(ctx context.Context, id uint) (*dto.AppointmentDTO, error) {
	if id == 0 {
		return nil, httperr.NewValidation("invalid_id", "Identificador no válido.")
	}
	return uc.deps.load(ctx, id)
}
