package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barberia-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barberia-api/internal/dto"
	"github.com/BruksfildServices01/barberia-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID      uint
	ServiceID   uint
	ScheduledAt string
	Notes       *string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	deps Deps
}

func NewCreateAppointment(deps Deps) *CreateAppointment {
	return &CreateAppointment{deps: deps}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*dto.AppointmentDTO, error) {

	// --------------------------------------------------
	// 1️⃣ Slot
	// --------------------------------------------------
	slot, err := domain.ParseSlot(in.ScheduledAt, uc.deps.location())
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		UserID:      in.UserID,
		ServiceID:   in.ServiceID,
		ScheduledAt: slot,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	// --------------------------------------------------
	// 2️⃣ Conflict check + insert, one transaction
	// --------------------------------------------------
	err = uc.deps.Repo.WithTx(ctx, func(tx domain.Repository) error {
		if err := domain.EnsureSlotFree(ctx, tx, slot, 0); err != nil {
			return err
		}
		return tx.Create(ctx, ap)
	})
	if err != nil {
		return nil, uc.deps.rejected(ctx, err, in.UserID, slot)
	}

	// --------------------------------------------------
	// 3️⃣ Audit + cache
	// --------------------------------------------------
	uc.deps.committed(ctx, "created", ap)

	return uc.deps.load(ctx, ap.ID)
}
