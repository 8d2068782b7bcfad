package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/models"
)

var (
	ErrNotFound     = httperr.NewNotFound("appointment_not_found", "Cita no encontrada.")
	ErrSlotOccupied = httperr.NewConflict("slot_occupied", "El horario ya está ocupado.")
)

type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Status Status
	UserID uint
}

type Repository interface {
	// WithTx runs fn against a repository bound to one transaction.
	WithTx(ctx context.Context, fn func(tx Repository) error) error

	// -------- Slot occupancy --------
	CountActiveAt(
		ctx context.Context,
		slot time.Time,
		excludeID uint,
	) (int64, error)

	// -------- Appointment --------
	Create(ctx context.Context, ap *models.Appointment) error
	Save(ctx context.Context, ap *models.Appointment) error

	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	GetForUpdate(ctx context.Context, id uint) (*models.Appointment, error)

	List(ctx context.Context, f ListFilter) ([]models.Appointment, error)

	Delete(ctx context.Context, id uint) (bool, error)
}

// EnsureSlotFree fails with ErrSlotOccupied when another active appointment
// already holds slot. excludeID is skipped so an appointment never collides
// with itself; pass 0 on create.
func EnsureSlotFree(
	ctx context.Context,
	repo Repository,
	slot time.Time,
	excludeID uint,
) error {
	n, err := repo.CountActiveAt(ctx, slot, excludeID)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrSlotOccupied
	}
	return nil
}
