package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barberia-api/internal/domain/appointment"
)

type Availability struct {
	Slot      time.Time
	Available bool
}

type CheckAvailability struct {
	deps Deps
}

func NewCheckAvailability(deps Deps) *CheckAvailability {
	return &CheckAvailability{deps: deps}
}

// Execute reports whether no active appointment holds the slot. It never
// writes, so the answer can be stale by the time a create arrives.
func (uc *CheckAvailability) Execute(ctx context.Context, raw string) (*Availability, error) {
	slot, err := domain.ParseSlot(raw, uc.deps.location())
	if err != nil {
		return nil, err
	}

	n, err := uc.deps.Repo.CountActiveAt(ctx, slot, 0)
	if err != nil {
		return nil, err
	}

	return &Availability{Slot: slot, Available: n == 0}, nil
}
