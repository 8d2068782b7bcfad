package reporting

import (
	"context"
	"time"
)

type StatusCount struct {
	Status string `json:"estado"`
	Total  int64  `json:"total"`
}

type PeriodCount struct {
	Period string `json:"periodo"`
	Total  int64  `json:"total"`
}

type Window struct {
	From *time.Time
	To   *time.Time
}

type Repository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountServices(ctx context.Context) (int64, error)
	CountAppointments(ctx context.Context) (int64, error)
	CountAppointmentsByStatus(ctx context.Context) ([]StatusCount, error)
	AppointmentTimes(ctx context.Context, w Window) ([]time.Time, error)
}
