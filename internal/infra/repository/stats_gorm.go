package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberia-api/internal/domain/reporting"
	"github.com/BruksfildServices01/barberia-api/internal/models"
)

type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

func (r *StatsGormRepository) count(ctx context.Context, model any) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(model).Count(&n).Error
	return n, err
}

func (r *StatsGormRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.User{})
}

func (r *StatsGormRepository) CountServices(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Service{})
}

func (r *StatsGormRepository) CountAppointments(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Appointment{})
}

func (r *StatsGormRepository) CountAppointmentsByStatus(ctx context.Context) ([]reporting.StatusCount, error) {
	var rows []reporting.StatusCount
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("estado AS status, COUNT(*) AS total").
		Group("estado").
		Order("estado ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *StatsGormRepository) AppointmentTimes(ctx context.Context, w reporting.Window) ([]time.Time, error) {
	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if w.From != nil {
		q = q.Where("fecha_hora >= ?", *w.From)
	}
	if w.To != nil {
		q = q.Where("fecha_hora < ?", *w.To)
	}

	var times []time.Time
	if err := q.Order("fecha_hora ASC").Pluck("fecha_hora", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

var _ reporting.Repository = (*StatsGormRepository)(nil)
