package appointment_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barberia-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/infra/repository"
	"github.com/BruksfildServices01/barberia-api/internal/metrics"
	"github.com/BruksfildServices01/barberia-api/internal/models"
	dbtest "github.com/BruksfildServices01/barberia-api/internal/testutil"
	"github.com/BruksfildServices01/barberia-api/internal/usecase/appointment"
)

type fixture struct {
	deps    appointment.Deps
	user    models.User
	other   models.User
	service models.Service
	changes int
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.NewDB(t)

	f := &fixture{
		user:    dbtest.CreateUser(t, db, models.User{Email: "ana@barberia.com", Name: "Ana"}),
		other:   dbtest.CreateUser(t, db, models.User{Email: "luis@barberia.com", Name: "Luis"}),
		service: dbtest.CreateService(t, db, models.Service{Name: "Corte", Price: 15}),
	}
	f.deps = appointment.Deps{
		Repo:     repository.NewAppointmentGormRepository(db),
		Metrics:  metrics.New("test"),
		Location: time.UTC,
		OnChange: func(context.Context) { f.changes++ },
	}
	return f
}

func (f *fixture) create(t *testing.T, slot string) uint {
	t.Helper()
	ap, err := appointment.NewCreateAppointment(f.deps).Execute(context.Background(), appointment.CreateAppointmentInput{
		UserID:      f.user.ID,
		ServiceID:   f.service.ID,
		ScheduledAt: slot,
	})
	require.NoError(t, err)
	return ap.ID
}

func (f *fixture) available(t *testing.T, slot string) bool {
	t.Helper()
	res, err := appointment.NewCheckAvailability(f.deps).Execute(context.Background(), slot)
	require.NoError(t, err)
	return res.Available
}

func ptr[T any](v T) *T { return &v }

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	create := appointment.NewCreateAppointment(f.deps)

	t.Run("new appointment is pending and enriched", func(t *testing.T) {
		ap, err := create.Execute(ctx, appointment.CreateAppointmentInput{
			UserID:      f.user.ID,
			ServiceID:   f.service.ID,
			ScheduledAt: "2024-06-01 10:00:00",
			Notes:       ptr("Sin máquina"),
		})
		require.NoError(t, err)
		assert.Equal(t, "pendiente", ap.Status)
		assert.Equal(t, "Ana", ap.UserName)
		assert.Equal(t, "Corte", ap.ServiceName)
		require.NotNil(t, ap.ServicePrice)
		assert.Equal(t, 15.0, *ap.ServicePrice)
		assert.True(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC).Equal(ap.ScheduledAt))
		assert.Equal(t, 1, f.changes)
	})

	t.Run("same instant in another notation conflicts", func(t *testing.T) {
		_, err := create.Execute(ctx, appointment.CreateAppointmentInput{
			UserID:      f.other.ID,
			ServiceID:   f.service.ID,
			ScheduledAt: "2024-06-01T10:00:00Z",
		})
		assert.ErrorIs(t, err, domain.ErrSlotOccupied)
		assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
		assert.Equal(t, 1.0, testutil.ToFloat64(f.deps.Metrics.AppointmentConflicts))
		assert.Equal(t, 1, f.changes)
		assert.False(t, f.available(t, "2024-06-01 10:00:00"))
	})

	t.Run("adjacent instants do not conflict", func(t *testing.T) {
		f.create(t, "2024-06-01 10:00:01")
		assert.True(t, f.available(t, "2024-06-01 10:00:02"))
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name string
			in   appointment.CreateAppointmentInput
			code string
		}{
			{"unknown user", appointment.CreateAppointmentInput{UserID: 999, ServiceID: f.service.ID, ScheduledAt: "2024-06-02 10:00"}, "invalid_reference"},
			{"unknown service", appointment.CreateAppointmentInput{UserID: f.user.ID, ServiceID: 999, ScheduledAt: "2024-06-02 10:00"}, "invalid_reference"},
			{"missing slot", appointment.CreateAppointmentInput{UserID: f.user.ID, ServiceID: f.service.ID}, "missing_fecha_hora"},
			{"bad slot", appointment.CreateAppointmentInput{UserID: f.user.ID, ServiceID: f.service.ID, ScheduledAt: "mañana"}, "invalid_fecha_hora"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := create.Execute(ctx, tt.in)
				assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
				assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
				assert.True(t, f.available(t, "2024-06-02 10:00:00"))
			})
		}
	})
}

func TestConcurrentCreatesKeepOneActivePerSlot(t *testing.T) {
	f := setup(t)
	create := appointment.NewCreateAppointment(f.deps)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := create.Execute(context.Background(), appointment.CreateAppointmentInput{
				UserID:      f.user.ID,
				ServiceID:   f.service.ID,
				ScheduledAt: "2024-06-01 18:00:00",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrSlotOccupied):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, conflicts)
}

func TestCancelFreesSlot(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	id := f.create(t, "2024-06-01 10:00:00")
	assert.False(t, f.available(t, "2024-06-01 10:00:00"))

	ap, err := appointment.NewCancelAppointment(f.deps).Execute(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "cancelada", ap.Status)
	assert.True(t, f.available(t, "2024-06-01 10:00:00"))

	f.create(t, "2024-06-01 10:00:00")

	_, err = appointment.NewCancelAppointment(f.deps).Execute(ctx, id)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = appointment.NewCancelAppointment(f.deps).Execute(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompleteAppointment(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	id := f.create(t, "2024-06-01 11:00:00")

	ap, err := appointment.NewCompleteAppointment(f.deps).Execute(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "completada", ap.Status)

	// A completed appointment still holds its slot.
	assert.False(t, f.available(t, "2024-06-01 11:00:00"))

	_, err = appointment.NewCompleteAppointment(f.deps).Execute(ctx, id)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	_, err = appointment.NewCancelAppointment(f.deps).Execute(ctx, id)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestUpdateAppointment(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	update := appointment.NewUpdateAppointment(f.deps)
	get := appointment.NewGetAppointment(f.deps)

	ten := f.create(t, "2024-06-01 10:00:00")
	eleven := f.create(t, "2024-06-01 11:00:00")

	full := func(slot, status string) appointment.UpdateAppointmentInput {
		return appointment.UpdateAppointmentInput{
			UserID:      f.other.ID,
			ServiceID:   f.service.ID,
			ScheduledAt: slot,
			Status:      status,
		}
	}

	t.Run("keeping its own slot is not a conflict", func(t *testing.T) {
		ap, err := update.Execute(ctx, ten, full("2024-06-01 10:00:00", "confirmada"))
		require.NoError(t, err)
		assert.Equal(t, "confirmada", ap.Status)
		assert.Equal(t, f.other.ID, ap.UserID)
		assert.Nil(t, ap.Notes)
	})

	t.Run("moving onto a taken slot fails without mutation", func(t *testing.T) {
		_, err := update.Execute(ctx, ten, full("2024-06-01 11:00:00", "pendiente"))
		assert.ErrorIs(t, err, domain.ErrSlotOccupied)

		ap, err := get.Execute(ctx, ten)
		require.NoError(t, err)
		assert.Equal(t, "confirmada", ap.Status)
		assert.True(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC).Equal(ap.ScheduledAt))
	})

	t.Run("cancelling onto a taken slot still conflicts", func(t *testing.T) {
		_, err := update.Execute(ctx, ten, full("2024-06-01 11:00:00", "cancelada"))
		assert.ErrorIs(t, err, domain.ErrSlotOccupied)
		assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))

		ap, err := get.Execute(ctx, ten)
		require.NoError(t, err)
		assert.Equal(t, "confirmada", ap.Status)
		assert.False(t, f.available(t, "2024-06-01 10:00:00"))
	})

	t.Run("cancelling in place frees the slot", func(t *testing.T) {
		ap, err := update.Execute(ctx, ten, full("2024-06-01 10:00:00", "cancelada"))
		require.NoError(t, err)
		assert.Equal(t, "cancelada", ap.Status)
		assert.True(t, f.available(t, "2024-06-01 10:00:00"))
	})

	t.Run("a cancelled appointment cannot move onto a taken slot", func(t *testing.T) {
		_, err := update.Execute(ctx, ten, full("2024-06-01 11:00:00", "confirmada"))
		assert.ErrorIs(t, err, domain.ErrSlotOccupied)
	})

	t.Run("moving to a free slot releases the old one", func(t *testing.T) {
		_, err := update.Execute(ctx, eleven, full("2024-06-01 12:00:00", "pendiente"))
		require.NoError(t, err)
		assert.True(t, f.available(t, "2024-06-01 11:00:00"))
		assert.False(t, f.available(t, "2024-06-01 12:00:00"))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := update.Execute(ctx, 999, full("2024-06-02 10:00:00", "pendiente"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := update.Execute(ctx, ten, full("2024-06-02 10:00:00", "archivada"))
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))

		_, err = update.Execute(ctx, ten, full("", "pendiente"))
		assert.True(t, httperr.IsBusiness(err, "missing_fecha_hora"))
	})

	t.Run("unknown service leaves the row untouched", func(t *testing.T) {
		in := full("2024-06-02 10:00:00", "pendiente")
		in.ServiceID = 999
		_, err := update.Execute(ctx, ten, in)
		assert.True(t, httperr.IsBusiness(err, "invalid_reference"), "got %v", err)

		ap, err := get.Execute(ctx, ten)
		require.NoError(t, err)
		assert.Equal(t, f.service.ID, ap.ServiceID)
		assert.True(t, f.available(t, "2024-06-02 10:00:00"))
	})
}

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	del := appointment.NewDeleteAppointment(f.deps)

	id := f.create(t, "2024-06-01 10:00:00")
	require.NoError(t, del.Execute(ctx, id))
	assert.True(t, f.available(t, "2024-06-01 10:00:00"))

	assert.ErrorIs(t, del.Execute(ctx, id), domain.ErrNotFound)

	_, err := appointment.NewGetAppointment(f.deps).Execute(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListAppointments(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	list := appointment.NewListAppointments(f.deps)

	f.create(t, "2024-06-01 10:00:00")
	f.create(t, "2024-06-01 12:00:00")
	f.create(t, "2024-06-02 09:00:00")
	july := f.create(t, "2024-07-01 09:00:00")
	_, err := appointment.NewCancelAppointment(f.deps).Execute(ctx, july)
	require.NoError(t, err)

	all, err := list.Execute(ctx, appointment.ListAppointmentsInput{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, july, all[0].ID)

	day, err := list.Execute(ctx, appointment.ListAppointmentsInput{Date: "2024-06-01"})
	require.NoError(t, err)
	assert.Len(t, day, 2)

	june, err := list.Execute(ctx, appointment.ListAppointmentsInput{Month: "2024-06"})
	require.NoError(t, err)
	assert.Len(t, june, 3)

	cancelled, err := list.Execute(ctx, appointment.ListAppointmentsInput{Status: "cancelada"})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, july, cancelled[0].ID)

	none, err := list.Execute(ctx, appointment.ListAppointmentsInput{UserID: f.other.ID})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = list.Execute(ctx, appointment.ListAppointmentsInput{Status: "borrada"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = list.Execute(ctx, appointment.ListAppointmentsInput{Date: "junio"})
	assert.True(t, httperr.IsBusiness(err, "invalid_fecha"))
}

func TestCheckAvailabilityUsesLocation(t *testing.T) {
	f := setup(t)
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	f.deps.Location = madrid

	f.create(t, "2024-06-01 10:00:00")

	res, err := appointment.NewCheckAvailability(f.deps).Execute(context.Background(), "2024-06-01T08:00:00Z")
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.True(t, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC).Equal(res.Slot))
}
