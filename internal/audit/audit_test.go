package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barberia-api/internal/models"
	"github.com/BruksfildServices01/barberia-api/internal/testutil"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *memorySink) Log(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func TestDispatcherDeliversBeforeClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink)

	for i := 0; i < 10; i++ {
		d.Dispatch(Event{Action: "appointment_created", Entity: "cita"})
	}
	d.Close()

	assert.Len(t, sink.events, 10)
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	sink := &memorySink{err: errors.New("db down")}
	d := NewDispatcher(sink)
	d.Dispatch(Event{Action: "x"})
	d.Dispatch(Event{Action: "y"})
	d.Close()

	assert.Len(t, sink.events, 2)
}

func TestDispatchAfterCloseIsIgnored(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink)
	d.Close()
	d.Close()

	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "late"}) })
	assert.Empty(t, sink.events)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close()
	})
}

func TestLoggerPersistsAndLists(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	l := New(db)

	userID, entityID := uint(1), uint(42)
	require.NoError(t, l.Log(ctx, Event{
		UserID:   &userID,
		Action:   "appointment_created",
		Entity:   "cita",
		EntityID: &entityID,
		Metadata: map[string]any{"fecha_hora": "2024-06-01 10:00:00"},
	}))
	require.NoError(t, l.Log(ctx, Event{Action: "user_registered", Entity: "usuario"}))

	var rows []models.AuditLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.JSONEq(t, `{"fecha_hora":"2024-06-01 10:00:00"}`, rows[0].Metadata)

	logs, total, err := l.List(ctx, ListFilter{Entity: "cita", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, "appointment_created", logs[0].Action)

	logs, total, err = l.List(ctx, ListFilter{Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 1)
}
