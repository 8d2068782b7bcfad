package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/models"
)

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Confirmada ")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseStatus("archivada")
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestOnlyCancelledReleasesTheSlot(t *testing.T) {
	for _, s := range AllStatuses {
		assert.Equal(t, s != StatusCancelled, s.IsActive(), string(s))
	}
}

func TestInitialStatusIsPending(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus())
}

func TestCancelTransitions(t *testing.T) {
	tests := []struct {
		from    Status
		wantErr bool
	}{
		{StatusPending, false},
		{StatusConfirmed, false},
		{StatusCancelled, true},
		{StatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			ap := &models.Appointment{Status: string(tt.from)}
			err := Cancel(ap)
			if tt.wantErr {
				assert.True(t, httperr.IsBusiness(err, "invalid_state"))
				assert.Equal(t, string(tt.from), ap.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, string(StatusCancelled), ap.Status)
		})
	}
}

func TestCompleteTransitions(t *testing.T) {
	tests := []struct {
		from    Status
		wantErr bool
	}{
		{StatusPending, false},
		{StatusConfirmed, false},
		{StatusCancelled, true},
		{StatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			ap := &models.Appointment{Status: string(tt.from)}
			err := Complete(ap)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, string(StatusCompleted), ap.Status)
		})
	}
}
