package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", NewValidation("missing_email", ""), KindValidation},
		{"wrapped conflict", fmt.Errorf("create: %w", NewConflict("slot_occupied", "")), KindConflict},
		{"gorm not found", fmt.Errorf("get: %w", gorm.ErrRecordNotFound), KindNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, KindConflict},
		{"plain error", errors.New("connection reset"), KindInternal},
		{"nil", nil, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("wrap: %w", ErrBusiness("invalid_state"))
	assert.True(t, IsBusiness(err, "invalid_state"))
	assert.False(t, IsBusiness(err, "slot_occupied"))
	assert.False(t, IsBusiness(errors.New("invalid_state"), "invalid_state"))
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", NewValidation("invalid_email", "El email no es válido."), http.StatusBadRequest, "invalid_email", "El email no es válido."},
		{"unauthorized", NewUnauthorized("invalid_credentials", ""), http.StatusUnauthorized, "invalid_credentials", "Credenciales incorrectas."},
		{"forbidden", NewForbidden("role_not_allowed", ""), http.StatusForbidden, "role_not_allowed", defaultMessages[KindForbidden]},
		{"not found", NewNotFound("appointment_not_found", "Cita no encontrada."), http.StatusNotFound, "appointment_not_found", "Cita no encontrada."},
		{"raw gorm not found", gorm.ErrRecordNotFound, http.StatusNotFound, "not_found", defaultMessages[KindNotFound]},
		{"conflict", NewConflict("slot_occupied", ""), http.StatusConflict, "slot_occupied", defaultMessages[KindConflict]},
		{"internal hides detail", errors.New("pq: password authentication failed"), http.StatusInternalServerError, "internal_error", defaultMessages[KindInternal]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Respond(c, tt.err)

			assert.True(t, c.IsAborted())
			assert.Equal(t, tt.wantStatus, w.Code)
			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Message)
			assert.NotContains(t, w.Body.String(), "password authentication")
		})
	}
}

func TestUnauthorizedAbortsChain(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	reached := false
	r.GET("/me", func(c *gin.Context) {
		Unauthorized(c, "user_not_in_context", "Usuario no identificado.")
	}, func(c *gin.Context) {
		reached = true
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user_not_in_context", body.Code)
}
