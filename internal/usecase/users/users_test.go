package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barberia-api/internal/domain/identity"
	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/infra/repository"
	"github.com/BruksfildServices01/barberia-api/internal/models"
	"github.com/BruksfildServices01/barberia-api/internal/testutil"
	"github.com/BruksfildServices01/barberia-api/internal/usecase/users"
)

func TestUsers(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	phone := "600000000"
	ana := testutil.CreateUser(t, db, models.User{Email: "ana@barberia.com", Name: "Ana", Phone: &phone, Active: true})
	testutil.CreateUser(t, db, models.User{Email: "luis@barberia.com", Name: "Luis", Active: true})

	changes := 0
	uc := users.New(repository.NewUserGormRepository(db), nil, func(context.Context) { changes++ })

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	t.Run("update replaces editable fields", func(t *testing.T) {
		got, err := uc.Update(ctx, ana.ID, users.UpdateInput{
			Name:   " Ana María ",
			Role:   "barbero",
			Active: false,
		})
		require.NoError(t, err)
		assert.Equal(t, "Ana María", got.Name)
		assert.Equal(t, string(identity.RoleBarber), got.Role)
		assert.False(t, got.Active)
		assert.Nil(t, got.Phone)
		assert.Equal(t, "ana@barberia.com", got.Email)
		assert.Equal(t, 1, changes)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := uc.Update(ctx, ana.ID, users.UpdateInput{Name: "A", Role: "jefe", Active: true})
		assert.True(t, httperr.IsBusiness(err, "invalid_role"), "got %v", err)

		got, err := uc.Get(ctx, ana.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana María", got.Name)
	})

	t.Run("update unknown user", func(t *testing.T) {
		_, err := uc.Update(ctx, 999, users.UpdateInput{Name: "X", Role: "cliente", Active: true})
		assert.ErrorIs(t, err, identity.ErrUserNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, uc.Delete(ctx, ana.ID))
		assert.ErrorIs(t, uc.Delete(ctx, ana.ID), identity.ErrUserNotFound)

		_, err := uc.Get(ctx, ana.ID)
		assert.ErrorIs(t, err, identity.ErrUserNotFound)
	})
}
