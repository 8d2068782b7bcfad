package identity_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barberia-api/internal/auth"
	domain "github.com/BruksfildServices01/barberia-api/internal/domain/identity"
	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/infra/repository"
	"github.com/BruksfildServices01/barberia-api/internal/testutil"
	"github.com/BruksfildServices01/barberia-api/internal/usecase/identity"
)

func setup(t *testing.T) (*identity.Register, *identity.Login, *auth.Tokens) {
	t.Helper()
	users := repository.NewUserGormRepository(testutil.NewDB(t))
	tokens := auth.NewTokens("test-secret", time.Hour)
	return identity.NewRegister(users, nil, bcrypt.MinCost, nil), identity.NewLogin(users, tokens), tokens
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	register, _, _ := setup(t)

	u, err := register.Execute(ctx, identity.RegisterInput{
		Name:     "Ana",
		Email:    " Ana@Barberia.com ",
		Password: "secreto",
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "ana@barberia.com", u.Email)
	assert.Equal(t, string(domain.RoleCustomer), u.Role)
	assert.True(t, u.Active)
	assert.Nil(t, u.Phone)
	assert.NotEqual(t, "secreto", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreto")))
	assert.False(t, u.RegisteredAt.IsZero())

	tests := []struct {
		name string
		in   identity.RegisterInput
		kind httperr.Kind
		code string
	}{
		{"password over bcrypt limit", identity.RegisterInput{Name: "B", Email: "b@x.com", Password: strings.Repeat("a", 73)}, httperr.KindValidation, "password_too_long"},
		{"multibyte password over bcrypt limit", identity.RegisterInput{Name: "B", Email: "b@x.com", Password: strings.Repeat("ñ", 37)}, httperr.KindValidation, "password_too_long"},
		{"unknown role", identity.RegisterInput{Name: "B", Email: "b@x.com", Password: "secreto", Role: "root"}, httperr.KindValidation, "invalid_role"},
		{"administrator role", identity.RegisterInput{Name: "B", Email: "b@x.com", Password: "secreto", Role: "Administrador"}, httperr.KindForbidden, "role_not_allowed"},
		{"barber role", identity.RegisterInput{Name: "B", Email: "b@x.com", Password: "secreto", Role: "barbero"}, httperr.KindForbidden, "role_not_allowed"},
		{"duplicate email", identity.RegisterInput{Name: "A2", Email: "ana@barberia.com", Password: "secreto"}, httperr.KindConflict, "email_taken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := register.Execute(ctx, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.kind, httperr.KindOf(err))
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
		})
	}

	t.Run("password at bcrypt limit", func(t *testing.T) {
		_, err := register.Execute(ctx, identity.RegisterInput{Name: "C", Email: "c@x.com", Password: strings.Repeat("a", 72)})
		assert.NoError(t, err)
	})

	t.Run("explicit cliente role and phone", func(t *testing.T) {
		phone := "600111222"
		u, err := register.Execute(ctx, identity.RegisterInput{
			Name: "Luis", Email: "luis@barberia.com", Password: "secreto", Role: "Cliente", Phone: &phone,
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.RoleCustomer), u.Role)
		require.NotNil(t, u.Phone)
		assert.Equal(t, phone, *u.Phone)
	})
}

func TestBootstrapAdmin(t *testing.T) {
	ctx := context.Background()
	register, login, _ := setup(t)

	created, err := register.Bootstrap(ctx, identity.RegisterInput{Name: "Jefe", Email: "Jefe@Barberia.com", Password: "secreto"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = register.Bootstrap(ctx, identity.RegisterInput{Name: "Jefe", Email: "jefe@barberia.com", Password: "otra-clave"})
	require.NoError(t, err)
	assert.False(t, created)

	res, err := login.Execute(ctx, identity.LoginInput{Email: "jefe@barberia.com", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleAdmin), res.User.Role)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	register, login, tokens := setup(t)

	u, err := register.Execute(ctx, identity.RegisterInput{Name: "Ana", Email: "ana@barberia.com", Password: "secreto"})
	require.NoError(t, err)

	t.Run("success returns a token for the user", func(t *testing.T) {
		res, err := login.Execute(ctx, identity.LoginInput{Email: "ANA@barberia.com", Password: "secreto"})
		require.NoError(t, err)
		assert.Equal(t, u.ID, res.User.ID)

		id, err := tokens.Parse(res.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, id)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, wrong := login.Execute(ctx, identity.LoginInput{Email: "ana@barberia.com", Password: "otra-cosa"})
		_, unknown := login.Execute(ctx, identity.LoginInput{Email: "nadie@barberia.com", Password: "secreto"})

		require.Error(t, wrong)
		require.Error(t, unknown)
		assert.Equal(t, wrong, unknown)
		assert.Equal(t, httperr.KindUnauthorized, httperr.KindOf(wrong))
	})
}
