// Package users is user administration: everything but creation, which
// goes through registration.
package users

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barberia-api/internal/audit"
	"github.com/BruksfildServices01/barberia-api/internal/domain/identity"
	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/models"
)

// UpdateInput replaces the editable fields. Phone left nil is cleared.
type UpdateInput struct {
	Name   string
	Phone  *string
	Role   string
	Active bool
}

type Users struct {
	repo     identity.UserRepository
	audit    *audit.Dispatcher
	onChange func(context.Context)
}

func New(repo identity.UserRepository, audit *audit.Dispatcher, onChange func(context.Context)) *Users {
	return &Users{repo: repo, audit: audit, onChange: onChange}
}

func (u *Users) List(ctx context.Context) ([]models.User, error) {
	return u.repo.List(ctx)
}

func (u *Users) Get(ctx context.Context, id uint) (*models.User, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *Users) Update(ctx context.Context, id uint, in UpdateInput) (*models.User, error) {
	role, ok := identity.ParseRole(in.Role)
	if !ok {
		return nil, httperr.NewValidation("invalid_role", "Rol no válido.")
	}

	phone := in.Phone
	if phone != nil && strings.TrimSpace(*phone) == "" {
		phone = nil
	}

	if err := u.repo.Update(ctx, id, identity.UserChanges{
		Name:   strings.TrimSpace(in.Name),
		Phone:  phone,
		Role:   role,
		Active: in.Active,
	}); err != nil {
		return nil, err
	}

	u.written(ctx, "user_updated", id)
	return u.repo.GetByID(ctx, id)
}

func (u *Users) Delete(ctx context.Context, id uint) error {
	removed, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return identity.ErrUserNotFound
	}

	u.written(ctx, "user_deleted", id)
	return nil
}

func (u *Users) written(ctx context.Context, action string, id uint) {
	u.audit.Dispatch(audit.Event{Action: action, Entity: "user", EntityID: &id})
	if u.onChange != nil {
		u.onChange(ctx)
	}
}
