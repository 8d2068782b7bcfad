package identity

import (
	"context"

	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/models"
)

var (
	ErrUserNotFound = httperr.NewNotFound("user_not_found", "Usuario no encontrado.")
	ErrEmailTaken   = httperr.NewConflict("email_taken", "El email ya está registrado.")
)

// UserChanges is the editable part of a user. Email and password are not
// editable through it.
type UserChanges struct {
	Name   string
	Phone  *string
	Role   Role
	Active bool
}

type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *models.User) error

	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)

	Update(ctx context.Context, id uint, ch UserChanges) error
	Delete(ctx context.Context, id uint) (bool, error)
}
