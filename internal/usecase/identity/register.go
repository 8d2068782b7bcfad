package identity

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barberia-api/internal/audit"
	domain "github.com/BruksfildServices01/barberia-api/internal/domain/identity"
	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/models"
	"github.com/BruksfildServices01/barberia-api/internal/validators"
)

var (
	ErrPasswordTooLong = httperr.NewValidation("password_too_long", "La contraseña no puede superar los 72 bytes.")

	// ErrRoleNotSelfAssignable: staff roles are granted by an administrator
	// through the user update, never at sign-up.
	ErrRoleNotSelfAssignable = httperr.NewForbidden("role_not_allowed", "Solo se pueden registrar clientes.")
)

// ======================================================
// INPUT
// ======================================================

// RegisterInput arrives validated for presence and format; Register applies
// the rules that depend on the store and on bcrypt.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    *string
	Role     string
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	users      domain.UserRepository
	audit      *audit.Dispatcher
	bcryptCost int
	onChange   func(context.Context)
}

// NewRegister builds the registration use case. onChange may be nil.
func NewRegister(
	users domain.UserRepository,
	audit *audit.Dispatcher,
	bcryptCost int,
	onChange func(context.Context),
) *Register {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Register{
		users:      users,
		audit:      audit,
		bcryptCost: bcryptCost,
		onChange:   onChange,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute is public sign-up. Only the cliente role can be requested.
func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.User, error) {
	role := domain.DefaultRole
	if strings.TrimSpace(in.Role) != "" {
		r, ok := domain.ParseRole(in.Role)
		if !ok {
			return nil, httperr.NewValidation("invalid_role", "Rol no válido.")
		}
		if r != domain.RoleCustomer {
			return nil, ErrRoleNotSelfAssignable
		}
		role = r
	}

	user, err := uc.create(ctx, in, role)
	if err != nil {
		return nil, err
	}

	uc.written(ctx, "user_registered", user)
	return user, nil
}

// Bootstrap creates the first administrator. It reports false, without
// error, when the email is already registered.
func (uc *Register) Bootstrap(ctx context.Context, in RegisterInput) (bool, error) {
	user, err := uc.create(ctx, in, domain.RoleAdmin)
	if errors.Is(err, domain.ErrEmailTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	uc.written(ctx, "admin_bootstrapped", user)
	return true, nil
}

func (uc *Register) create(ctx context.Context, in RegisterInput, role domain.Role) (*models.User, error) {

	// --------------------------------------------------
	// 1️⃣ Input
	// --------------------------------------------------
	name := strings.TrimSpace(in.Name)
	email := validators.NormalizeEmail(in.Email)

	if len(in.Password) > validators.MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	// --------------------------------------------------
	// 2️⃣ Unique email
	// --------------------------------------------------
	exists, err := uc.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	// --------------------------------------------------
	// 3️⃣ Hash + insert
	// --------------------------------------------------
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}

	phone := in.Phone
	if phone != nil && strings.TrimSpace(*phone) == "" {
		phone = nil
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Phone:        phone,
		Role:         string(role),
		Active:       true,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *Register) written(ctx context.Context, action string, user *models.User) {
	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   action,
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"rol": user.Role},
	})
	if uc.onChange != nil {
		uc.onChange(ctx)
	}
}
