package identity

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/barberia-api/internal/domain/identity"
	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/models"
	"github.com/BruksfildServices01/barberia-api/internal/validators"
)

// ErrInvalidCredentials is returned for every failed login, whatever the
// cause, so callers cannot tell which emails exist.
var ErrInvalidCredentials = httperr.NewUnauthorized("invalid_credentials", "Credenciales incorrectas.")

type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User  *models.User
	Token string
}

type Login struct {
	users  domain.UserRepository
	tokens TokenIssuer
}

// NewLogin builds the login use case. With a nil issuer no token is
// returned.
func NewLogin(users domain.UserRepository, tokens TokenIssuer) *Login {
	return &Login{users: users, tokens: tokens}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, validators.NormalizeEmail(in.Email))
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}

	res := &LoginResult{User: user}
	if uc.tokens != nil {
		token, err := uc.tokens.Issue(user)
		if err != nil {
			return nil, err
		}
		res.Token = token
	}
	return res, nil
}
