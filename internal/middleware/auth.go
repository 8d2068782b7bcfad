package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-api/internal/domain/identity"
	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/logger"
	"github.com/BruksfildServices01/barberia-api/internal/models"
)

const (
	ContextUser = "user"

	UserIDField  = "usuario_id"
	UserIDHeader = "X-User-ID"

	maxGateBody = 1 << 20
)

var (
	errMissingUserID = httperr.NewValidation("missing_usuario_id", "Debes indicar el usuario_id.")
	errInvalidUserID = httperr.NewValidation("invalid_usuario_id", "El usuario_id no es válido.")
	errInvalidToken  = httperr.NewUnauthorized("invalid_token", "Token no válido.")
	errInactiveUser  = httperr.NewForbidden("user_inactive", "El usuario está inactivo.")
	errRoleForbidden = httperr.NewForbidden("role_not_allowed", "No tienes permiso para esta operación.")
)

type TokenParser interface {
	Parse(raw string) (uint, error)
}

// RoleGate lets the request through only when the caller resolves to an
// active user holding one of roles. The caller id is read from the JSON
// body, the query string, the X-User-ID header and finally a bearer token,
// in that order. Nothing is remembered between requests.
func RoleGate(users identity.UserRepository, tokens TokenParser, roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[identity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		id, err := callerID(c, tokens)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.Write(c, http.StatusRequestEntityTooLarge, "body_too_large", "El cuerpo de la petición es demasiado grande.")
			return
		}
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		user, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if !user.Active {
			httperr.Respond(c, errInactiveUser)
			return
		}
		if _, ok := allowed[identity.Role(user.Role)]; !ok {
			httperr.Respond(c, errRoleForbidden)
			return
		}

		c.Set(ContextUser, user)
		c.Request = c.Request.WithContext(logger.ContextWithUserID(c.Request.Context(), user.ID))

		c.Next()
	}
}

// CurrentUser returns the user resolved by RoleGate.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}

func callerID(c *gin.Context, tokens TokenParser) (uint, error) {
	raw, err := bodyUserID(c)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		raw = strings.TrimSpace(c.Query(UserIDField))
	}
	if raw == "" {
		raw = strings.TrimSpace(c.GetHeader(UserIDHeader))
	}
	if raw != "" {
		return parseUserID(raw)
	}

	if token, ok := bearer(c.GetHeader("Authorization")); ok && tokens != nil {
		id, err := tokens.Parse(token)
		if err != nil {
			return 0, errInvalidToken
		}
		return id, nil
	}

	return 0, errMissingUserID
}

// bodyUserID peeks at usuario_id in a JSON body and puts the body back for
// the handler. A body that is not a JSON object is simply not a source; one
// over maxGateBody is an error.
func bodyUserID(c *gin.Context) (string, error) {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return "", nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxGateBody))
	if err != nil {
		return "", err
	}
	_ = c.Request.Body.Close()
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var payload map[string]json.RawMessage
	if len(bytes.TrimSpace(body)) == 0 || json.Unmarshal(body, &payload) != nil {
		return "", nil
	}

	v, ok := payload[UserIDField]
	if !ok || string(v) == "null" {
		return "", nil
	}

	var s string
	if json.Unmarshal(v, &s) == nil {
		return strings.TrimSpace(s), nil
	}
	return strings.TrimSpace(string(v)), nil
}

func parseUserID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidUserID
	}
	return uint(id), nil
}

func bearer(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
