package handlers

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barberia-api/internal/httperr"
)

var (
	errInvalidID      = httperr.NewValidation("invalid_id", "Identificador no válido.")
	errInvalidRequest = httperr.NewValidation("invalid_request", "Datos no válidos.")

	errMissingSignup = httperr.NewValidation("missing_fields", "Debes ingresar nombre, email y contraseña.")
	errMissingLogin  = httperr.NewValidation("missing_fields", "Debes ingresar email y contraseña por favor.")
)

// fieldErrors overrides the generic missing_<campo> / invalid_<campo>
// codes. Keys are <Request>.<campo>.<tag>.
var fieldErrors = map[string]error{
	"RegisterRequest.nombre.required":   errMissingSignup,
	"RegisterRequest.nombre.notblank":   errMissingSignup,
	"RegisterRequest.email.required":    errMissingSignup,
	"RegisterRequest.password.required": errMissingSignup,
	"RegisterRequest.email.mailbox":     httperr.NewValidation("invalid_email", "El email no es válido."),
	"RegisterRequest.password.min":      httperr.NewValidation("password_too_short", "La contraseña debe tener al menos 6 caracteres."),

	"LoginRequest.email.required":    errMissingLogin,
	"LoginRequest.password.required": errMissingLogin,

	"ServiceRequest.precio.gte":   httperr.NewValidation("invalid_precio", "El precio no puede ser negativo."),
	"ServiceRequest.duracion.gte": httperr.NewValidation("invalid_duracion", "La duración no puede ser negativa."),
}

// pathID reads the :id route parameter.
func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// bindJSON decodes and validates the body into dst. An empty body leaves
// dst untouched when optional is set.
func bindJSON(c *gin.Context, dst any, optional bool) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	if optional && errors.Is(err, io.EOF) {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fieldError(verrs[0])
	}
	return errInvalidRequest
}

func fieldError(fe validator.FieldError) error {
	if err, ok := fieldErrors[fe.Namespace()+"."+fe.Tag()]; ok {
		return err
	}

	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return httperr.NewValidation("missing_"+field, "El campo "+field+" es obligatorio.")
	default:
		return httperr.NewValidation("invalid_"+field, "El campo "+field+" no es válido.")
	}
}

func queryUint(c *gin.Context, key string) (uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, httperr.NewValidation("invalid_"+key, "Parámetro "+key+" no válido.")
	}
	return uint(v), nil
}

func queryInt(c *gin.Context, key string, def, max int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	if max > 0 && v > max {
		return def
	}
	return v
}
