package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-api/internal/logger"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

var defaultMessages = map[Kind]string{
	KindValidation:   "Datos inválidos.",
	KindUnauthorized: "Credenciales incorrectas.",
	KindForbidden:    "No tienes permiso para realizar esta acción.",
	KindNotFound:     "Recurso no encontrado.",
	KindConflict:     "El recurso ya existe.",
	KindInternal:     "Error interno del servidor.",
}

func StatusOf(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Write aborts the chain with the error envelope.
func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond maps err onto the error taxonomy and writes it. Anything that is
// not a typed error is logged and answered with a generic 500.
func Respond(c *gin.Context, err error) {
	kind := KindOf(err)
	status := StatusOf(kind)

	if kind == KindInternal {
		logger.WithContext(c.Request.Context()).Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		Write(c, status, "internal_error", defaultMessages[KindInternal])
		return
	}

	code, message := "", ""
	if e, ok := asError(err); ok {
		code, message = e.Code, e.Message
	}
	switch {
	case code == "" && kind == KindNotFound:
		code = "not_found"
	case code == "" && kind == KindConflict:
		code = "conflict"
	}
	if message == "" {
		message = defaultMessages[kind]
	}

	Write(c, status, code, message)
}
