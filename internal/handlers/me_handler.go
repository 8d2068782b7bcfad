package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/httpresp"
	"github.com/BruksfildServices01/barberia-api/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe returns the caller resolved by the role gate.
func (h *MeHandler) GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Usuario no identificado.")
		return
	}
	httpresp.Message(c, http.StatusOK, "Usuario actual", "usuario", user)
}
