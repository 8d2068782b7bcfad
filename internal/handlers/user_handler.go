package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/httpresp"
	"github.com/BruksfildServices01/barberia-api/internal/usecase/users"
)

type UserHandler struct {
	users *users.Users
}

func NewUserHandler(uc *users.Users) *UserHandler {
	return &UserHandler{users: uc}
}

// UpdateUserRequest replaces the editable fields; telefono left out is
// cleared. Activo is a pointer so an explicit false passes required.
type UpdateUserRequest struct {
	Name   string  `json:"nombre" binding:"required,notblank"`
	Phone  *string `json:"telefono"`
	Role   string  `json:"rol" binding:"required"`
	Active *bool   `json:"activo" binding:"required"`
}

func (h *UserHandler) List(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Usuarios obtenidos", "usuarios", httpresp.Items(list))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Usuario obtenido", "usuario", user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req UpdateUserRequest
	if err := bindJSON(c, &req, false); err != nil {
		httperr.Respond(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, users.UpdateInput{
		Name:   req.Name,
		Phone:  req.Phone,
		Role:   req.Role,
		Active: *req.Active,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Usuario actualizado correctamente", "usuario", user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Usuario eliminado correctamente", "", nil)
}
