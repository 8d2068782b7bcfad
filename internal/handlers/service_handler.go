package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/httpresp"
	"github.com/BruksfildServices01/barberia-api/internal/usecase/services"
)

type ServiceHandler struct {
	services *services.Services
}

func NewServiceHandler(uc *services.Services) *ServiceHandler {
	return &ServiceHandler{services: uc}
}

// --------- Requests ---------

// ServiceRequest serves create and update. Precio is a pointer so a free
// service (0) passes required.
type ServiceRequest struct {
	Name        string   `json:"nombre" binding:"required,notblank"`
	Description *string  `json:"descripcion"`
	Price       *float64 `json:"precio" binding:"required,gte=0"`
	Duration    *int     `json:"duracion" binding:"omitempty,gte=0"`
}

func (r ServiceRequest) input() services.Input {
	return services.Input{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Duration:    r.Duration,
	}
}

// --------- Handlers ---------

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := bindJSON(c, &req, false); err != nil {
		httperr.Respond(c, err)
		return
	}

	svc, err := h.services.Create(c.Request.Context(), req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, "Servicio creado exitosamente", "servicio", svc)
}

func (h *ServiceHandler) List(c *gin.Context) {
	list, err := h.services.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Servicios obtenidos", "servicios", httpresp.Items(list))
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	svc, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Servicio obtenido", "servicio", svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req ServiceRequest
	if err := bindJSON(c, &req, false); err != nil {
		httperr.Respond(c, err)
		return
	}

	svc, err := h.services.Update(c.Request.Context(), id, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Servicio actualizado correctamente", "servicio", svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.services.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Servicio eliminado correctamente", "", nil)
}
