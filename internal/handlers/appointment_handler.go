package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/httpresp"
	"github.com/BruksfildServices01/barberia-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *appointment.CreateAppointment
	update       *appointment.UpdateAppointment
	remove       *appointment.DeleteAppointment
	availability *appointment.CheckAvailability
	list         *appointment.ListAppointments
	get          *appointment.GetAppointment
	cancel       *appointment.CancelAppointment
	complete     *appointment.CompleteAppointment
}

func NewAppointmentHandler(deps appointment.Deps) *AppointmentHandler {
	return &AppointmentHandler{
		create:       appointment.NewCreateAppointment(deps),
		update:       appointment.NewUpdateAppointment(deps),
		remove:       appointment.NewDeleteAppointment(deps),
		availability: appointment.NewCheckAvailability(deps),
		list:         appointment.NewListAppointments(deps),
		get:          appointment.NewGetAppointment(deps),
		cancel:       appointment.NewCancelAppointment(deps),
		complete:     appointment.NewCompleteAppointment(deps),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	UserID      uint    `json:"usuario_id" binding:"required"`
	ServiceID   uint    `json:"servicio_id" binding:"required"`
	ScheduledAt string  `json:"fecha_hora" binding:"required,notblank"`
	Notes       *string `json:"notas"`
}

// UpdateAppointmentRequest is a full replace: notas left out is cleared.
type UpdateAppointmentRequest struct {
	UserID      uint    `json:"usuario_id" binding:"required"`
	ServiceID   uint    `json:"servicio_id" binding:"required"`
	ScheduledAt string  `json:"fecha_hora" binding:"required,notblank"`
	Status      string  `json:"estado" binding:"required,notblank"`
	Notes       *string `json:"notas"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := bindJSON(c, &req, false); err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		UserID:      req.UserID,
		ServiceID:   req.ServiceID,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, "Cita creada exitosamente", "cita", ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	userID, err := queryUint(c, "usuario_id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	list, err := h.list.Execute(c.Request.Context(), appointment.ListAppointmentsInput{
		Date:   c.Query("fecha"),
		Month:  c.Query("mes"),
		Status: c.Query("estado"),
		UserID: userID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Citas obtenidas", "citas", httpresp.Items(list))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Cita obtenida", "cita", ap)
}

// Availability answers GET /citas/disponibilidad/:fecha_hora.
func (h *AppointmentHandler) Availability(c *gin.Context) {
	res, err := h.availability.Execute(c.Request.Context(), c.Param("fecha_hora"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	msg := "Horario disponible"
	if !res.Available {
		msg = "Horario ocupado"
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje":    msg,
		"disponible": res.Available,
		"fecha_hora": res.Slot,
	})
}

// ======================================================
// WRITE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req UpdateAppointmentRequest
	if err := bindJSON(c, &req, false); err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), id, appointment.UpdateAppointmentInput{
		UserID:      req.UserID,
		ServiceID:   req.ServiceID,
		ScheduledAt: req.ScheduledAt,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Cita actualizada correctamente", "cita", ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Cita eliminada correctamente", "", nil)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Cita cancelada", "cita", ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Cita completada", "cita", ap)
}
