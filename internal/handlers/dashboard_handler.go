package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barberia-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barberia-api/internal/domain/reporting"
	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/httpresp"
	"github.com/BruksfildServices01/barberia-api/internal/usecase/dashboard"
)

// DashboardHandler serves the admin aggregates. Every route is POST so the
// caller can send usuario_id in the body for the role gate.
type DashboardHandler struct {
	stats *dashboard.Stats
}

func NewDashboardHandler(stats *dashboard.Stats) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

// RangeRequest bounds the time series. Both ends are inclusive UTC days,
// the same calendar the buckets are keyed on.
type RangeRequest struct {
	From string `json:"desde"`
	To   string `json:"hasta"`
}

func (h *DashboardHandler) window(c *gin.Context) (reporting.Window, error) {
	var req RangeRequest
	if err := bindJSON(c, &req, true); err != nil {
		return reporting.Window{}, err
	}

	var w reporting.Window
	if strings.TrimSpace(req.From) != "" {
		from, _, err := domain.ParseDay(req.From, time.UTC)
		if err != nil {
			return w, httperr.NewValidation("invalid_desde", "Fecha desde no válida.")
		}
		w.From = &from
	}
	if strings.TrimSpace(req.To) != "" {
		_, to, err := domain.ParseDay(req.To, time.UTC)
		if err != nil {
			return w, httperr.NewValidation("invalid_hasta", "Fecha hasta no válida.")
		}
		w.To = &to
	}
	if w.From != nil && w.To != nil && !w.From.Before(*w.To) {
		return w, httperr.NewValidation("invalid_range", "El rango de fechas no es válido.")
	}
	return w, nil
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	summary, err := h.stats.Summary(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Estadísticas generales", "stats", summary)
}

func (h *DashboardHandler) TotalUsers(c *gin.Context) {
	n, err := h.stats.TotalUsers(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Total de usuarios", "total_usuarios", n)
}

func (h *DashboardHandler) TotalAppointments(c *gin.Context) {
	n, err := h.stats.TotalAppointments(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Total de citas", "total_citas", n)
}

func (h *DashboardHandler) TotalServices(c *gin.Context) {
	n, err := h.stats.TotalServices(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Total de servicios", "total_servicios", n)
}

func (h *DashboardHandler) ByStatus(c *gin.Context) {
	list, err := h.stats.ByStatus(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Citas por estado", "citas_por_estado", httpresp.Items(list))
}

func (h *DashboardHandler) ByDay(c *gin.Context) {
	w, err := h.window(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	list, err := h.stats.ByDay(c.Request.Context(), w)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Citas por día", "citas_por_dia", httpresp.Items(list))
}

func (h *DashboardHandler) ByMonth(c *gin.Context) {
	w, err := h.window(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	list, err := h.stats.ByMonth(c.Request.Context(), w)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Citas por mes", "citas_por_mes", httpresp.Items(list))
}
