package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberia-api/internal/db"
	"github.com/BruksfildServices01/barberia-api/internal/httpresp"
	"github.com/BruksfildServices01/barberia-api/internal/logger"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(gdb *gorm.DB) *HealthHandler {
	return &HealthHandler{db: gdb}
}

func (h *HealthHandler) Live(c *gin.Context) {
	httpresp.OK(c, gin.H{"status": "ok"})
}

// DB pings the store and lists its tables.
func (h *HealthHandler) DB(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := db.Ping(ctx, h.db); err != nil {
		logger.WithContext(ctx).Error("database ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"mensaje": "No se pudo conectar a la base de datos.",
		})
		return
	}

	tables, err := db.Tables(h.db.WithContext(ctx))
	if err != nil {
		logger.WithContext(ctx).Error("listing tables failed", "error", err)
		tables = []string{}
	}

	httpresp.OK(c, gin.H{
		"status":  "ok",
		"mensaje": "Conexión exitosa a la base de datos.",
		"tablas":  tables,
	})
}
