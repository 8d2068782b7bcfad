package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Message writes the {"mensaje": ..., key: value} envelope. An empty key
// writes the message alone.
func Message(c *gin.Context, status int, message, key string, value any) {
	body := gin.H{"mensaje": message}
	if key != "" {
		body[key] = value
	}
	c.JSON(status, body)
}

func Created(c *gin.Context, message, key string, value any) {
	Message(c, http.StatusCreated, message, key, value)
}

// Items turns a nil slice into an empty one so it encodes as [].
func Items[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
