// Package respond writes the uniform JSON envelope used by every API route.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fandomexplorer/pkg/models"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, models.Envelope{Success: true, Data: data})
}

// List is OK with the item count in "total".
func List[T any](c *gin.Context, items []T) {
	total := len(items)
	c.JSON(http.StatusOK, models.Envelope{Success: true, Data: items, Total: &total})
}

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, models.Envelope{Success: false, Error: msg})
}

// ErrorWithData is Error for routes that still return a shaped fallback body.
func ErrorWithData(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, models.Envelope{Success: false, Error: msg, Data: data})
}

// Abort writes the envelope and stops the handler chain.
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, models.Envelope{Success: false, Error: msg})
}
