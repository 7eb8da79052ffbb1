// Success-response helpers. Failures never go through these; they funnel
// through Respond in dispatch.go so every error body comes from one place.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ok writes a success JSON response with the given status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
