// Package root holds the handlers that don't belong to any resource
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat is used to check if the server is alive
func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate answers 200 when the JWT middleware let the request
// through, which is all a frontend needs to know
func Validate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userID": c.MustGet("userID").(string),
	})
}
