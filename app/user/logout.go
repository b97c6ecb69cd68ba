package user

import (
	"net/http"

	"taskhub/collab-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type logoutBody struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserLogout blacklists the submitted refresh token. Submitting the
// same token twice fails the second time, blacklisting is not
// idempotent on purpose.
func UserLogout(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data logoutBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.Tokens.Blacklist(data.RefreshToken); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid refresh token",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to blacklist refresh token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "User logged out successfully",
		"requestID": requestID,
	})
}
