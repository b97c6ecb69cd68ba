package user

import (
	"net/http"

	"taskhub/collab-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type refreshBody struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserTokenRefresh mints a new access token from a refresh token.
// Blacklisted refresh tokens are refused here, which is what makes
// logout actually end the session.
func UserTokenRefresh(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data refreshBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	claims, err := d.Tokens.ParseRefresh(data.RefreshToken)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid refresh token",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to parse refresh token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	access, err := d.Tokens.MintAccess(claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to mint access token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":    access,
		"requestID": requestID,
	})
}
