package user

import (
	"crypto/subtle"
	"net/http"

	"taskhub/collab-api/internal"
	"taskhub/collab-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type verifyBody struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// UserVerify checks the submitted one-time code against the user's
// current one. A mismatch does NOT regenerate the code, only a login
// attempt does that.
func UserVerify(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data verifyBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var user model.User

	if err := d.DB.Where("email = ?", data.Email).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Verification failed",
			"requestID": requestID,
		})
		return
	}

	var code model.VerificationCode

	if err := d.DB.Where("user_id = ?", user.ID).First(&code).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up verification code", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Verification failed",
			"requestID": requestID,
		})
		return
	}

	if subtle.ConstantTimeCompare([]byte(code.Code), []byte(data.Code)) != 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Verification failed",
			"requestID": requestID,
		})
		return
	}

	// Flag flip and code removal must land together
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).
			Where("id = ?", user.ID).
			Update("verified", true).Error; err != nil {
			return err
		}

		return tx.Delete(&code).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify user in transaction", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Info("User verified", zap.String("user_id", user.ID), zap.String("requestID", requestID))

	c.JSON(http.StatusOK, gin.H{
		"message":   "User verified successfully",
		"requestID": requestID,
	})
}
