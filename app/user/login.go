package user

import (
	"net/http"
	"time"

	"taskhub/collab-api/internal"
	"taskhub/collab-api/internal/model"
	"taskhub/collab-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type loginBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func UserLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
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

		// Same answer as a wrong password, no account enumeration
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid credentials",
			"requestID": requestID,
		})
		return
	}

	ok, err := d.Argon.VerifyPasswd(data.Password, user.PasswordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid credentials",
			"requestID": requestID,
		})
		return
	}

	if !user.Verified {
		// Every unverified login attempt regenerates the code and
		// resends the mail, not just the first one. Concurrent
		// attempts race on the single row, last write wins.
		code, err := security.GenerateVerificationCode()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to generate verification code", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		err = d.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "updated_at"}),
		}).Create(&model.VerificationCode{
			UserID: user.ID,
			Code:   code,
		}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to store verification code", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		d.Mail.DispatchVerification(user.Email, user.FullName(), code)

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Account not verified. A new verification code has been sent to your email",
			"requestID": requestID,
		})
		return
	}

	if !user.Active {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "This account is inactive, refer to us for reverification",
			"requestID": requestID,
		})
		return
	}

	tokens, err := d.Tokens.MintPair(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to mint token pair", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	now := time.Now()
	if err := d.DB.Model(&user).Update("last_login", now).Error; err != nil {
		zap.L().Warn("Failed to update last login", zap.Error(err), zap.String("requestID", requestID))
	}
	user.LastLogin = &now

	c.JSON(http.StatusCreated, gin.H{
		"message":   "User logged in successfully",
		"user":      user,
		"tokens":    tokens,
		"requestID": requestID,
	})
}
