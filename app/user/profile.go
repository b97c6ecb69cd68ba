package user

import (
	"net/http"

	"taskhub/collab-api/internal"
	"taskhub/collab-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type profileUpdateBody struct {
	Bio *string `json:"bio" binding:"omitempty,max=100"`
}

// ProfileFetch returns the caller's profile, creating an empty one on
// first access if it doesn't exist yet
func ProfileFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	profile, user, ok := loadProfile(c, d, userID, requestID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, profileResponse(profile, user, requestID))
}

// ProfileUpdate partially updates the caller's profile, with the same
// lazy creation as ProfileFetch
func ProfileUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data profileUpdateBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	profile, user, ok := loadProfile(c, d, userID, requestID)
	if !ok {
		return
	}

	if data.Bio != nil {
		profile.Bio = *data.Bio

		if err := d.DB.Model(profile).Update("bio", profile.Bio).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to update profile", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	c.JSON(http.StatusOK, profileResponse(profile, user, requestID))
}

func loadProfile(c *gin.Context, d *internal.Deps, userID, requestID string) (*model.UserProfile, *model.User, bool) {
	var user model.User

	if err := d.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return nil, nil, false
	}

	var profile model.UserProfile

	err := d.DB.Where("user_id = ?", userID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		profile = model.UserProfile{UserID: userID}
		err = d.DB.Create(&profile).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load profile", zap.Error(err), zap.String("requestID", requestID))
		return nil, nil, false
	}

	return &profile, &user, true
}

func profileResponse(p *model.UserProfile, u *model.User, requestID string) gin.H {
	return gin.H{
		"email":       u.Email,
		"username":    u.Username,
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"date_joined": u.CreatedAt,
		"bio":         p.Bio,
		"requestID":   requestID,
	}
}
