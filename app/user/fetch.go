package user

import (
	"net/http"
	"strconv"

	"taskhub/collab-api/internal"
	"taskhub/collab-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserFetch returns the basic info of the calling user
func UserFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var user model.User

	if err := d.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"requestID": requestID,
	})
}

// callerIsStaff answers whether the authenticated caller has the
// staff flag, writing the refusal itself when they don't
func callerIsStaff(c *gin.Context, d *internal.Deps, requestID string) bool {
	var staff bool

	err := d.DB.Model(model.User{}).
		Select("staff").
		Where("id = ?", c.MustGet("userID")).
		Find(&staff).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check staff flag", zap.Error(err), zap.String("requestID", requestID))
		return false
	}

	if !staff {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "Staff privileges required",
			"requestID": requestID,
		})
		return false
	}

	return true
}

// UserList returns users filtered by email, username or verification
// status, with limit/offset pagination. Staff only.
func UserList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	if !callerIsStaff(c, d, requestID) {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := d.DB.Model(model.User{})

	if email := c.Query("email"); email != "" {
		q = q.Where("email = ?", email)
	}

	if username := c.Query("username"); username != "" {
		q = q.Where("username = ?", username)
	}

	if verified := c.Query("is_verified"); verified != "" {
		val, err := strconv.ParseBool(verified)
		if err == nil {
			q = q.Where("verified = ?", val)
		}
	}

	var users []model.User

	if err := q.Limit(limit).Offset(offset).Order("created_at").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":     users,
		"requestID": requestID,
	})
}

// UserDetails returns a single user by ID. Staff only.
func UserDetails(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	if !callerIsStaff(c, d, requestID) {
		return
	}

	var user model.User

	err := d.DB.Where("id = ?", c.Param("id")).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"requestID": requestID,
	})
}
