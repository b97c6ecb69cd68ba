// Package project implements the project CRUD handlers of the tasks service
package project

import (
	"net/http"
	"strconv"

	"taskhub/collab-api/internal"
	"taskhub/collab-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type createBody struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	OwnerID     string `json:"owner_id"`
}

type updateBody struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

// ProjectList returns a paginated list of projects. Defaults to the
// caller's own projects unless owner_id says otherwise.
func ProjectList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	ownerID := c.Query("owner_id")
	if ownerID == "" {
		ownerID = c.MustGet("userID").(string)
	}

	limit, offset := pagination(c)

	var projects []model.Project

	err := d.DB.
		Where("owner_id = ?", ownerID).
		Limit(limit).
		Offset(offset).
		Order("id").
		Find(&projects).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list projects", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":  projects,
		"requestID": requestID,
	})
}

func ProjectFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var project model.Project

	err := d.DB.Where("id = ?", c.Param("id")).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Project not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch project", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project":   project,
		"requestID": requestID,
	})
}

func ProjectCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data createBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.OwnerID == "" {
		data.OwnerID = c.MustGet("userID").(string)
	}

	project := model.Project{
		Name:        data.Name,
		Description: data.Description,
		OwnerID:     data.OwnerID,
	}

	if err := d.DB.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create project", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"project":   project,
		"requestID": requestID,
	})
}

func ProjectUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data updateBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var project model.Project

	err := d.DB.Where("id = ?", c.Param("id")).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Project not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch project", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Name != nil {
		project.Name = *data.Name
	}

	if data.Description != nil {
		project.Description = *data.Description
	}

	if err := d.DB.Save(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update project", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project":   project,
		"requestID": requestID,
	})
}

func ProjectDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	res := d.DB.Where("id = ?", c.Param("id")).Delete(&model.Project{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete project", zap.Error(res.Error), zap.String("requestID", requestID))
		return
	}

	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Project not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Project deleted successfully",
		"requestID": requestID,
	})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
