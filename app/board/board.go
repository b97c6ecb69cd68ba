// Package board implements the board CRUD handlers of the tasks service
package board

import (
	"encoding/json"
	"net/http"
	"strconv"

	"taskhub/collab-api/internal"
	"taskhub/collab-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type createBody struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	ProjectID   uint     `json:"project_id" binding:"required"`
	Columns     []string `json:"columns"`
}

type updateBody struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Columns     []string `json:"columns"`
}

// BoardList returns the boards of a project, paginated. The project
// itself must exist.
func BoardList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	projectID, err := strconv.Atoi(c.Query("project_id"))
	if err != nil || projectID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No project_id provided",
			"requestID": requestID,
		})
		return
	}

	if !projectExists(c, d, uint(projectID), requestID) {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var boards []model.Board

	err = d.DB.
		Where("project_id = ?", projectID).
		Limit(limit).
		Offset(offset).
		Order("id").
		Find(&boards).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list boards", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"boards":    boards,
		"requestID": requestID,
	})
}

func BoardFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var board model.Board

	err := d.DB.Where("id = ?", c.Param("id")).First(&board).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Board not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch board", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"board":     board,
		"requestID": requestID,
	})
}

func BoardCreate(c *gin.Context, d *internal.Deps) {
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

	if !projectExists(c, d, data.ProjectID, requestID) {
		return
	}

	columns := model.DefaultColumns()
	if len(data.Columns) > 0 {
		raw, err := json.Marshal(data.Columns)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid columns provided",
				"requestID": requestID,
			})
			return
		}
		columns = datatypes.JSON(raw)
	}

	board := model.Board{
		Name:        data.Name,
		Description: data.Description,
		ProjectID:   data.ProjectID,
		Columns:     columns,
	}

	if err := d.DB.Create(&board).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create board", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"board":     board,
		"requestID": requestID,
	})
}

func BoardUpdate(c *gin.Context, d *internal.Deps) {
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

	var board model.Board

	err := d.DB.Where("id = ?", c.Param("id")).First(&board).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Board not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch board", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Name != nil {
		board.Name = *data.Name
	}

	if data.Description != nil {
		board.Description = *data.Description
	}

	if len(data.Columns) > 0 {
		raw, err := json.Marshal(data.Columns)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid columns provided",
				"requestID": requestID,
			})
			return
		}
		board.Columns = datatypes.JSON(raw)
	}

	if err := d.DB.Save(&board).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update board", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"board":     board,
		"requestID": requestID,
	})
}

func BoardDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	res := d.DB.Where("id = ?", c.Param("id")).Delete(&model.Board{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete board", zap.Error(res.Error), zap.String("requestID", requestID))
		return
	}

	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Board not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Board deleted successfully",
		"requestID": requestID,
	})
}

func projectExists(c *gin.Context, d *internal.Deps, projectID uint, requestID string) bool {
	var found bool

	err := d.DB.Model(model.Project{}).
		Select("count(*) > 0").
		Where("id = ?", projectID).
		Find(&found).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if project exists", zap.Error(err), zap.String("requestID", requestID))
		return false
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Project not found",
			"requestID": requestID,
		})
		return false
	}

	return true
}
