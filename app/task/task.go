// Package task implements the task CRUD handlers of the tasks service
package task

import (
	"net/http"
	"strconv"
	"time"

	"taskhub/collab-api/internal"
	"taskhub/collab-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type createBody struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description" binding:"max=1000"`
	Status      string    `json:"status" binding:"omitempty,taskstatus"`
	Priority    string    `json:"priority" binding:"omitempty,taskpriority"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	AssignedTo  string    `json:"assigned_to" binding:"required"`
	BoardID     uint      `json:"board_id" binding:"required"`
}

type updateBody struct {
	Title       *string    `json:"title" binding:"omitempty,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	Status      *string    `json:"status" binding:"omitempty,taskstatus"`
	Priority    *string    `json:"priority" binding:"omitempty,taskpriority"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *string    `json:"assigned_to"`
}

// TaskList returns the tasks of a board, optionally filtered by
// status and assignee, paginated
func TaskList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	boardID, err := strconv.Atoi(c.Query("board_id"))
	if err != nil || boardID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No board_id provided",
			"requestID": requestID,
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := d.DB.Where("board_id = ?", boardID)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	if assignee := c.Query("assigned_to"); assignee != "" {
		q = q.Where("assigned_to = ?", assignee)
	}

	var tasks []model.Task

	if err := q.Limit(limit).Offset(offset).Order("id").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list tasks", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":     tasks,
		"requestID": requestID,
	})
}

func TaskFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var task model.Task

	err := d.DB.Where("id = ?", c.Param("id")).First(&task).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Task not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch task", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task":      task,
		"requestID": requestID,
	})
}

func TaskCreate(c *gin.Context, d *internal.Deps) {
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

	var boardExists bool

	err := d.DB.Model(model.Board{}).
		Select("count(*) > 0").
		Where("id = ?", data.BoardID).
		Find(&boardExists).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if board exists", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !boardExists {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Board not found",
			"requestID": requestID,
		})
		return
	}

	task := model.Task{
		Title:       data.Title,
		Description: data.Description,
		Status:      data.Status,
		Priority:    data.Priority,
		DueDate:     data.DueDate,
		UserID:      c.MustGet("userID").(string),
		AssignedTo:  data.AssignedTo,
		BoardID:     data.BoardID,
	}

	if task.Status == "" {
		task.Status = model.TaskStatusTodo
	}

	if task.Priority == "" {
		task.Priority = model.TaskPriorityMedium
	}

	if err := d.DB.Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create task", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"task":      task,
		"requestID": requestID,
	})
}

func TaskUpdate(c *gin.Context, d *internal.Deps) {
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

	var task model.Task

	err := d.DB.Where("id = ?", c.Param("id")).First(&task).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Task not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch task", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Title != nil {
		task.Title = *data.Title
	}

	if data.Description != nil {
		task.Description = *data.Description
	}

	if data.Status != nil {
		task.Status = *data.Status
	}

	if data.Priority != nil {
		task.Priority = *data.Priority
	}

	if data.DueDate != nil {
		task.DueDate = *data.DueDate
	}

	if data.AssignedTo != nil {
		task.AssignedTo = *data.AssignedTo
	}

	if err := d.DB.Save(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update task", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task":      task,
		"requestID": requestID,
	})
}

func TaskDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	res := d.DB.Where("id = ?", c.Param("id")).Delete(&model.Task{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete task", zap.Error(res.Error), zap.String("requestID", requestID))
		return
	}

	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Task not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Task deleted successfully",
		"requestID": requestID,
	})
}
