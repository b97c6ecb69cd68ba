package model

import "time"

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

type Task struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:255;not null;index" json:"title"`
	Description string    `gorm:"size:1000" json:"description"`
	Status      string    `gorm:"default:todo" json:"status"`
	Priority    string    `gorm:"default:medium" json:"priority"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`

	UserID     string `gorm:"size:255;not null;index" json:"user_id"`
	AssignedTo string `gorm:"size:255;not null;index" json:"assigned_to"`
	BoardID    uint   `gorm:"not null;index" json:"board_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
