package model

import (
	"time"

	"gorm.io/datatypes"
)

type Board struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null;index" json:"name"`
	Description string         `json:"description"`
	Columns     datatypes.JSON `gorm:"not null" json:"columns"`
	ProjectID   uint           `gorm:"not null;index" json:"project_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tasks []Task `gorm:"foreignKey:BoardID" json:"-"`
}

// DefaultColumns is the column layout a board starts with when the
// request doesn't provide one
func DefaultColumns() datatypes.JSON {
	return datatypes.JSON([]byte(`["ToDo","InProgress","Done"]`))
}
