package model

import "time"

type Project struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:255;not null;index" json:"name"`
	Description string `json:"description"`
	OwnerID     string `gorm:"size:255;not null;index" json:"owner_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Boards []Board `gorm:"foreignKey:ProjectID" json:"-"`
}
