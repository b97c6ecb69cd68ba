package model

import "time"

// UserProfile is a one-to-one extension of a User. The unique index on
// UserID is what enforces the one-to-one shape at the database level.
type UserProfile struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID string `gorm:"uniqueIndex;not null" json:"-"`
	Bio    string `gorm:"size:100" json:"bio"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
