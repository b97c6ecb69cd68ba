package model

import "time"

// VerificationCode holds the current one-time code for an unverified
// user. The unique index on UserID guarantees at most one live code
// per user; login attempts overwrite the row instead of appending.
type VerificationCode struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	UserID string `gorm:"uniqueIndex;not null"`
	Code   string `gorm:"size:6;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
