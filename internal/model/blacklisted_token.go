package model

import "time"

// BlacklistedToken records a revoked refresh token by its jti claim.
// Rows past ExpiresAt are useless (the token no longer verifies
// anyway) and get purged by the token cleanup ticker.
type BlacklistedToken struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	JTI    string `gorm:"uniqueIndex;not null"`
	UserID string `gorm:"index"`

	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}
