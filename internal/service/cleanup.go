package service

import (
	"time"

	"taskhub/collab-api/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CodeCleanup periodically deletes verification codes that were
// generated for users who never came back to verify. Codes are
// normally removed on successful verification, this only catches the
// abandoned ones.
func CodeCleanup(t time.Duration, maxAge time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Verification code cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			res := db.
				Where("updated_at < ?", time.Now().Add(-maxAge)).
				Delete(&model.VerificationCode{})
			if res.Error != nil {
				zap.L().Error("Failed to cleanup stale verification codes", zap.Error(res.Error))
				continue
			}

			if res.RowsAffected > 0 {
				zap.L().Debug("Cleaned up stale verification codes", zap.Int64("rows", res.RowsAffected))
			}
		}
	}()
}

// TokenCleanup periodically deletes blacklist entries whose tokens
// have expired on their own. An expired refresh token fails signature
// validation anyway, the row is just dead weight.
func TokenCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Token blacklist cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			res := db.
				Where("expires_at < ?", time.Now()).
				Delete(&model.BlacklistedToken{})
			if res.Error != nil {
				zap.L().Error("Failed to cleanup expired blacklist entries", zap.Error(res.Error))
				continue
			}

			if res.RowsAffected > 0 {
				zap.L().Debug("Cleaned up expired blacklist entries", zap.Int64("rows", res.RowsAffected))
			}
		}
	}()
}
