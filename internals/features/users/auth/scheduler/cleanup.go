package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	"bimbelku_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler prunes blacklist rows whose token expired
// more than TTL days ago. One pass per 24h, bounded batch.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ttlDays := configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)

		for {
			deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

			var expiredTokens []model.TokenBlacklist
			if err := db.
				Where("expired_at < ? AND deleted_at IS NULL", deleteBefore).
				Limit(100).
				Find(&expiredTokens).Error; err != nil {
				log.Printf("[CLEANUP ERROR] fetching expired blacklist rows: %v", err)
			} else if len(expiredTokens) > 0 {
				if err := db.Delete(&expiredTokens).Error; err != nil {
					log.Printf("[CLEANUP ERROR] deleting blacklist rows: %v", err)
				} else {
					log.Printf("[CLEANUP] %d expired blacklist rows removed", len(expiredTokens))
				}
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
