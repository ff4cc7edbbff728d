package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"scheduleku_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler periodically removes blacklist rows whose
// token would have expired anyway.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		interval := 24 * time.Hour
		if val := os.Getenv("TOKEN_BLACKLIST_SWEEP_HOURS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				interval = time.Duration(parsed) * time.Hour
			}
		}

		for {
			if n, err := repository.CleanupExpiredBlacklist(db); err != nil {
				log.Printf("[CLEANUP ERROR] blacklist sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("[CLEANUP] removed %d expired blacklist tokens", n)
			}
			time.Sleep(interval)
		}
	}()
}
