package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	"bimbelku_backend/internals/features/notifications/queue/controller"
)

// StartNotificationWorker drains the queue on an interval as a fallback for
// deployments without an external cron. Interval comes from
// NOTIFICATION_WORKER_INTERVAL_MINUTES; 0 disables the worker entirely and
// leaves dispatch to the cron endpoint.
func StartNotificationWorker(db *gorm.DB) {
	minutes := configs.GetEnvInt("NOTIFICATION_WORKER_INTERVAL_MINUTES", 5)
	if minutes <= 0 {
		log.Println("⏭️  Notification worker disabled")
		return
	}

	queue := controller.BuildQueueService(db)
	interval := time.Duration(minutes) * time.Minute

	go func() {
		log.Printf("🔔 Notification worker started (every %v)", interval)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			res, err := queue.ProcessBatch(context.Background(), 50)
			if err != nil {
				log.Printf("[ERROR] notification worker: %v", err)
				continue
			}
			if res.Processed > 0 || res.Failed > 0 {
				log.Printf("[WORKER] notifications: processed=%d failed=%d", res.Processed, res.Failed)
			}
		}
	}()
}
