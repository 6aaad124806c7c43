package cron

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"slotify/config"
	blockedRepo "slotify/database/repository/blocked"
	"slotify/models"
)

const TypePurgeExpiredBlocks = "maintenance:purge-expired-blocks"

// InitMaintenanceWorker runs the async worker and its schedule in background.
// Its single job today is purging blocked periods whose end date has passed,
// so the blocked_periods collection stays bounded by the advance window.
func InitMaintenanceWorker(blocked blockedRepo.BlockedRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMaintenance,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePurgeExpiredBlocks, handlePurgeTask(blocked))

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("0 3 * * *", asynq.NewTask(TypePurgeExpiredBlocks, nil)); err != nil {
		log.Printf("[MaintenanceWorker] failed to register purge schedule: %v", err)
	}

	// Start async worker and scheduler with retry logic.
	go func() {
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[MaintenanceWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[MaintenanceWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[MaintenanceWorker] scheduler stopped: %v", err)
		}
	}()
}

func handlePurgeTask(blocked blockedRepo.BlockedRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		today := time.Now().Format(models.DateLayout)
		deleted, err := blocked.DeleteExpired(ctx, today)
		if err != nil {
			log.Printf("[MaintenanceWorker] purge failed: %v", err)
			return err
		}
		log.Printf("[MaintenanceWorker] purged %d expired blocked periods", deleted)
		return nil
	}
}
