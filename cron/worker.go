package cron

import (
	"context"
	"log"
	"time"

	"deskhive/config"
	"deskhive/services/booking"

	"github.com/hibiken/asynq"
)

const TypeBookingSweep = "booking:sweep"

// InitSweepWorker runs the expiry sweeper in the background: an asynq server
// consumes sweep tasks and an asynq scheduler enqueues one on the configured
// cadence. The cadence must be shorter than the payment hold window so stale
// holds cannot lock seats for long.
func InitSweepWorker(svc booking.BookingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingSweep, handleSweepTask(svc))

	go func() {
		log.Println("[SweepWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SweepWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SweepWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register(config.AppConfig.SweepInterval, asynq.NewTask(TypeBookingSweep, nil)); err != nil {
		log.Fatalf("[SweepWorker] Failed to register sweep schedule: %v", err)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[SweepWorker] Scheduler stopped: %v", err)
		}
	}()
}

func handleSweepTask(svc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		report, err := svc.ExpireStale(ctx)
		if err != nil {
			log.Printf("[SweepWorker] Sweep failed: %v", err)
			return err
		}
		log.Printf("[SweepWorker] Sweep done: %d stale pending, %d past-due confirmed, %d skipped",
			report.StalePending, report.PastDueConfirmed, report.Skipped)
		return nil
	}
}
