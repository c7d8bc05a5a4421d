package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"roomie/config"
	"roomie/database/repository/reservation"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(repo reservationRepo.ReservationRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(repo))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleReminderTask sends the pre-arrival reminder for a booking. The store
// is re-checked first: reminders for reservations cancelled since scheduling
// are dropped silently.
func handleReminderTask(repo reservationRepo.ReservationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal reminder payload: %v: %w", err, asynq.SkipRetry)
		}

		record, err := repo.Lookup(ctx, payload.BookingNumber, payload.FullName)
		if errors.Is(err, reservationRepo.ErrNotFound) {
			log.Printf("[ReminderWorker] Booking %s no longer exists, dropping reminder", payload.BookingNumber)
			return nil
		}
		if err != nil {
			return fmt.Errorf("lookup booking %s: %w", payload.BookingNumber, err)
		}

		// Delivery channel integration is pending; until then the reminder is
		// recorded in the service log.
		log.Printf("[ReminderWorker] Pre-arrival reminder for %s: %s checks in on %s",
			record.BookingNumber, record.FullName, record.CheckInDate)
		return nil
	}
}
