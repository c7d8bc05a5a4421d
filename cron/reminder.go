package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"roomie/config"
	"roomie/models"

	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// reminderLeadTime is how long before check-in the pre-arrival reminder goes
// out.
const reminderLeadTime = 24 * time.Hour

// ReminderPayload is the task payload for a scheduled pre-arrival reminder.
type ReminderPayload struct {
	BookingNumber string `json:"booking_number"`
	FullName      string `json:"full_name"`
	CheckInDate   string `json:"check_in_date"`
}

// AsynqReminderScheduler queues pre-arrival reminders over Redis.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewAsynqReminderScheduler builds a scheduler on the reminder queue DB.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqReminderScheduler{client: client}
}

// ScheduleCheckInReminder enqueues a reminder task processed 24h before the
// reservation's check-in date. Dates already inside the lead window are
// reminded immediately.
func (s *AsynqReminderScheduler) ScheduleCheckInReminder(ctx context.Context, record models.ReservationRecord) error {
	checkIn, err := time.Parse("2006-01-02", record.CheckInDate)
	if err != nil {
		return fmt.Errorf("unparseable check-in date %q: %w", record.CheckInDate, err)
	}

	payload, err := json.Marshal(ReminderPayload{
		BookingNumber: record.BookingNumber,
		FullName:      record.FullName,
		CheckInDate:   record.CheckInDate,
	})
	if err != nil {
		return fmt.Errorf("marshal reminder payload: %w", err)
	}

	processAt := checkIn.Add(-reminderLeadTime)
	if processAt.Before(time.Now()) {
		processAt = time.Now()
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.ProcessAt(processAt), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("enqueue reminder for %s: %w", record.BookingNumber, err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}
