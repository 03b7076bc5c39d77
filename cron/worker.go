package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"vibezone/config"
	"vibezone/database/repository"
	"vibezone/models"
	"vibezone/services/booking"
	"vibezone/services/notification"
	"vibezone/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(bookings repository.BookingRepository, reminders repository.ReminderRepository, email notification.EmailSender) {
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
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(bookings, reminders, email))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleReminderTask delivers a scheduled pre-event reminder and records
// the outcome on the reminder row.
func handleReminderTask(bookings repository.BookingRepository, reminders repository.ReminderRepository, email notification.EmailSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		b, err := bookings.GetByID(p.BookingID)
		if err != nil {
			log.Printf("[ReminderHandler] booking %s not found: %v", p.BookingID, err)
			_ = reminders.MarkFailed(p.ReminderID, time.Now(), err.Error())
			return nil
		}
		// Only confirmed bookings get the pre-event reminder; a booking
		// cancelled after scheduling is skipped silently.
		if b.Status != models.StatusConfirmed {
			_ = reminders.MarkFailed(p.ReminderID, time.Now(), "booking no longer confirmed")
			return nil
		}

		msg := notification.Email{
			To:      b.CustomerEmail,
			Subject: "Your event is one week away!",
			Body: fmt.Sprintf("<p>Hi %s,</p><p>Just a heads up: your event on %s is a week out. Reply to this email with any last-minute song requests.</p>",
				b.CustomerName, b.EventDate),
		}
		if err := email.Send(ctx, msg); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder: %v", err)
			_ = reminders.MarkFailed(p.ReminderID, time.Now(), err.Error())
			return err
		}
		return reminders.MarkSent(p.ReminderID, time.Now())
	}
}

// StartSweepCron drives the hold expiry/reminder sweep on a fixed interval
// until the context is cancelled. The HTTP sweep endpoint remains available
// for external schedulers.
func StartSweepCron(ctx context.Context, svc booking.BookingService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Sweep cron shutdown signal received.")
			return
		case <-ticker.C:
			summary, err := svc.Sweep(ctx)
			if err != nil {
				log.Printf("Sweep failed: %v\n", err)
				continue
			}
			if summary.Count > 0 {
				log.Printf("Sweep processed %d bookings\n", summary.Count)
			}
		}
	}
}
