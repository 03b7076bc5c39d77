package tasks

import (
	"encoding/json"
	"time"

	"vibezone/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// Scheduler enqueues delayed reminder tasks on the asynq queue.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler wraps an asynq client.
func NewScheduler(client *asynq.Client) *Scheduler {
	return &Scheduler{client: client}
}

// ScheduleEventReminder enqueues a reminder task for delivery at fireAt.
func (s *Scheduler) ScheduleEventReminder(payload models.ReminderPayload, fireAt time.Time) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(fireAt))
	return err
}
