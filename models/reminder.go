package models

import "time"

// Reminder statuses.
const (
	ReminderPending = "pending"
	ReminderSent    = "sent"
	ReminderFailed  = "failed"
)

// Reminder types.
const (
	ReminderTypeEventUpcoming = "event_upcoming"
)

// Reminder is a scheduled notification linked to a booking. Distinct from
// the hold-expiry reminder timestamp stored on Booking itself.
type Reminder struct {
	ID           string    `bson:"id" json:"id"`
	BookingID    string    `bson:"booking_id" json:"bookingId"`
	Type         string    `bson:"type" json:"type"`
	ScheduledFor time.Time `bson:"scheduled_for" json:"scheduledFor"`
	Status       string    `bson:"status" json:"status"`
	ErrorMessage string    `bson:"error_message,omitempty" json:"errorMessage,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// ReminderPayload is the queued task body for a scheduled reminder.
type ReminderPayload struct {
	ReminderID string `json:"reminderId"`
	BookingID  string `json:"bookingId"`
	FireDate   string `json:"fireDate"`
}
