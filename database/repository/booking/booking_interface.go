package bookingRepo

import (
	"time"

	"vibezone/models"
)

// BookingRepository defines methods for booking data access. Status
// transitions go through the conditional methods so that concurrent writers
// (webhook confirm, admin cancel, sweep expiry) resolve to exactly one
// winner.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// GetByPaymentIntentID retrieves a booking by its stored payment-intent id.
	GetByPaymentIntentID(paymentIntentID string) (*models.Booking, error)
	// TransitionStatus conditionally moves a booking from one status to
	// another, stamping updated_at and bumping the version counter.
	// Returns false without error when the booking is no longer in the
	// expected status.
	TransitionStatus(id, from, to string, at time.Time) (bool, error)
	// SetConfirmed performs the from -> confirmed transition and stamps
	// confirmed_at plus the payment-intent correlation in the same write.
	// The from status must allow confirmation (pending or payment_failed).
	SetConfirmed(id, paymentIntentID, from string, at time.Time) (bool, error)
	// SetCheckoutSession records the checkout session id once checkout starts.
	SetCheckoutSession(id, sessionID string) error
	// SetCalendarEventID records the external calendar event id.
	SetCalendarEventID(id, eventID string) error
	// SetReminderSent stamps the hold-expiry reminder guard. Returns false
	// when the guard was already set or the booking left pending status.
	SetReminderSent(id string, at time.Time) (bool, error)
	// FindPendingForReminder returns pending bookings created within
	// (oldest, newest] whose reminder guard is unset. The lower bound is
	// exclusive: a hold created exactly at the oldest instant belongs to
	// the expiry pass.
	FindPendingForReminder(oldest, newest time.Time) ([]models.Booking, error)
	// FindPendingCreatedBefore returns pending bookings created at or
	// before the cutoff, i.e. holds whose window has fully elapsed.
	FindPendingCreatedBefore(cutoff time.Time) ([]models.Booking, error)
	// FindActiveByDate returns pending and confirmed bookings for a date.
	FindActiveByDate(date string) ([]models.Booking, error)
	// ListByStatus returns bookings in a given status, newest first. An
	// empty status returns all bookings.
	ListByStatus(status string, limit int64) ([]models.Booking, error)
}
