package calendar

import (
	"context"

	"vibezone/models"
)

// CalendarService mirrors bookings into an external calendar. All calls are
// best-effort: failures are logged by callers and never block a booking
// state transition.
type CalendarService interface {
	// Upsert creates the external event for a booking, or updates it in
	// place when the booking already carries an event id. Returns the
	// event id.
	Upsert(ctx context.Context, booking *models.Booking) (string, error)
	// Cancel marks the external event cancelled. A booking without an
	// event id is a no-op.
	Cancel(ctx context.Context, booking *models.Booking) error
}
