package models

import "time"

// Booking statuses. Transitions between them are enforced by the booking
// service state machine; repositories only ever apply conditional updates
// filtered on the expected current status.
const (
	StatusPending       = "pending"
	StatusConfirmed     = "confirmed"
	StatusExpired       = "expired"
	StatusCancelled     = "cancelled"
	StatusPaymentFailed = "payment_failed"
)

// Booking represents a booking record. A booking in "pending" status is a
// hold: the event date is reserved until the deposit is paid or the hold
// window elapses.
type Booking struct {
	ID            string `bson:"id" json:"id"`                         // Unique booking identifier (UUID)
	CustomerName  string `bson:"customer_name" json:"customerName"`    // Customer full name
	CustomerEmail string `bson:"customer_email" json:"customerEmail"`  // Lowercased email, identity key for rate limiting
	CustomerPhone string `bson:"customer_phone" json:"customerPhone"`  // Normalized to digits only
	Notes         string `bson:"notes,omitempty" json:"notes"`         // Free-text notes, length-bounded
	EventDate     string `bson:"event_date" json:"eventDate"`          // Event date in "YYYY-MM-DD" format, immutable after creation
	StartTime     string `bson:"start_time" json:"startTime"`          // Event start in "HH:MM"
	EndTime       string `bson:"end_time" json:"endTime"`              // Event end in "HH:MM"; end < start means next-day end
	VenueName     string `bson:"venue_name" json:"venueName"`          // Venue name
	StreetAddress string `bson:"street_address" json:"streetAddress"`  // Venue street address
	City          string `bson:"city" json:"city"`                     // Venue city
	State         string `bson:"state" json:"state"`                   // 2-letter US state/territory code
	ZipCode       string `bson:"zip_code" json:"zipCode"`              // 5-digit zip
	PackageType   string `bson:"package_type" json:"packageType"`      // Catalog package key
	AddOns        []string `bson:"add_ons,omitempty" json:"addOns"`    // Selected catalog add-on names
	TotalAmount   int    `bson:"total_amount" json:"totalAmount"`      // Computed total in whole dollars
	DepositAmount int    `bson:"deposit_amount" json:"depositAmount"`  // Deposit due to confirm the hold
	Status        string `bson:"status" json:"status"`                 // One of the Status* constants

	CreatedAt      time.Time  `bson:"created_at" json:"createdAt"`                             // Immutable; anchor for hold-expiry arithmetic
	UpdatedAt      time.Time  `bson:"updated_at" json:"updatedAt"`                             // Bumped on every write
	ConfirmedAt    *time.Time `bson:"confirmed_at,omitempty" json:"confirmedAt,omitempty"`     // Set when the deposit is received
	ReminderSentAt *time.Time `bson:"reminder_sent_at,omitempty" json:"reminderSentAt,omitempty"` // Idempotency guard for the hold-expiry reminder

	StripeSessionID       string `bson:"stripe_session_id,omitempty" json:"-"`        // Checkout session correlation
	StripePaymentIntentID string `bson:"stripe_payment_intent_id,omitempty" json:"-"` // Payment intent correlation
	GoogleCalendarEventID string `bson:"google_calendar_event_id,omitempty" json:"-"` // Idempotency guard for calendar sync

	Version int `bson:"version" json:"-"` // Incremented on every conditional update
}

// IsHoldExpired reports whether a pending hold has outlived the hold window.
// Expiry is a pure function of (status, created_at, now): the sweep
// materializes it into the status column, availability checks evaluate it
// lazily.
func (b *Booking) IsHoldExpired(now time.Time, holdWindow time.Duration) bool {
	if b.Status != StatusPending {
		return false
	}
	return now.Sub(b.CreatedAt) >= holdWindow
}

// BlocksDate reports whether this booking makes its event date unavailable
// for new holds.
func (b *Booking) BlocksDate(now time.Time, holdWindow time.Duration) bool {
	switch b.Status {
	case StatusConfirmed:
		return true
	case StatusPending:
		return !b.IsHoldExpired(now, holdWindow)
	default:
		return false
	}
}
