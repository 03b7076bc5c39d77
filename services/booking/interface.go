package booking

import (
	"context"
	"time"

	"vibezone/database/repository"
	"vibezone/models"
	"vibezone/services/calendar"
	"vibezone/services/notification"

	"go.uber.org/zap"
)

// BookingService defines the booking hold lifecycle: intake, checkout,
// payment reconciliation, sweep and admin transitions.
type BookingService interface {
	SubmitBooking(ctx context.Context, input BookingInput, fingerprint string) (*IntakeResult, error)
	StartCheckout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
	ConfirmFromCheckout(ctx context.Context, bookingID, paymentIntentID string) error
	MarkPaymentFailed(ctx context.Context, paymentIntentID string) error
	GetBookingForSession(bookingID, sessionID string) (*models.Booking, error)
	IsDateAvailable(date string) (bool, error)
	Sweep(ctx context.Context) (*SweepSummary, error)
	AdminConfirm(ctx context.Context, bookingID string) error
	AdminCancel(ctx context.Context, bookingID string) error
	AdminExpire(ctx context.Context, bookingID string) error
	ListBookings(status string, limit int64) ([]models.Booking, error)
}

// PaymentProvider starts an external checkout session for a deposit. The
// processor's checkout UI is an external redirect target; only the session
// handle comes back.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (sessionID, url string, err error)
}

// CheckoutSessionRequest carries what the payment processor needs to
// collect a deposit.
type CheckoutSessionRequest struct {
	BookingID     string
	CustomerEmail string
	Description   string
	AmountDollars int
}

// EmailVerifier is the slice of the verification service intake consumes:
// it checks for a verified code and marks it used.
type EmailVerifier interface {
	ConsumeVerified(email string, now time.Time) error
}

// ReminderScheduler enqueues a delayed event reminder for delivery by the
// background worker.
type ReminderScheduler interface {
	ScheduleEventReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// Policy bundles the numeric knobs of the hold lifecycle.
type Policy struct {
	HoldWindow      time.Duration // Hold lifetime from creation (72h)
	ReminderLead    time.Duration // Elapsed time before the reminder window opens (48h)
	RateLimitWindow time.Duration // Trailing window for intake attempts (10m)
	RateLimitMax    int           // Max intake attempts per identity per window (3)
	RequireVerified bool          // Whether intake demands a verified email
	OperatorEmail   string        // Operator notification address
}

// DefaultPolicy returns the production hold policy.
func DefaultPolicy(operatorEmail string) Policy {
	return Policy{
		HoldWindow:      72 * time.Hour,
		ReminderLead:    48 * time.Hour,
		RateLimitWindow: 10 * time.Minute,
		RateLimitMax:    3,
		OperatorEmail:   operatorEmail,
	}
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo         repository.BookingRepository
	RateRepo     repository.RateLimitRepository
	ReminderRepo repository.ReminderRepository
	Verifier     EmailVerifier
	Payments     PaymentProvider
	Email        notification.EmailSender
	Calendar     calendar.CalendarService
	Scheduler    ReminderScheduler
	Policy       Policy
	Logger       *zap.Logger

	// Now is the clock hook; tests override it. Nil means time.Now.
	Now func() time.Time
}

func (svc *DefaultBookingService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}
