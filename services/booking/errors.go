package booking

import (
	"errors"
	"fmt"
)

// Sentinel errors for policy and state rejections. Handlers map these to
// HTTP statuses; everything else is a transient infrastructure failure that
// gets logged in full and reduced to a generic message for the caller.
var (
	// ErrRateLimited means the identity exhausted its attempt budget.
	ErrRateLimited = errors.New("too many booking attempts, try again later")
	// ErrSuspiciousSubmission means the honeypot field was non-empty. The
	// handler answers success-shaped so bots get no signal.
	ErrSuspiciousSubmission = errors.New("suspicious submission")
	// ErrDateUnavailable means the event date already carries an active hold
	// or confirmed booking.
	ErrDateUnavailable = errors.New("selected date is no longer available")
	// ErrBookingNotFound means no booking matched the lookup.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrStateConflict means a concurrent writer transitioned the booking
	// first and the requested transition no longer applies.
	ErrStateConflict = errors.New("booking is not in the expected status")
	// ErrVerificationRequired means intake demands a verified email and
	// none was found.
	ErrVerificationRequired = errors.New("email address has not been verified")
	// ErrLookupFailed means a pre-insert read (rate limit, availability)
	// failed transiently. Retryable, unlike a failed write.
	ErrLookupFailed = errors.New("temporary lookup failure")
)

// ValidationError reports the first violated intake rule. The message is
// safe to show to the end user verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
