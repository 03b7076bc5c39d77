package booking

import (
	"context"
	"fmt"

	"vibezone/models"
	"vibezone/services/notification"

	"go.uber.org/zap"
)

// SweepResult is the per-booking outcome of one sweep pass.
type SweepResult struct {
	BookingID string `json:"booking_id"`
	Action    string `json:"action"` // "reminder" or "expire"
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// SweepSummary aggregates a sweep invocation for observability.
type SweepSummary struct {
	Count   int           `json:"count"`
	Results []SweepResult `json:"results"`
}

// Sweep runs the reminder pass and the expiry pass. Safe to invoke
// repeatedly: each booking carries its own idempotency guard
// (reminder_sent_at, status), and one bad record never blocks the batch.
func (svc *DefaultBookingService) Sweep(ctx context.Context) (*SweepSummary, error) {
	now := svc.now()
	summary := &SweepSummary{}

	// Reminder pass: pending holds 48-72 hours old, not yet reminded.
	oldest := now.Add(-svc.Policy.HoldWindow)
	newest := now.Add(-svc.Policy.ReminderLead)
	reminders, err := svc.Repo.FindPendingForReminder(oldest, newest)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for reminders: %w", err)
	}
	for i := range reminders {
		summary.Results = append(summary.Results, svc.remindOne(ctx, &reminders[i]))
	}

	// Expiry pass: pending holds past the full window.
	expired, err := svc.Repo.FindPendingCreatedBefore(oldest)
	if err != nil {
		return nil, fmt.Errorf("failed to query expired holds: %w", err)
	}
	for i := range expired {
		summary.Results = append(summary.Results, svc.expireOne(ctx, &expired[i]))
	}

	summary.Count = len(summary.Results)
	svc.Logger.Info("Sweep completed",
		zap.Int("reminders", len(reminders)),
		zap.Int("expired", len(expired)))
	return summary, nil
}

// remindOne sends the 24-hours-left emails and stamps the guard only after
// the customer send succeeds, so a failed send is retried on the next sweep.
func (svc *DefaultBookingService) remindOne(ctx context.Context, booking *models.Booking) SweepResult {
	result := SweepResult{BookingID: booking.ID, Action: "reminder"}

	customer := notification.Email{
		To:      booking.CustomerEmail,
		Subject: "24 hours left to secure your event date",
		Body: fmt.Sprintf("<p>Hi %s,</p><p>Your hold on %s expires in 24 hours. Pay your $%d deposit to lock it in before the date is released.</p>",
			booking.CustomerName, booking.EventDate, booking.DepositAmount),
	}
	if err := svc.Email.Send(ctx, customer); err != nil {
		svc.Logger.Error("Failed to send hold reminder",
			zap.String("booking_id", booking.ID), zap.Error(err))
		result.Error = err.Error()
		return result
	}

	operator := notification.Email{
		To:      svc.Policy.OperatorEmail,
		Subject: fmt.Sprintf("Hold expiring soon: %s on %s", booking.CustomerName, booking.EventDate),
		Body:    fmt.Sprintf("<p>Booking %s has not paid its deposit and expires in 24 hours.</p>", booking.ID),
	}
	if err := svc.Email.Send(ctx, operator); err != nil {
		// Operator copy is best-effort; the customer reminder went out.
		svc.Logger.Error("Failed to send operator reminder copy",
			zap.String("booking_id", booking.ID), zap.Error(err))
	}

	stamped, err := svc.Repo.SetReminderSent(booking.ID, svc.now())
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if !stamped {
		svc.Logger.Info("Reminder guard already set, concurrent sweep won",
			zap.String("booking_id", booking.ID))
	}
	result.Success = true
	return result
}

// expireOne transitions a stale hold to expired, then notifies. The emails
// are best-effort: a booking that fails to notify is still correctly
// expired, and only the winning transition sends at all.
func (svc *DefaultBookingService) expireOne(ctx context.Context, booking *models.Booking) SweepResult {
	result := SweepResult{BookingID: booking.ID, Action: "expire"}

	ok, err := svc.Repo.TransitionStatus(booking.ID, models.StatusPending, models.StatusExpired, svc.now())
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if !ok {
		// Someone else transitioned it first (payment, admin, prior sweep).
		result.Success = true
		return result
	}

	svc.sendExpiryEmails(ctx, booking)
	result.Success = true
	return result
}

// sendExpiryEmails tells the customer the date is released and invites
// rebooking, and notifies the operator. Business-required messaging, not
// incidental logging.
func (svc *DefaultBookingService) sendExpiryEmails(ctx context.Context, booking *models.Booking) {
	customer := notification.Email{
		To:      booking.CustomerEmail,
		Subject: "Your booking hold has expired",
		Body: fmt.Sprintf("<p>Hi %s,</p><p>We did not receive your deposit in time, so your hold on %s has been released and the date is open again. If you still want it, you can rebook any time.</p>",
			booking.CustomerName, booking.EventDate),
	}
	if err := svc.Email.Send(ctx, customer); err != nil {
		svc.Logger.Error("Failed to send expiry email to customer",
			zap.String("booking_id", booking.ID), zap.Error(err))
	}

	operator := notification.Email{
		To:      svc.Policy.OperatorEmail,
		Subject: fmt.Sprintf("Hold expired: %s on %s", booking.CustomerName, booking.EventDate),
		Body:    fmt.Sprintf("<p>Booking %s expired without payment. The date %s is available again.</p>", booking.ID, booking.EventDate),
	}
	if err := svc.Email.Send(ctx, operator); err != nil {
		svc.Logger.Error("Failed to send expiry email to operator",
			zap.String("booking_id", booking.ID), zap.Error(err))
	}
}
