package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "vibezone/database/repository/booking"
	"vibezone/models"
	"vibezone/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const eventReminderLead = 7 * 24 * time.Hour

// ConfirmFromCheckout transitions a booking to confirmed after the payment
// processor reports a completed checkout session. The conditional update is
// the idempotency guard: only the delivery that wins the pending ->
// confirmed write runs the side effects, so a redelivered webhook never
// double-sends confirmation email or re-creates the calendar event.
func (svc *DefaultBookingService) ConfirmFromCheckout(ctx context.Context, bookingID, paymentIntentID string) error {
	now := svc.now()

	ok, err := svc.Repo.SetConfirmed(bookingID, paymentIntentID, models.StatusPending, now)
	if err != nil {
		return fmt.Errorf("failed to confirm booking %s: %w", bookingID, err)
	}
	if !ok {
		booking, err := svc.Repo.GetByID(bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to load booking %s: %w", bookingID, err)
		}
		if booking.Status == models.StatusConfirmed {
			svc.Logger.Info("Confirmation redelivered, booking already confirmed",
				zap.String("booking_id", bookingID))
			return nil
		}
		// A retried payment can still confirm a payment_failed booking.
		// The retry takes the same stamping write so confirmed_at and the
		// new payment intent land together with the status flip.
		if booking.Status == models.StatusPaymentFailed {
			moved, err := svc.Repo.SetConfirmed(bookingID, paymentIntentID, models.StatusPaymentFailed, now)
			if err != nil {
				return fmt.Errorf("failed to confirm booking %s after retry: %w", bookingID, err)
			}
			if !moved {
				return ErrStateConflict
			}
		} else {
			return ErrStateConflict
		}
	}

	booking, err := svc.Repo.GetByID(bookingID)
	if err != nil {
		return fmt.Errorf("failed to reload confirmed booking %s: %w", bookingID, err)
	}

	svc.runConfirmationSideEffects(ctx, booking)
	return nil
}

// runConfirmationSideEffects performs the best-effort work that follows a
// confirmation: calendar sync, customer and operator emails, and the
// scheduled pre-event reminder. Failures are logged and never unwind the
// committed transition.
func (svc *DefaultBookingService) runConfirmationSideEffects(ctx context.Context, booking *models.Booking) {
	svc.syncCalendar(ctx, booking)

	customer := notification.Email{
		To:      booking.CustomerEmail,
		Subject: "Your DJ booking is confirmed!",
		Body: fmt.Sprintf("<p>Hi %s,</p><p>Your deposit is in and your event on %s is locked. See you on the dance floor!</p>",
			booking.CustomerName, booking.EventDate),
	}
	if err := svc.Email.Send(ctx, customer); err != nil {
		svc.Logger.Error("Failed to send confirmation email to customer",
			zap.String("booking_id", booking.ID), zap.Error(err))
	}
	operator := notification.Email{
		To:      svc.Policy.OperatorEmail,
		Subject: fmt.Sprintf("Booking confirmed: %s on %s", booking.CustomerName, booking.EventDate),
		Body: fmt.Sprintf("<p>Booking %s (%s) is confirmed. Deposit $%d received.</p>",
			booking.ID, booking.PackageType, booking.DepositAmount),
	}
	if err := svc.Email.Send(ctx, operator); err != nil {
		svc.Logger.Error("Failed to send confirmation email to operator",
			zap.String("booking_id", booking.ID), zap.Error(err))
	}

	svc.scheduleEventReminder(booking)
}

// syncCalendar upserts the external calendar event. The stored event id is
// the idempotency guard: present means update-in-place, never a second
// creation.
func (svc *DefaultBookingService) syncCalendar(ctx context.Context, booking *models.Booking) {
	if svc.Calendar == nil {
		return
	}
	eventID, err := svc.Calendar.Upsert(ctx, booking)
	if err != nil {
		svc.Logger.Error("Calendar sync failed",
			zap.String("booking_id", booking.ID), zap.Error(err))
		return
	}
	if booking.GoogleCalendarEventID == "" && eventID != "" {
		if err := svc.Repo.SetCalendarEventID(booking.ID, eventID); err != nil {
			svc.Logger.Error("Failed to record calendar event id",
				zap.String("booking_id", booking.ID), zap.Error(err))
			return
		}
		booking.GoogleCalendarEventID = eventID
	}
}

// scheduleEventReminder queues a "your event is coming up" email for seven
// days before the event date.
func (svc *DefaultBookingService) scheduleEventReminder(booking *models.Booking) {
	if svc.Scheduler == nil || svc.ReminderRepo == nil {
		return
	}
	eventDate, err := time.ParseInLocation("2006-01-02", booking.EventDate, time.Local)
	if err != nil {
		return
	}
	fireAt := eventDate.Add(-eventReminderLead)
	if !fireAt.After(svc.now()) {
		return
	}

	reminder := &models.Reminder{
		ID:           uuid.New().String(),
		BookingID:    booking.ID,
		Type:         models.ReminderTypeEventUpcoming,
		ScheduledFor: fireAt,
		Status:       models.ReminderPending,
	}
	if err := svc.ReminderRepo.Create(reminder); err != nil {
		svc.Logger.Error("Failed to create reminder record",
			zap.String("booking_id", booking.ID), zap.Error(err))
		return
	}
	payload := models.ReminderPayload{
		ReminderID: reminder.ID,
		BookingID:  booking.ID,
		FireDate:   fireAt.Format(time.RFC3339),
	}
	if err := svc.Scheduler.ScheduleEventReminder(payload, fireAt); err != nil {
		svc.Logger.Error("Failed to enqueue reminder task",
			zap.String("booking_id", booking.ID), zap.Error(err))
	}
}

// MarkPaymentFailed records a failed payment attempt. Informational only:
// the hold is left for the sweep or an admin, and the date is not released.
func (svc *DefaultBookingService) MarkPaymentFailed(ctx context.Context, paymentIntentID string) error {
	booking, err := svc.Repo.GetByPaymentIntentID(paymentIntentID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			svc.Logger.Warn("Payment failure for unknown payment intent",
				zap.String("payment_intent", paymentIntentID))
			return nil
		}
		return fmt.Errorf("failed to resolve payment intent %s: %w", paymentIntentID, err)
	}

	ok, err := svc.Repo.TransitionStatus(booking.ID, models.StatusPending, models.StatusPaymentFailed, svc.now())
	if err != nil {
		return fmt.Errorf("failed to mark booking %s payment_failed: %w", booking.ID, err)
	}
	if !ok {
		svc.Logger.Info("Payment failure ignored, booking no longer pending",
			zap.String("booking_id", booking.ID), zap.String("status", booking.Status))
	}
	return nil
}

// AdminConfirm force-confirms a booking without a payment event.
func (svc *DefaultBookingService) AdminConfirm(ctx context.Context, bookingID string) error {
	return svc.ConfirmFromCheckout(ctx, bookingID, "")
}

// AdminCancel cancels a pending or confirmed booking and updates the
// external calendar best-effort.
func (svc *DefaultBookingService) AdminCancel(ctx context.Context, bookingID string) error {
	booking, err := svc.Repo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	if !CanTransition(booking.Status, models.StatusCancelled) {
		return ErrStateConflict
	}

	ok, err := svc.Repo.TransitionStatus(bookingID, booking.Status, models.StatusCancelled, svc.now())
	if err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", bookingID, err)
	}
	if !ok {
		return ErrStateConflict
	}

	if svc.Calendar != nil {
		if err := svc.Calendar.Cancel(ctx, booking); err != nil {
			svc.Logger.Error("Failed to cancel calendar event",
				zap.String("booking_id", bookingID), zap.Error(err))
		}
	}
	return nil
}

// AdminExpire force-expires a pending hold and sends the expiry emails.
func (svc *DefaultBookingService) AdminExpire(ctx context.Context, bookingID string) error {
	booking, err := svc.Repo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}

	ok, err := svc.Repo.TransitionStatus(bookingID, models.StatusPending, models.StatusExpired, svc.now())
	if err != nil {
		return fmt.Errorf("failed to expire booking %s: %w", bookingID, err)
	}
	if !ok {
		return ErrStateConflict
	}
	svc.sendExpiryEmails(ctx, booking)
	return nil
}

// ListBookings returns bookings for admin tooling.
func (svc *DefaultBookingService) ListBookings(status string, limit int64) ([]models.Booking, error) {
	if status != "" && !ValidStatus(status) {
		return nil, newValidationError("status", "unknown booking status")
	}
	return svc.Repo.ListByStatus(status, limit)
}
