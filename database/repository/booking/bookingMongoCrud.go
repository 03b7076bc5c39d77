// File: database/repository/booking/bookingMongoCrud.go
package bookingRepo

import (
	"errors"
	"fmt"
	"time"

	"vibezone/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no booking matches the lookup.
var ErrNotFound = errors.New("booking not found")

// ErrDateTaken is returned when the partial unique index rejects a second
// active booking for the same event date.
var ErrDateTaken = errors.New("event date already has an active booking")

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDateTaken
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking document by its ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// GetByPaymentIntentID retrieves the booking correlated with a payment intent.
func (r *MongoBookingRepo) GetByPaymentIntentID(paymentIntentID string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"stripe_payment_intent_id": paymentIntentID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking for payment intent %s: %w", paymentIntentID, err)
	}
	return &booking, nil
}

// TransitionStatus conditionally updates the status of a booking. The filter
// on the current status makes the write a compare-and-swap: a concurrent
// transition that got there first leaves this one with MatchedCount == 0.
func (r *MongoBookingRepo) TransitionStatus(id, from, to string, at time.Time) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{
		"$set": bson.M{"status": to, "updated_at": at},
		"$inc": bson.M{"version": 1},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to transition booking %s from %s to %s: %w", id, from, to, err)
	}
	return result.MatchedCount > 0, nil
}

// SetConfirmed moves a booking from the expected status to confirmed,
// stamping confirmed_at and the payment-intent correlation in the same
// atomic write. Both the initial payment and a retry after payment_failed
// go through here so the confirmation stamps are never skipped.
func (r *MongoBookingRepo) SetConfirmed(id, paymentIntentID, from string, at time.Time) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	set := bson.M{
		"status":       models.StatusConfirmed,
		"confirmed_at": at,
		"updated_at":   at,
	}
	if paymentIntentID != "" {
		set["stripe_payment_intent_id"] = paymentIntentID
	}
	update := bson.M{"$set": set, "$inc": bson.M{"version": 1}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to confirm booking %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// SetCheckoutSession records the checkout session id on the booking.
func (r *MongoBookingRepo) SetCheckoutSession(id, sessionID string) error {
	return r.setFields(id, bson.M{"stripe_session_id": sessionID})
}

// SetCalendarEventID records the external calendar event id on the booking.
func (r *MongoBookingRepo) SetCalendarEventID(id, eventID string) error {
	return r.setFields(id, bson.M{"google_calendar_event_id": eventID})
}

// SetReminderSent stamps the reminder guard only when it is still unset and
// the booking is still pending, so a concurrent sweep cannot double-send.
func (r *MongoBookingRepo) SetReminderSent(id string, at time.Time) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":               id,
		"status":           models.StatusPending,
		"reminder_sent_at": bson.M{"$exists": false},
	}
	update := bson.M{
		"$set": bson.M{"reminder_sent_at": at, "updated_at": at},
		"$inc": bson.M{"version": 1},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to stamp reminder for booking %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

func (r *MongoBookingRepo) setFields(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	update := bson.M{"$set": fields, "$inc": bson.M{"version": 1}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
