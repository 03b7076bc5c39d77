// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"fmt"
	"time"

	"vibezone/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindPendingForReminder returns pending bookings created within
// (oldest, newest] that have not yet been reminded. The lower bound is
// exclusive so a hold created exactly at the oldest instant falls to the
// expiry pass instead.
func (r *MongoBookingRepo) FindPendingForReminder(oldest, newest time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"status":           models.StatusPending,
		"reminder_sent_at": bson.M{"$exists": false},
		"created_at":       bson.M{"$gt": oldest, "$lte": newest},
	}
	return r.find(filter, nil)
}

// FindPendingCreatedBefore returns pending bookings created at or before
// the cutoff, i.e. holds whose window has fully elapsed. The boundary is
// inclusive to match the lazy expiry check on the model.
func (r *MongoBookingRepo) FindPendingCreatedBefore(cutoff time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"status":     models.StatusPending,
		"created_at": bson.M{"$lte": cutoff},
	}
	return r.find(filter, nil)
}

// FindActiveByDate returns the pending and confirmed bookings for a date.
func (r *MongoBookingRepo) FindActiveByDate(date string) ([]models.Booking, error) {
	filter := bson.M{
		"event_date": date,
		"status":     bson.M{"$in": []string{models.StatusPending, models.StatusConfirmed}},
	}
	return r.find(filter, nil)
}

// ListByStatus returns bookings in a given status, newest first.
func (r *MongoBookingRepo) ListByStatus(status string, limit int64) ([]models.Booking, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	return r.find(filter, opts)
}

func (r *MongoBookingRepo) find(filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if opts == nil {
		opts = options.Find()
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
