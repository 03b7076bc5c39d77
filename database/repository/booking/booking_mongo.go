package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"vibezone/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	repo := &MongoBookingRepo{coll: db.Collection("bookings")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
// The partial unique index on event_date closes the double-hold race for
// dates that already carry a pending or confirmed booking (requires
// MongoDB >= 5.0 for $in in a partial filter).
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "customer_email", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "stripe_payment_intent_id", Value: 1}},
			Options: options.Index().SetPartialFilterExpression(
				bson.M{"stripe_payment_intent_id": bson.M{"$exists": true}},
			),
		},
		{
			Keys: bson.D{{Key: "event_date", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{"status": bson.M{"$in": []string{models.StatusPending, models.StatusConfirmed}}},
			),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
