package ratelimitRepo

import (
	"context"
	"fmt"
	"time"

	"vibezone/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RateLimitRepository defines access to the append-only attempt log.
type RateLimitRepository interface {
	// Record appends one attempt row. Rows are never updated or deleted.
	Record(attempt *models.RateLimitAttempt) error
	// CountSince counts attempts for a key within the trailing window.
	CountSince(key, kind string, since time.Time) (int64, error)
}

// MongoRateLimitRepo implements RateLimitRepository using MongoDB.
type MongoRateLimitRepo struct {
	coll *mongo.Collection
}

// NewMongoRateLimitRepo creates a new instance of RateLimitRepository using MongoDB.
func NewMongoRateLimitRepo(db *mongo.Database) RateLimitRepository {
	repo := &MongoRateLimitRepo{coll: db.Collection("rate_limit_attempts")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create rate-limit indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRateLimitRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "key", Value: 1}, {Key: "kind", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			// Housekeeping: attempts are only ever counted within a short
			// trailing window, so let Mongo drop stale rows after a week.
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(7 * 24 * 3600),
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// Record appends one attempt row.
func (r *MongoRateLimitRepo) Record(attempt *models.RateLimitAttempt) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, attempt); err != nil {
		return fmt.Errorf("failed to record rate-limit attempt: %w", err)
	}
	return nil
}

// CountSince counts attempts for a key newer than the window start.
func (r *MongoRateLimitRepo) CountSince(key, kind string, since time.Time) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"key":        key,
		"kind":       kind,
		"created_at": bson.M{"$gte": since},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count rate-limit attempts for %s: %w", key, err)
	}
	return count, nil
}
