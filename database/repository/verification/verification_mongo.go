package verificationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibezone/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no verification code matches the lookup.
var ErrNotFound = errors.New("verification code not found")

// VerificationRepository defines access to issued email-verification codes.
type VerificationRepository interface {
	// Create inserts a new verification code row.
	Create(code *models.VerificationCode) error
	// FindLatest returns the most recently created row matching
	// (email, code) exactly.
	FindLatest(email, code string) (*models.VerificationCode, error)
	// FindLatestVerified returns the most recent verified, unconsumed row
	// for an email.
	FindLatestVerified(email string) (*models.VerificationCode, error)
	// MarkVerified stamps verified_at on a row.
	MarkVerified(id string, at time.Time) error
	// MarkUsed stamps used_at on a row; called when an intake consumes the
	// verification.
	MarkUsed(id string, at time.Time) error
	// CountIssuedSince counts codes issued to an email within the trailing
	// window; this is the verification service's own rate-limit signal.
	CountIssuedSince(email string, since time.Time) (int64, error)
}

// MongoVerificationRepo implements VerificationRepository using MongoDB.
type MongoVerificationRepo struct {
	coll *mongo.Collection
}

// NewMongoVerificationRepo creates a new instance of VerificationRepository using MongoDB.
func NewMongoVerificationRepo(db *mongo.Database) VerificationRepository {
	repo := &MongoVerificationRepo{coll: db.Collection("verification_codes")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create verification indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoVerificationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "code", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a new verification code row.
func (r *MongoVerificationRepo) Create(code *models.VerificationCode) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, code); err != nil {
		return fmt.Errorf("failed to create verification code: %w", err)
	}
	return nil
}

// FindLatest returns the most recent row matching (email, code).
func (r *MongoVerificationRepo) FindLatest(email, code string) (*models.VerificationCode, error) {
	return r.findOne(bson.M{"email": email, "code": code})
}

// FindLatestVerified returns the most recent verified, unconsumed row for an email.
func (r *MongoVerificationRepo) FindLatestVerified(email string) (*models.VerificationCode, error) {
	return r.findOne(bson.M{
		"email":       email,
		"verified_at": bson.M{"$exists": true},
		"used_at":     bson.M{"$exists": false},
	})
}

func (r *MongoVerificationRepo) findOne(filter bson.M) (*models.VerificationCode, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var code models.VerificationCode
	err := r.coll.FindOne(ctx, filter, opts).Decode(&code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch verification code: %w", err)
	}
	return &code, nil
}

// MarkVerified stamps verified_at on a row.
func (r *MongoVerificationRepo) MarkVerified(id string, at time.Time) error {
	return r.stamp(id, "verified_at", at)
}

// MarkUsed stamps used_at on a row.
func (r *MongoVerificationRepo) MarkUsed(id string, at time.Time) error {
	return r.stamp(id, "used_at", at)
}

func (r *MongoVerificationRepo) stamp(id, field string, at time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{field: at}})
	if err != nil {
		return fmt.Errorf("failed to update verification code %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountIssuedSince counts codes issued to an email after the window start.
func (r *MongoVerificationRepo) CountIssuedSince(email string, since time.Time) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"email": email, "created_at": bson.M{"$gte": since}}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count verification codes for %s: %w", email, err)
	}
	return count, nil
}
