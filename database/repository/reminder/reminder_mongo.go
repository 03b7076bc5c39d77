package reminderRepo

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

// ErrNotFound is returned when no reminder matches the lookup.
var ErrNotFound = errors.New("reminder not found")

// ReminderRepository defines access to scheduled reminder records.
type ReminderRepository interface {
	// Create inserts a new reminder row in pending status.
	Create(reminder *models.Reminder) error
	// GetByID retrieves a reminder by its unique ID.
	GetByID(id string) (*models.Reminder, error)
	// MarkSent moves a pending reminder to sent.
	MarkSent(id string, at time.Time) error
	// MarkFailed moves a pending reminder to failed with an error message.
	MarkFailed(id string, at time.Time, errMsg string) error
}

// MongoReminderRepo implements ReminderRepository using MongoDB.
type MongoReminderRepo struct {
	coll *mongo.Collection
}

// NewMongoReminderRepo creates a new instance of ReminderRepository using MongoDB.
func NewMongoReminderRepo(db *mongo.Database) ReminderRepository {
	repo := &MongoReminderRepo{coll: db.Collection("reminders")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create reminder indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoReminderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a new reminder row.
func (r *MongoReminderRepo) Create(reminder *models.Reminder) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = now
	}
	reminder.UpdatedAt = now
	if reminder.Status == "" {
		reminder.Status = models.ReminderPending
	}

	if _, err := r.coll.InsertOne(ctx, reminder); err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// GetByID retrieves a reminder by its ID.
func (r *MongoReminderRepo) GetByID(id string) (*models.Reminder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var reminder models.Reminder
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&reminder)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch reminder with id %s: %w", id, err)
	}
	return &reminder, nil
}

// MarkSent moves a reminder to sent status.
func (r *MongoReminderRepo) MarkSent(id string, at time.Time) error {
	return r.setStatus(id, models.ReminderSent, at, "")
}

// MarkFailed moves a reminder to failed status with the send error.
func (r *MongoReminderRepo) MarkFailed(id string, at time.Time, errMsg string) error {
	return r.setStatus(id, models.ReminderFailed, at, errMsg)
}

func (r *MongoReminderRepo) setStatus(id, status string, at time.Time, errMsg string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"status": status, "updated_at": at}
	if errMsg != "" {
		set["error_message"] = errMsg
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update reminder %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
