package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitalsync/vitalsync/internal/database"
	"github.com/vitalsync/vitalsync/internal/models"
)

type ReminderStore struct {
	coll *mongo.Collection
}

func NewReminderStore(db *mongo.Database) *ReminderStore {
	return &ReminderStore{coll: db.Collection(database.CollReminders)}
}

func (s *ReminderStore) Create(ctx context.Context, r *models.Reminder) error {
	res, err := s.coll.InsertOne(ctx, r)
	if err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = id
	}
	return nil
}

func (s *ReminderStore) ListByUser(ctx context.Context, userID string) ([]models.Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Reminder
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode reminders: %w", err)
	}
	return out, nil
}

func (s *ReminderStore) Delete(ctx context.Context, userID, id string) error {
	return deleteByID(ctx, s.coll, userID, id, "reminder")
}

// ListDue returns reminders that have come due and have not been marked
// notified yet. Used by the worker's periodic scan.
func (s *ReminderStore) ListDue(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	cursor, err := s.coll.Find(ctx, bson.M{
		"due_date": bson.M{"$lte": now},
		"notified": false,
	})
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Reminder
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode due reminders: %w", err)
	}
	return out, nil
}

func (s *ReminderStore) MarkNotified(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"notified": true}})
	if err != nil {
		return fmt.Errorf("mark reminder notified: %w", err)
	}
	return nil
}
