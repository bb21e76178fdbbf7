package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitalsync/vitalsync/internal/database"
	"github.com/vitalsync/vitalsync/internal/models"
)

type ActivityStore struct {
	coll *mongo.Collection
}

func NewActivityStore(db *mongo.Database) *ActivityStore {
	return &ActivityStore{coll: db.Collection(database.CollActivities)}
}

func (s *ActivityStore) Create(ctx context.Context, a *models.Activity) error {
	res, err := s.coll.InsertOne(ctx, a)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = id
	}
	return nil
}

func (s *ActivityStore) ListByUser(ctx context.Context, userID string) ([]models.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Activity
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return out, nil
}

func (s *ActivityStore) Delete(ctx context.Context, userID, id string) error {
	return deleteByID(ctx, s.coll, userID, id, "activity")
}

type SleepStore struct {
	coll *mongo.Collection
}

func NewSleepStore(db *mongo.Database) *SleepStore {
	return &SleepStore{coll: db.Collection(database.CollSleep)}
}

func (s *SleepStore) Create(ctx context.Context, entry *models.Sleep) error {
	res, err := s.coll.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("insert sleep entry: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = id
	}
	return nil
}

func (s *SleepStore) ListByUser(ctx context.Context, userID string) ([]models.Sleep, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list sleep entries: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Sleep
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode sleep entries: %w", err)
	}
	return out, nil
}

func (s *SleepStore) Delete(ctx context.Context, userID, id string) error {
	return deleteByID(ctx, s.coll, userID, id, "sleep entry")
}

func deleteByID(ctx context.Context, coll *mongo.Collection, userID, id, kind string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid %s ID: %w", kind, err)
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
