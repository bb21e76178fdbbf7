package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitalsync/vitalsync/internal/database"
	"github.com/vitalsync/vitalsync/internal/models"
)

type ProfileStore struct {
	coll *mongo.Collection
}

func NewProfileStore(db *mongo.Database) *ProfileStore {
	return &ProfileStore{coll: db.Collection(database.CollProfiles)}
}

func (s *ProfileStore) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := s.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Upsert creates the profile on first save and updates it afterwards.
func (s *ProfileStore) Upsert(ctx context.Context, p *models.UserProfile) (*models.UserProfile, error) {
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"name":         p.Name,
			"email":        p.Email,
			"age":          p.Age,
			"gender":       p.Gender,
			"heart_rate":   p.HeartRate,
			"sleep_hours":  p.SleepHours,
			"active_hours": p.ActiveHours,
			"weight":       p.Weight,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{
			"user_id":    p.UserID,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved models.UserProfile
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"user_id": p.UserID}, update, opts).Decode(&saved)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return &saved, nil
}
