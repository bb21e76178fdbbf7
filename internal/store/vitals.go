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

type VitalStore struct {
	coll *mongo.Collection
}

func NewVitalStore(db *mongo.Database) *VitalStore {
	return &VitalStore{coll: db.Collection(database.CollVitalSigns)}
}

func (s *VitalStore) Create(ctx context.Context, v *models.VitalSign) error {
	res, err := s.coll.InsertOne(ctx, v)
	if err != nil {
		return fmt.Errorf("insert vital sign: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		v.ID = id
	}
	return nil
}

func (s *VitalStore) ListByUser(ctx context.Context, userID string) ([]models.VitalSign, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list vital signs: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.VitalSign
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode vital signs: %w", err)
	}
	return out, nil
}

func (s *VitalStore) Delete(ctx context.Context, userID, id string) error {
	return deleteByID(ctx, s.coll, userID, id, "vital sign")
}
