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

type SymptomStore struct {
	coll *mongo.Collection
}

func NewSymptomStore(db *mongo.Database) *SymptomStore {
	return &SymptomStore{coll: db.Collection(database.CollSymptoms)}
}

func (s *SymptomStore) Create(ctx context.Context, sym *models.Symptom) error {
	res, err := s.coll.InsertOne(ctx, sym)
	if err != nil {
		return fmt.Errorf("insert symptom: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		sym.ID = id
	}
	return nil
}

func (s *SymptomStore) ListByUser(ctx context.Context, userID string) ([]models.Symptom, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list symptoms: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Symptom
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode symptoms: %w", err)
	}
	return out, nil
}

func (s *SymptomStore) Delete(ctx context.Context, userID, id string) error {
	return deleteByID(ctx, s.coll, userID, id, "symptom")
}
