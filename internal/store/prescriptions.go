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

type PrescriptionStore struct {
	coll *mongo.Collection
}

func NewPrescriptionStore(db *mongo.Database) *PrescriptionStore {
	return &PrescriptionStore{coll: db.Collection(database.CollPrescriptions)}
}

func (s *PrescriptionStore) Create(ctx context.Context, p *models.Prescription) error {
	res, err := s.coll.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("insert prescription: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

func (s *PrescriptionStore) GetByID(ctx context.Context, userID, id string) (*models.Prescription, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid prescription ID: %w", err)
	}

	var p models.Prescription
	err = s.coll.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&p)
	if err != nil {
		return nil, fmt.Errorf("get prescription: %w", err)
	}
	return &p, nil
}

func (s *PrescriptionStore) ListByUser(ctx context.Context, userID string, limit int64) ([]models.Prescription, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Prescription
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode prescriptions: %w", err)
	}
	return out, nil
}
