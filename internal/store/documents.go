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

type DocumentStore struct {
	coll *mongo.Collection
}

func NewDocumentStore(db *mongo.Database) *DocumentStore {
	return &DocumentStore{coll: db.Collection(database.CollDocuments)}
}

func (s *DocumentStore) Create(ctx context.Context, d *models.HealthDocument) error {
	res, err := s.coll.InsertOne(ctx, d)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = id
	}
	return nil
}

func (s *DocumentStore) GetByID(ctx context.Context, id string) (*models.HealthDocument, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid document ID: %w", err)
	}

	var d models.HealthDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

func (s *DocumentStore) ListByUser(ctx context.Context, userID string) ([]models.HealthDocument, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "document_type", Value: 1},
		{Key: "document_date", Value: -1},
	})
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.HealthDocument
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return out, nil
}

func (s *DocumentStore) Delete(ctx context.Context, userID, id string) error {
	return deleteByID(ctx, s.coll, userID, id, "document")
}

func (s *DocumentStore) SetExtractedText(ctx context.Context, id primitive.ObjectID, text, status string) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"extracted_text": text,
		"status":         status,
	}})
	if err != nil {
		return fmt.Errorf("update document text: %w", err)
	}
	return nil
}
