package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Symptom struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Name      string             `json:"name" bson:"name"`
	Intensity int                `json:"intensity" bson:"intensity"`
	Date      time.Time          `json:"date" bson:"date"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

func (s *Symptom) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Intensity < 1 || s.Intensity > 5 {
		return fmt.Errorf("intensity must be between 1 and 5")
	}
	return nil
}
