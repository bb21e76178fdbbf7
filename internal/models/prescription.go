package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prescription is the persisted result of one digitization run. Records are
// created once and never updated in place.
type Prescription struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        string             `json:"user_id" bson:"user_id"`
	ImageURL      string             `json:"image_url" bson:"image_url"`
	ExtractedText string             `json:"extracted_text" bson:"extracted_text"`
	Medicines     []string           `json:"medicines" bson:"medicines"`
	Reminders     []string           `json:"reminders" bson:"reminders"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}
