package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProfile holds the demographic and baseline data the dashboard shows.
// Identity itself lives with the external provider; UserID is its subject.
type UserProfile struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"user_id" bson:"user_id"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Age         int                `json:"age,omitempty" bson:"age,omitempty"`
	Gender      string             `json:"gender,omitempty" bson:"gender,omitempty"`
	HeartRate   int                `json:"heart_rate,omitempty" bson:"heart_rate,omitempty"`
	SleepHours  float64            `json:"sleep_hours,omitempty" bson:"sleep_hours,omitempty"`
	ActiveHours float64            `json:"active_hours,omitempty" bson:"active_hours,omitempty"`
	Weight      float64            `json:"weight,omitempty" bson:"weight,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

func (p *UserProfile) Validate() error {
	if p.Name == "" || p.Email == "" {
		return fmt.Errorf("name and email are required")
	}
	return nil
}
