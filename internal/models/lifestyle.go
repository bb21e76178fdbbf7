package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Activity struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID         string             `json:"user_id" bson:"user_id"`
	Date           time.Time          `json:"date" bson:"date"`
	Steps          int                `json:"steps" bson:"steps"`
	ActiveMinutes  int                `json:"active_minutes" bson:"active_minutes"`
	CaloriesBurned int                `json:"calories_burned" bson:"calories_burned"`
	ActivityType   string             `json:"activity_type" bson:"activity_type"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
}

var activityTypes = map[string]bool{
	"walking": true,
	"running": true,
	"cycling": true,
	"gym":     true,
	"other":   true,
}

func (a *Activity) Validate() error {
	if a.ActivityType == "" {
		a.ActivityType = "other"
	}
	if !activityTypes[a.ActivityType] {
		return fmt.Errorf("unknown activity type %q", a.ActivityType)
	}
	if a.Steps < 0 || a.ActiveMinutes < 0 || a.CaloriesBurned < 0 {
		return fmt.Errorf("activity metrics must be non-negative")
	}
	return nil
}

type Sleep struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          string             `json:"user_id" bson:"user_id"`
	Date            time.Time          `json:"date" bson:"date"`
	DurationHours   float64            `json:"duration_hours" bson:"duration_hours"`
	DeepSleepHours  float64            `json:"deep_sleep_hours,omitempty" bson:"deep_sleep_hours,omitempty"`
	LightSleepHours float64            `json:"light_sleep_hours,omitempty" bson:"light_sleep_hours,omitempty"`
	REMSleepHours   float64            `json:"rem_sleep_hours,omitempty" bson:"rem_sleep_hours,omitempty"`
	QualityRating   int                `json:"quality_rating,omitempty" bson:"quality_rating,omitempty"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

func (s *Sleep) Validate() error {
	if s.DurationHours < 0 {
		return fmt.Errorf("duration must be non-negative")
	}
	if s.QualityRating != 0 && (s.QualityRating < 1 || s.QualityRating > 5) {
		return fmt.Errorf("quality rating must be between 1 and 5")
	}
	return nil
}
