package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Reminder struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"user_id" bson:"user_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	DueDate     time.Time          `json:"due_date" bson:"due_date"`
	// Notified is set by the worker once the reminder has come due.
	Notified  bool      `json:"notified" bson:"notified"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (r *Reminder) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.DueDate.IsZero() {
		return fmt.Errorf("due date is required")
	}
	return nil
}
