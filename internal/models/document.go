package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DocStatusPending = "pending"
	DocStatusReady   = "ready"
	DocStatusFailed  = "failed"
)

// HealthDocument is a user-uploaded medical file (report, prescription scan,
// medication sheet). Text extraction runs asynchronously; ExtractedText is
// filled in once the worker has processed the file.
type HealthDocument struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        string             `json:"user_id" bson:"user_id"`
	OriginalName  string             `json:"original_name" bson:"original_name"`
	FileName      string             `json:"file_name" bson:"file_name"`
	FilePath      string             `json:"file_path" bson:"file_path"`
	Title         string             `json:"title" bson:"title"`
	DocumentType  string             `json:"document_type" bson:"document_type"`
	DocumentDate  *time.Time         `json:"document_date,omitempty" bson:"document_date,omitempty"`
	MimeType      string             `json:"mime_type" bson:"mime_type"`
	Status        string             `json:"status" bson:"status"`
	ExtractedText string             `json:"extracted_text,omitempty" bson:"extracted_text,omitempty"`
	UploadedAt    time.Time          `json:"uploaded_at" bson:"uploaded_at"`
}

var documentTypes = map[string]bool{
	"prescription": true,
	"report":       true,
	"medication":   true,
	"other":        true,
}

func (d *HealthDocument) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("title is required")
	}
	if d.DocumentType == "" {
		d.DocumentType = "other"
	}
	if !documentTypes[d.DocumentType] {
		return fmt.Errorf("unknown document type %q", d.DocumentType)
	}
	return nil
}
