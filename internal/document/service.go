package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vitalsync/vitalsync/internal/models"
	"github.com/vitalsync/vitalsync/internal/queue"
	"github.com/vitalsync/vitalsync/internal/storage"
	"github.com/vitalsync/vitalsync/internal/store"
	"github.com/vitalsync/vitalsync/pkg/textextract"
)

// Service manages user-uploaded medical documents: disk storage, the Mongo
// record, and the asynchronous text-extraction job.
type Service struct {
	docs  *store.DocumentStore
	files storage.FileStore
	jobs  *queue.Client
}

func NewService(docs *store.DocumentStore, files storage.FileStore, jobs *queue.Client) *Service {
	return &Service{docs: docs, files: files, jobs: jobs}
}

type UploadRequest struct {
	UserID       string
	OriginalName string
	Title        string
	DocumentType string
	DocumentDate *time.Time
	MimeType     string
	Data         io.Reader
}

func (s *Service) Upload(ctx context.Context, req UploadRequest) (*models.HealthDocument, error) {
	doc := &models.HealthDocument{
		UserID:       req.UserID,
		OriginalName: req.OriginalName,
		Title:        req.Title,
		DocumentType: req.DocumentType,
		DocumentDate: req.DocumentDate,
		MimeType:     req.MimeType,
		Status:       models.DocStatusReady,
		UploadedAt:   time.Now().UTC(),
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.files.Save(req.OriginalName, req.Data)
	if err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}
	doc.FileName = saved.FileName
	doc.FilePath = s.files.PublicPath(saved.FileName)

	if textextract.Supported(req.MimeType) {
		doc.Status = models.DocStatusPending
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		// Avoid orphan files when the record cannot be written.
		if delErr := s.files.Delete(saved.FileName); delErr != nil {
			slog.Warn("failed to remove orphaned upload", "file", saved.FileName, "error", delErr)
		}
		return nil, err
	}

	if doc.Status == models.DocStatusPending && s.jobs != nil {
		err := s.jobs.EnqueueDocumentExtract(queue.DocumentExtractPayload{
			DocumentID: doc.ID.Hex(),
			UserID:     doc.UserID,
		})
		if err != nil {
			// Extraction is an enhancement; the upload itself succeeded.
			slog.Warn("failed to enqueue text extraction", "document", doc.ID.Hex(), "error", err)
		}
	}

	return doc, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]models.HealthDocument, error) {
	return s.docs.ListByUser(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc.UserID != userID {
		return fmt.Errorf("document does not belong to user")
	}

	if err := s.docs.Delete(ctx, userID, id); err != nil {
		return err
	}
	if err := s.files.Delete(doc.FileName); err != nil {
		slog.Warn("failed to remove stored file", "file", doc.FileName, "error", err)
	}
	return nil
}
