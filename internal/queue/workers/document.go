package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/vitalsync/vitalsync/internal/models"
	"github.com/vitalsync/vitalsync/internal/queue"
	"github.com/vitalsync/vitalsync/internal/storage"
	"github.com/vitalsync/vitalsync/internal/store"
	"github.com/vitalsync/vitalsync/pkg/textextract"
)

// DocumentWorker extracts searchable text from uploaded PDF/TXT documents.
type DocumentWorker struct {
	docs  *store.DocumentStore
	files storage.FileStore
}

func NewDocumentWorker(docs *store.DocumentStore, files storage.FileStore) *DocumentWorker {
	return &DocumentWorker{docs: docs, files: files}
}

func (w *DocumentWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.DocumentExtractPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	doc, err := w.docs.GetByID(ctx, payload.DocumentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}

	reader, err := w.files.Open(doc.FileName)
	if err != nil {
		_ = w.docs.SetExtractedText(ctx, doc.ID, "", models.DocStatusFailed)
		return fmt.Errorf("open stored file: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		_ = w.docs.SetExtractedText(ctx, doc.ID, "", models.DocStatusFailed)
		return fmt.Errorf("read stored file: %w", err)
	}

	extracted, err := textextract.Extract(bytes.NewReader(data), int64(len(data)), doc.MimeType)
	if err != nil {
		_ = w.docs.SetExtractedText(ctx, doc.ID, "", models.DocStatusFailed)
		return fmt.Errorf("extract text: %w", err)
	}

	if err := w.docs.SetExtractedText(ctx, doc.ID, extracted.Content, models.DocStatusReady); err != nil {
		return fmt.Errorf("save extracted text: %w", err)
	}

	slog.Info("document text extracted", "document", payload.DocumentID, "pages", extracted.Pages)
	return nil
}
