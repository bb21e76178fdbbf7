package prescription

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/vitalsync/vitalsync/internal/models"
)

// State names the stages of one digitization run.
type State string

const (
	StateReceived        State = "received"
	StatePreprocessed    State = "preprocessed"
	StateExtracted       State = "extracted"
	StateCandidatesFound State = "candidates_found"
	StateNormalized      State = "normalized"
	StateStructured      State = "structured"
	StatePersisted       State = "persisted"
	StateFailed          State = "failed"
)

// Store is the persistence boundary the pipeline writes through.
type Store interface {
	Create(ctx context.Context, p *models.Prescription) error
}

// RunInput describes one uploaded image. The pipeline owns both the upload
// and any intermediate file it creates and deletes them before returning.
type RunInput struct {
	UserID    string
	ImagePath string
	ImageURL  string
}

// RunResult is the outcome of a pipeline run that reached persistence.
type RunResult struct {
	State        State
	OriginalText string
	Medicines    []string
	Entries      []Entry
	OCRDegraded  bool
	Prescription *models.Prescription
}

// Pipeline sequences preprocess, OCR, candidate extraction, terminology
// normalization, LLM structuring, and persistence for a single image.
// Mid-pipeline failures degrade instead of aborting: only a preprocess
// error or a persistence error surfaces to the caller.
type Pipeline struct {
	pre        Preprocessor
	ocr        TextExtractor
	normalizer *Normalizer
	structurer *Structurer
	store      Store
	strictOCR  bool
}

func NewPipeline(pre Preprocessor, ocr TextExtractor, n *Normalizer, s *Structurer, store Store, strictOCR bool) *Pipeline {
	return &Pipeline{
		pre:        pre,
		ocr:        ocr,
		normalizer: n,
		structurer: s,
		store:      store,
		strictOCR:  strictOCR,
	}
}

func (p *Pipeline) Run(ctx context.Context, in RunInput) (*RunResult, error) {
	state := StateReceived

	processedPath, err := p.pre.Preprocess(in.ImagePath)
	if err != nil {
		removeIfExists(in.ImagePath)
		if processedPath != "" {
			removeIfExists(processedPath)
		}
		slog.Error("prescription run failed at preprocess", "user", in.UserID, "error", err)
		return &RunResult{State: StateFailed}, err
	}
	state = StatePreprocessed

	text, ocrErr := p.ocr.ExtractText(ctx, processedPath)

	// Image artifacts are never persisted: once OCR has produced its
	// result, the upload and the preprocessed file go away regardless of
	// how the rest of the run turns out.
	removeIfExists(in.ImagePath)
	removeIfExists(processedPath)

	degraded := false
	if ocrErr != nil {
		if p.strictOCR {
			slog.Error("prescription run failed at OCR", "user", in.UserID, "error", ocrErr)
			return &RunResult{State: StateFailed}, ocrErr
		}
		slog.Warn("OCR failed, continuing with empty text", "user", in.UserID, "error", ocrErr)
		text = ""
		degraded = true
	}
	state = StateExtracted

	candidates := ExtractCandidates(text)
	state = StateCandidatesFound

	structureInput := text
	if len(candidates) > 0 {
		results := p.normalizer.NormalizeAll(ctx, candidates)
		structureInput = Rejoin(results)
	}
	state = StateNormalized

	var sres StructureResult
	if structureInput != "" {
		sres = p.structurer.Structure(ctx, structureInput)
	}
	state = StateStructured

	medicines := sres.Lines()
	if medicines == nil {
		medicines = []string{}
	}

	record := &models.Prescription{
		UserID:        in.UserID,
		ImageURL:      in.ImageURL,
		ExtractedText: text,
		Medicines:     medicines,
		Reminders:     []string{},
		CreatedAt:     time.Now().UTC(),
	}
	if err := p.store.Create(ctx, record); err != nil {
		slog.Error("prescription run failed at persistence", "user", in.UserID, "state", state, "error", err)
		return &RunResult{State: StateFailed, OriginalText: text}, &PersistenceError{Err: err}
	}
	state = StatePersisted

	return &RunResult{
		State:        state,
		OriginalText: text,
		Medicines:    medicines,
		Entries:      sres.Entries,
		OCRDegraded:  degraded,
		Prescription: record,
	}, nil
}

func removeIfExists(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove temp file", "path", path, "error", err)
	}
}
