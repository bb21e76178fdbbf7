package prescription

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalsync/vitalsync/internal/terminology"
)

func writeUpload(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rx.png")
	require.NoError(t, os.WriteFile(path, []byte("image bytes"), 0o644))
	return path
}

func newTestPipeline(ocr TextExtractor, lookup terminology.Lookup, gw *fakeGateway, st Store, strict bool) *Pipeline {
	return NewPipeline(&fakePreprocessor{}, ocr, NewNormalizer(lookup, 2), NewStructurer(gw, "test-model"), st, strict)
}

func TestPipelineRun(t *testing.T) {
	t.Run("full run corrects, structures, and persists", func(t *testing.T) {
		input := writeUpload(t)
		lookup := &fakeLookup{results: map[string]terminology.Result{
			"Amoxicilin 250mg": {Input: "Amoxicilin 250mg", Name: "Amoxicillin", Score: 85},
		}}
		gw := &fakeGateway{reply: "- Medicine Name: Amoxicillin\n  Dosage: 250 mg\n  Quantity: 1 tab\n  Frequency: TID\n  Purpose: infection"}
		st := &fakeStore{}

		res, err := newTestPipeline(&fakeOCR{text: "Amoxicilin 250mg"}, lookup, gw, st, false).
			Run(context.Background(), RunInput{UserID: "u1", ImagePath: input})

		require.NoError(t, err)
		assert.Equal(t, StatePersisted, res.State)
		assert.Equal(t, "Amoxicilin 250mg", res.OriginalText)
		assert.Equal(t, []string{"Amoxicillin 250 mg 1 tab TID for infection"}, res.Medicines)

		require.Len(t, st.created, 1)
		assert.Equal(t, "u1", st.created[0].UserID)
		assert.Equal(t, res.Medicines, st.created[0].Medicines)

		// corrected text, not the raw OCR output, reaches the model
		require.Len(t, gw.requests, 1)
		assert.Contains(t, gw.requests[0].Messages[1].Content, "Amoxicillin")
	})

	t.Run("clear image needs no correction", func(t *testing.T) {
		input := writeUpload(t)
		gw := &fakeGateway{reply: "- Medicine Name: Amoxicillin\n  Dosage: 500mg\n  Quantity: 1 tab\n  Frequency: BID\n  Purpose: infection"}
		st := &fakeStore{}

		res, err := newTestPipeline(&fakeOCR{text: "Amoxicillin 500mg 1 tab BID for infection"}, &fakeLookup{}, gw, st, false).
			Run(context.Background(), RunInput{UserID: "u1", ImagePath: input})

		require.NoError(t, err)
		require.Len(t, res.Entries, 1)
		assert.Equal(t, Entry{
			Name:      "Amoxicillin",
			Dosage:    "500mg",
			Quantity:  "1 tab",
			Frequency: "BID",
			Purpose:   "infection",
		}, res.Entries[0])
		assert.Equal(t, []string{"Amoxicillin 500mg 1 tab BID for infection"}, res.Medicines)
	})

	t.Run("OCR failure degrades to an empty record", func(t *testing.T) {
		input := writeUpload(t)
		st := &fakeStore{}
		gw := &fakeGateway{}

		res, err := newTestPipeline(&fakeOCR{err: fmt.Errorf("engine crashed")}, &fakeLookup{}, gw, st, false).
			Run(context.Background(), RunInput{UserID: "u1", ImagePath: input})

		require.NoError(t, err)
		assert.Equal(t, StatePersisted, res.State)
		assert.True(t, res.OCRDegraded)
		assert.Empty(t, res.OriginalText)
		assert.Equal(t, []string{}, res.Medicines)
		assert.Empty(t, gw.requests, "no text means no structuring call")
		require.Len(t, st.created, 1)
	})

	t.Run("strict mode surfaces the OCR error", func(t *testing.T) {
		input := writeUpload(t)
		st := &fakeStore{}

		_, err := newTestPipeline(&fakeOCR{err: &OCRError{Err: fmt.Errorf("engine crashed")}}, &fakeLookup{}, &fakeGateway{}, st, true).
			Run(context.Background(), RunInput{UserID: "u1", ImagePath: input})

		require.Error(t, err)
		assert.Empty(t, st.created)
	})

	t.Run("temp files are gone after every outcome", func(t *testing.T) {
		for name, ocr := range map[string]TextExtractor{
			"success": &fakeOCR{text: "Paracetamol 500mg"},
			"failure": &fakeOCR{err: fmt.Errorf("boom")},
		} {
			t.Run(name, func(t *testing.T) {
				input := writeUpload(t)

				_, err := newTestPipeline(ocr, &fakeLookup{}, &fakeGateway{reply: "x"}, &fakeStore{}, false).
					Run(context.Background(), RunInput{UserID: "u1", ImagePath: input})

				require.NoError(t, err)
				assert.NoFileExists(t, input)
				assert.NoFileExists(t, input+".processed.png")
			})
		}
	})

	t.Run("preprocess failure aborts and removes the upload", func(t *testing.T) {
		input := writeUpload(t)
		st := &fakeStore{}
		p := NewPipeline(&fakePreprocessor{err: &PreprocessError{Err: fmt.Errorf("not an image")}},
			&fakeOCR{}, NewNormalizer(&fakeLookup{}, 2), NewStructurer(&fakeGateway{}, "m"), st, false)

		res, err := p.Run(context.Background(), RunInput{UserID: "u1", ImagePath: input})

		require.Error(t, err)
		var preErr *PreprocessError
		assert.ErrorAs(t, err, &preErr)
		assert.Equal(t, StateFailed, res.State)
		assert.Empty(t, st.created)
		assert.NoFileExists(t, input)
	})

	t.Run("persistence failure is reported after cleanup", func(t *testing.T) {
		input := writeUpload(t)
		st := &fakeStore{err: fmt.Errorf("mongo down")}

		_, err := newTestPipeline(&fakeOCR{text: "Paracetamol 500mg"}, &fakeLookup{}, &fakeGateway{reply: "x"}, st, false).
			Run(context.Background(), RunInput{UserID: "u1", ImagePath: input})

		require.Error(t, err)
		var perr *PersistenceError
		assert.ErrorAs(t, err, &perr)
		assert.NoFileExists(t, input)
	})

	t.Run("no candidates falls back to the raw text", func(t *testing.T) {
		input := writeUpload(t)
		lookup := &fakeLookup{}
		gw := &fakeGateway{reply: "nothing structured"}

		res, err := newTestPipeline(&fakeOCR{text: "..\n!!"}, lookup, gw, &fakeStore{}, false).
			Run(context.Background(), RunInput{UserID: "u1", ImagePath: input})

		require.NoError(t, err)
		assert.Empty(t, lookup.calls, "no candidates means no terminology lookups")
		require.Len(t, gw.requests, 1)
		assert.Contains(t, gw.requests[0].Messages[1].Content, "..")
		assert.Equal(t, []string{"nothing structured"}, res.Medicines)
	})
}
