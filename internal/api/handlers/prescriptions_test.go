package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalsync/vitalsync/internal/auth"
	"github.com/vitalsync/vitalsync/internal/prescription"
	"github.com/vitalsync/vitalsync/internal/storage"
)

type fakeDigitizer struct {
	result *prescription.RunResult
	err    error
	inputs []prescription.RunInput
}

func (f *fakeDigitizer) Run(_ context.Context, in prescription.RunInput) (*prescription.RunResult, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func multipartImage(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func newUploadRequest(t *testing.T, field, filename string) *http.Request {
	t.Helper()
	body, contentType := multipartImage(t, field, filename)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/prescriptions/upload", body)
	req.Header.Set("Content-Type", contentType)
	return req.WithContext(auth.WithUserID(req.Context(), "user-1"))
}

func TestPrescriptionUpload(t *testing.T) {
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	t.Run("returns raw text and structured lines", func(t *testing.T) {
		pipe := &fakeDigitizer{result: &prescription.RunResult{
			State:        prescription.StatePersisted,
			OriginalText: "Amoxicilin 250mg",
			Medicines:    []string{"Amoxicillin 250 mg 1 tab TID for infection"},
		}}
		h := NewPrescriptionHandler(pipe, files, nil, 1<<20)

		rec := httptest.NewRecorder()
		h.Upload(rec, newUploadRequest(t, "image", "rx.jpg"))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			OriginalText        string   `json:"originalText"`
			DigitalPrescription []string `json:"digitalPrescription"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Amoxicilin 250mg", resp.OriginalText)
		assert.Equal(t, []string{"Amoxicillin 250 mg 1 tab TID for infection"}, resp.DigitalPrescription)

		require.Len(t, pipe.inputs, 1)
		assert.Equal(t, "user-1", pipe.inputs[0].UserID)
		assert.NotEmpty(t, pipe.inputs[0].ImagePath)
	})

	t.Run("degraded run still returns 200 with empty fields", func(t *testing.T) {
		pipe := &fakeDigitizer{result: &prescription.RunResult{
			State:       prescription.StatePersisted,
			Medicines:   []string{},
			OCRDegraded: true,
		}}
		h := NewPrescriptionHandler(pipe, files, nil, 1<<20)

		rec := httptest.NewRecorder()
		h.Upload(rec, newUploadRequest(t, "image", "rx.png"))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "", resp["originalText"])
		assert.Equal(t, []interface{}{}, resp["digitalPrescription"])
	})

	t.Run("missing file is a 400", func(t *testing.T) {
		h := NewPrescriptionHandler(&fakeDigitizer{}, files, nil, 1<<20)

		rec := httptest.NewRecorder()
		h.Upload(rec, newUploadRequest(t, "wrongfield", "rx.jpg"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-image extension is rejected", func(t *testing.T) {
		h := NewPrescriptionHandler(&fakeDigitizer{}, files, nil, 1<<20)

		rec := httptest.NewRecorder()
		h.Upload(rec, newUploadRequest(t, "image", "notes.pdf"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unreadable image maps to 400", func(t *testing.T) {
		pipe := &fakeDigitizer{err: &prescription.PreprocessError{Err: fmt.Errorf("bad image")}}
		h := NewPrescriptionHandler(pipe, files, nil, 1<<20)

		rec := httptest.NewRecorder()
		h.Upload(rec, newUploadRequest(t, "image", "rx.jpg"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("persistence failure maps to 500", func(t *testing.T) {
		pipe := &fakeDigitizer{err: &prescription.PersistenceError{Err: fmt.Errorf("mongo down")}}
		h := NewPrescriptionHandler(pipe, files, nil, 1<<20)

		rec := httptest.NewRecorder()
		h.Upload(rec, newUploadRequest(t, "image", "rx.jpg"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["error"])
	})
}
