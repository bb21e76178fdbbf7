package prescription

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/vitalsync/vitalsync/internal/llm"
	"github.com/vitalsync/vitalsync/internal/models"
	"github.com/vitalsync/vitalsync/internal/terminology"
)

// fakeLookup maps terms to canned results; unknown terms degrade to the
// unchanged input like the real client.
type fakeLookup struct {
	mu      sync.Mutex
	results map[string]terminology.Result
	errs    map[string]error
	calls   []string
}

func (f *fakeLookup) Normalize(_ context.Context, term string) (terminology.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, term)
	f.mu.Unlock()

	if err, ok := f.errs[term]; ok {
		return terminology.Result{}, err
	}
	if res, ok := f.results[term]; ok {
		return res, nil
	}
	return terminology.Result{Input: term, Name: term}, nil
}

// fakeGateway answers every chat with a fixed body, or an error.
type fakeGateway struct {
	reply    string
	err      error
	requests []llm.ChatRequest
}

func (f *fakeGateway) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{Content: f.reply}, nil
}

func (f *fakeGateway) ChatStream(context.Context, llm.ChatRequest) (<-chan llm.StreamChunk, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeGateway) Provider(string) (llm.Provider, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeGateway) ListModels() []llm.ModelInfo { return nil }

type fakePreprocessor struct {
	err error
}

func (f *fakePreprocessor) Preprocess(inputPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	out := inputPath + ".processed.png"
	if err := os.WriteFile(out, []byte("processed"), 0o644); err != nil {
		return "", err
	}
	return out, nil
}

type fakeOCR struct {
	text string
	err  error
}

func (f *fakeOCR) ExtractText(context.Context, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeStore struct {
	err     error
	created []*models.Prescription
}

func (f *fakeStore) Create(_ context.Context, p *models.Prescription) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, p)
	return nil
}
