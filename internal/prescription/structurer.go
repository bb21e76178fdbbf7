package prescription

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vitalsync/vitalsync/internal/llm"
)

// Entry is one medicine parsed out of the model's fixed-format answer.
// Only the name is guaranteed; the other fields are best effort.
type Entry struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Quantity  string `json:"quantity,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Purpose   string `json:"purpose,omitempty"`
}

// String renders the entry as a single prescription line, the shape the
// persisted record and the API response carry.
func (e Entry) String() string {
	parts := []string{e.Name}
	for _, f := range []string{e.Dosage, e.Quantity, e.Frequency} {
		if f != "" {
			parts = append(parts, f)
		}
	}
	if e.Purpose != "" {
		parts = append(parts, "for "+e.Purpose)
	}
	return strings.Join(parts, " ")
}

// StructureResult carries either parsed entries or, when the model's output
// did not match the contract, the best available unstructured text.
type StructureResult struct {
	Entries    []Entry
	Raw        string
	Structured bool
}

// Lines flattens the result into the string list the prescription record
// stores: one line per entry, or the non-empty lines of the raw block.
func (r StructureResult) Lines() []string {
	if r.Structured {
		lines := make([]string, len(r.Entries))
		for i, e := range r.Entries {
			lines[i] = e.String()
		}
		return lines
	}
	var lines []string
	for _, line := range strings.Split(r.Raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

const structurePrompt = `You are a medical assistant.

Below is OCR-extracted text from a handwritten prescription. Please:

1. Correct only clear spelling mistakes in medicine names. Do NOT replace them with unrelated or inferred drug names.
2. Do NOT substitute brand names with generics unless the original name is clearly misspelled.
3. For each medicine, extract the following fields:
   - Medicine Name
   - Dosage (e.g., 100 mg)
   - Quantity (e.g., 1 tab, 2 tabs)
   - Frequency (e.g., BID, TID, QD)
   - Purpose (what it is commonly prescribed for)

Return only the cleaned and structured output in the format below. Do not include explanations or extra text.

Prescription text:
%s

Output format:
- Medicine Name: ...
  Dosage: ...
  Quantity: ...
  Frequency: ...
  Purpose: ...`

// Structurer converts free prescription text into fielded medicine entries
// via a fixed LLM prompt contract.
type Structurer struct {
	gateway llm.Gateway
	model   string
}

func NewStructurer(gateway llm.Gateway, model string) *Structurer {
	return &Structurer{gateway: gateway, model: model}
}

// Structure fails soft. A provider error degrades to the input text as one
// unstructured block; unparseable model output degrades to the model's raw
// text. Downstream code must accept either shape.
func (s *Structurer) Structure(ctx context.Context, text string) StructureResult {
	resp, err := s.gateway.Chat(ctx, llm.ChatRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: "system", Content: "You are a helpful medical assistant."},
			{Role: "user", Content: fmt.Sprintf(structurePrompt, text)},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	})
	if err != nil {
		slog.Warn("prescription structuring degraded to raw text", "error", err)
		return StructureResult{Raw: text}
	}

	entries := parseEntries(resp.Content)
	if len(entries) == 0 {
		return StructureResult{Raw: strings.TrimSpace(resp.Content)}
	}

	return StructureResult{Entries: entries, Structured: true}
}

// parseEntries walks the bullet format the prompt demands. Unknown lines
// between entries are skipped rather than treated as errors.
func parseEntries(content string) []Entry {
	var entries []Entry
	var current *Entry

	flush := func() {
		if current != nil && current.Name != "" {
			entries = append(entries, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if name, ok := fieldValue(trimmed, "- Medicine Name:", "Medicine Name:"); ok {
			flush()
			current = &Entry{Name: name}
			continue
		}
		if current == nil {
			continue
		}
		if v, ok := fieldValue(trimmed, "Dosage:"); ok {
			current.Dosage = v
		} else if v, ok := fieldValue(trimmed, "Quantity:"); ok {
			current.Quantity = v
		} else if v, ok := fieldValue(trimmed, "Frequency:"); ok {
			current.Frequency = v
		} else if v, ok := fieldValue(trimmed, "Purpose:"); ok {
			current.Purpose = v
		}
	}
	flush()

	return entries
}

func fieldValue(line string, labels ...string) (string, bool) {
	for _, label := range labels {
		if strings.HasPrefix(line, label) {
			return strings.TrimSpace(strings.TrimPrefix(line, label)), true
		}
	}
	return "", false
}
