package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vitalsync/vitalsync/internal/llm"
	"github.com/vitalsync/vitalsync/internal/prescription"
)

// MedicineInfo is the identifier's answer for one label or imprint photo.
type MedicineInfo struct {
	Source  string `json:"source"`
	Caption string `json:"caption"`
	Usage   string `json:"usage"`
}

// MedicineIdentifier reads a medicine label photo and asks the model what
// the medicine is and what it is used for. Unlike the prescription
// pipeline, spelling correction here goes through the LLM rather than the
// terminology service: label text is usually a single brand name where an
// approximate-match vocabulary adds little.
type MedicineIdentifier struct {
	pre     prescription.Preprocessor
	ocr     prescription.TextExtractor
	gateway llm.Gateway
	model   string
}

func NewMedicineIdentifier(pre prescription.Preprocessor, ocr prescription.TextExtractor, gateway llm.Gateway, model string) *MedicineIdentifier {
	return &MedicineIdentifier{pre: pre, ocr: ocr, gateway: gateway, model: model}
}

// Identify runs OCR on the label photo, filters the text down to probable
// medicine tokens, corrects spelling, and asks for usage information.
// The caller owns deleting the uploaded image.
func (m *MedicineIdentifier) Identify(ctx context.Context, imagePath string) (MedicineInfo, error) {
	processed, err := m.pre.Preprocess(imagePath)
	if err != nil {
		return MedicineInfo{}, err
	}
	defer removeQuiet(processed)

	text, err := m.ocr.ExtractText(ctx, processed)
	if err != nil {
		return MedicineInfo{}, err
	}

	if strings.TrimSpace(text) == "" {
		return MedicineInfo{
			Source:  "ocr",
			Caption: "No readable text found in the image.",
			Usage:   "Please try with a clearer image.",
		}, nil
	}

	candidate := strings.Join(prescription.ExtractCandidates(text), " ")
	if candidate == "" {
		candidate = text
	}

	corrected := m.correctSpelling(ctx, candidate)

	usage, err := m.lookupUsage(ctx, corrected)
	if err != nil {
		slog.Warn("medicine info lookup failed", "error", err)
		return MedicineInfo{
			Source:  "ocr",
			Caption: "Extracted Text: " + corrected,
			Usage:   "Failed to identify medicine information.",
		}, nil
	}

	return MedicineInfo{
		Source:  "llm",
		Caption: "Extracted Text: " + corrected,
		Usage:   usage,
	}, nil
}

// correctSpelling degrades to the input on any failure; a misspelled name
// still produces a usable info lookup more often than no name at all.
func (m *MedicineIdentifier) correctSpelling(ctx context.Context, text string) string {
	prompt := fmt.Sprintf(
		"The following text was extracted from a prescription or label and may contain spelling mistakes:\n\n"+
			"%q\n\nCorrect any misspelled medicine names and return ONLY the corrected version of the text. "+
			"Do not add any explanations or formatting.", text)

	resp, err := m.gateway.Chat(ctx, llm.ChatRequest{
		Model: m.model,
		Messages: []llm.Message{
			{Role: "system", Content: "You are a medical language expert."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
		MaxTokens:   200,
	})
	if err != nil {
		slog.Warn("spelling correction degraded", "error", err)
		return text
	}

	corrected := strings.TrimSpace(resp.Content)
	if corrected == "" {
		return text
	}
	return corrected
}

func (m *MedicineIdentifier) lookupUsage(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(
		"This text was extracted from a medicine label or pill imprint:\n\n%q\n\n"+
			"Based on this, return ONLY the medicine name and its uses in a short bullet list. "+
			"Do NOT include explanations or reasoning. Format it like this:\n\n"+
			"Medicine Name: <name>\nUses:\n- <use 1>\n- <use 2>", text)

	resp, err := m.gateway.Chat(ctx, llm.ChatRequest{
		Model: m.model,
		Messages: []llm.Message{
			{Role: "system", Content: "You are a medical expert AI."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
		MaxTokens:   300,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
