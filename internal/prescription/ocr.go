package prescription

import (
	"context"
	"os/exec"
	"strings"

	"github.com/vitalsync/vitalsync/internal/config"
)

// TextExtractor wraps an OCR engine. Empty output is valid; the engine
// exposes no confidence score.
type TextExtractor interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// TesseractOCR shells out to the tesseract binary.
type TesseractOCR struct {
	binPath  string
	language string
}

func NewTesseractOCR(cfg config.OCRConfig) *TesseractOCR {
	bin := cfg.TesseractPath
	if bin == "" {
		if path, err := exec.LookPath("tesseract"); err == nil {
			bin = path
		} else {
			bin = "tesseract"
		}
	}
	lang := cfg.Language
	if lang == "" {
		lang = "eng"
	}
	return &TesseractOCR{binPath: bin, language: lang}
}

func (o *TesseractOCR) IsAvailable() bool {
	return exec.Command(o.binPath, "--version").Run() == nil
}

func (o *TesseractOCR) ExtractText(ctx context.Context, imagePath string) (string, error) {
	cmd := exec.CommandContext(ctx, o.binPath, imagePath, "stdout", "-l", o.language)

	output, err := cmd.Output()
	if err != nil {
		return "", &OCRError{Err: err}
	}

	return strings.TrimSpace(string(output)), nil
}
