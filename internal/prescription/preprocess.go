package prescription

import (
	"github.com/disintegration/imaging"
)

// Preprocessor normalizes an uploaded raster image into a form the OCR
// engine reads well. The returned path is a new temp file; the caller owns
// cleanup of both input and output.
type Preprocessor interface {
	Preprocess(inputPath string) (string, error)
}

type ImagePreprocessor struct {
	targetWidth int
}

func NewImagePreprocessor(targetWidth int) *ImagePreprocessor {
	if targetWidth <= 0 {
		targetWidth = 1200
	}
	return &ImagePreprocessor{targetWidth: targetWidth}
}

// Preprocess converts to grayscale, stretches contrast, sharpens, and
// resizes to the target width. Handwritten prescriptions photographed on
// phones tend to be low-contrast; this mirrors what OCR engines expect.
func (p *ImagePreprocessor) Preprocess(inputPath string) (string, error) {
	img, err := imaging.Open(inputPath, imaging.AutoOrientation(true))
	if err != nil {
		return "", &PreprocessError{Err: err}
	}

	gray := imaging.Grayscale(img)
	contrasted := imaging.AdjustContrast(gray, 20)
	sharpened := imaging.Sharpen(contrasted, 1.0)

	resized := sharpened
	if resized.Bounds().Dx() != p.targetWidth {
		resized = imaging.Resize(sharpened, p.targetWidth, 0, imaging.Lanczos)
	}

	outPath := inputPath + ".processed.png"
	if err := imaging.Save(resized, outPath); err != nil {
		return "", &PreprocessError{Err: err}
	}

	return outPath, nil
}
