package prescription

import "fmt"

// PreprocessError aborts a run before OCR. A corrupt image cannot usefully
// be read raw, so this is the one stage with no degrade path.
type PreprocessError struct {
	Err error
}

func (e *PreprocessError) Error() string { return fmt.Sprintf("preprocess image: %v", e.Err) }
func (e *PreprocessError) Unwrap() error { return e.Err }

// OCRError is fatal only in strict mode; the default policy records the run
// with empty text instead.
type OCRError struct {
	Err error
}

func (e *OCRError) Error() string { return fmt.Sprintf("extract text: %v", e.Err) }
func (e *OCRError) Unwrap() error { return e.Err }

// PersistenceError surfaces after all temp files are already cleaned up.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("persist prescription: %v", e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }
