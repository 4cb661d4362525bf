//go:build !ocr

package ocr

import (
	"image"

	"github.com/tsawler/gridsolve/model"
)

// Tesseract is a stub that stands in when Tesseract support is not
// compiled in. All operations fail with ErrNotEnabled.
type Tesseract struct{}

// NewTesseract returns ErrNotEnabled. Rebuild with -tags ocr to enable
// Tesseract-backed classification.
func NewTesseract() (*Tesseract, error) {
	return nil, ErrNotEnabled
}

// Classify always fails with ErrNotEnabled.
func (t *Tesseract) Classify(glyph *image.Gray) (model.Digit, error) {
	return 0, ErrNotEnabled
}

// Close is a no-op. It is safe to call on a nil classifier.
func (t *Tesseract) Close() error { return nil }
