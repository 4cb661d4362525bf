//go:build ocr

package ocr

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/gridsolve/model"
)

// Tesseract classifies digit glyphs with the Tesseract OCR engine in
// single-character mode, restricted to the digits 1-9.
//
// The underlying gosseract client is stateful, so calls are serialized
// by an internal mutex; one Tesseract value can be shared by concurrent
// pipeline runs.
type Tesseract struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseract creates a digit classifier backed by a Tesseract client.
// The classifier should be closed when no longer needed to release
// engine resources.
func NewTesseract() (*Tesseract, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting segmentation mode: %w", err)
	}
	if err := client.SetWhitelist("123456789"); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting whitelist: %w", err)
	}
	return &Tesseract{client: client}, nil
}

// Classify runs single-character recognition on a normalized glyph.
func (t *Tesseract) Classify(glyph *image.Gray) (model.Digit, error) {
	data, err := encodePNG(glyph)
	if err != nil {
		return 0, fmt.Errorf("%w: encoding glyph: %v", ErrClassificationFailed, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.client.SetImageFromBytes(data); err != nil {
		return 0, fmt.Errorf("%w: setting image: %v", ErrClassificationFailed, err)
	}
	text, err := t.client.Text()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}
	return parseDigit(strings.TrimSpace(text))
}

// Close releases engine resources.
func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}
