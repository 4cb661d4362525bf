// Package ocr classifies isolated digit glyphs using the Tesseract OCR
// engine via gosseract.
//
// The Tesseract-backed classifier requires Tesseract to be installed on
// the system and the "ocr" build tag to be set:
//
//	go build -tags ocr
//
// On macOS, install Tesseract via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Without the build tag, [NewTesseract] returns [ErrNotEnabled] and a
// caller-supplied [Classifier] must be used instead. The classifier is
// deliberately an interface: any pre-trained digit model can stand in
// behind the same contract.
package ocr

import (
	"bytes"
	"errors"
	"image"
	"image/png"

	"github.com/tsawler/gridsolve/model"
)

// ErrNotEnabled is returned by NewTesseract when Tesseract support was
// not compiled in. Rebuild with -tags ocr to enable it.
var ErrNotEnabled = errors.New("tesseract support not enabled; rebuild with -tags ocr")

// ErrClassificationFailed reports that the classifier could not map a
// glyph to a digit. The pipeline treats this per cell: in lenient mode
// the cell is recorded as blank, in strict mode the failure aborts.
var ErrClassificationFailed = errors.New("glyph classification failed")

// Classifier maps a normalized glyph image to a digit in [0,9], where 0
// means the glyph was unreadable as any digit. Implementations must be
// safe for concurrent calls; the pipeline shares one classifier across
// requests and never reloads it.
type Classifier interface {
	Classify(glyph *image.Gray) (model.Digit, error)
	Close() error
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(glyph *image.Gray) (model.Digit, error)

// Classify calls f.
func (f ClassifierFunc) Classify(glyph *image.Gray) (model.Digit, error) {
	return f(glyph)
}

// Close is a no-op.
func (f ClassifierFunc) Close() error { return nil }

// encodePNG serializes a glyph for engines that consume image bytes.
func encodePNG(glyph *image.Gray) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, glyph); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parseDigit interprets recognizer output for a single glyph. Exactly
// one character in 1-9 is accepted; anything else is a failed
// classification (0 never appears in printed puzzles, so it is not in
// the whitelist).
func parseDigit(text string) (model.Digit, error) {
	if len(text) != 1 || text[0] < '1' || text[0] > '9' {
		return 0, ErrClassificationFailed
	}
	return model.Digit(text[0] - '0'), nil
}
