// Package gridsolve turns a photograph of a Sudoku puzzle into a solved
// grid rendered as text.
//
// Basic usage:
//
//	text, warnings, err := gridsolve.Open("puzzle.jpg").Solve()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", gridsolve.FormatWarnings(warnings))
//	}
//
// With options:
//
//	text, _, err := gridsolve.FromBytes(upload).
//	    Strict().
//	    MaxNodes(500_000).
//	    Solve()
//
// The pipeline runs four stages: board localization and rectification
// (package geometry), cell segmentation and glyph isolation (package
// cells), digit classification (package ocr), and constraint solving
// (package solver). Each stage can fail; failures wrap one of the
// sentinel errors in this package so callers can dispatch on kind.
//
// Digit classification defaults to the Tesseract engine, which requires
// the "ocr" build tag; any pre-trained model can be substituted via
// [Pipeline.WithClassifier]. For advanced use the stage packages are
// also usable directly.
package gridsolve

import (
	"image"
)

// Open reads an image file and returns a Pipeline for fluent
// configuration. Decoding is deferred to the terminal operation.
//
// Example:
//
//	text, warnings, err := gridsolve.Open("puzzle.jpg").Solve()
func Open(filename string) *Pipeline {
	return &Pipeline{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes creates a Pipeline from raw image bytes in any registered
// raster format (JPEG, PNG, or GIF).
func FromBytes(data []byte) *Pipeline {
	return &Pipeline{
		data:    data,
		options: defaultOptions(),
	}
}

// FromImage creates a Pipeline from an already-decoded image.
func FromImage(img image.Image) *Pipeline {
	return &Pipeline{
		img:     img,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustSolve wraps a call to Solve and panics on error, discarding
// warnings.
func MustSolve(val string, _ []Warning, err error) string {
	if err != nil {
		panic(err)
	}
	return val
}
