package geometry

import (
	"errors"
	"image"
	"sort"

	"github.com/tsawler/gridsolve/model"
)

var (
	// ErrNoBoardFound reports that no region of the image resembles a
	// puzzle's four-cornered outer frame.
	ErrNoBoardFound = errors.New("no sudoku board found in image")

	// ErrDegenerateBoundary reports that the best candidate outline
	// collapsed to a shape that cannot bound a board.
	ErrDegenerateBoundary = errors.New("detected board boundary is degenerate")
)

// Preprocessing and selection parameters, matched to typical phone-photo
// resolutions.
const (
	blurRadius     = 3    // 7x7 smoothing window
	thresholdBlock = 11   // adaptive threshold neighborhood
	thresholdDelta = 2    // required contrast below local mean
	minAreaRatio   = 0.04 // candidate hull must cover 4% of the frame
)

// DefaultBoardSize is the side length of the canonical rectified board.
// 450 divides evenly into 9 cells of 50 pixels.
const DefaultBoardSize = 450

// FindBoardQuad runs detection only, returning the canonical corner
// quadrilateral of the puzzle's outer frame. Corner coordinates are
// relative to the image's bounds origin.
func FindBoardQuad(img image.Image) (model.Quad, error) {
	gray := Grayscale(img)
	smoothed := BoxBlur(gray, blurRadius)
	bin := AdaptiveThreshold(smoothed, thresholdBlock, thresholdDelta)

	regions := findRegions(bin)
	// Largest enclosed area first; scanline discovery order breaks ties.
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].hullArea > regions[j].hullArea
	})

	minArea := minAreaRatio * float64(gray.Rect.Dx()*gray.Rect.Dy())
	for _, reg := range regions {
		if reg.hullArea < minArea {
			break
		}
		q, ok := cornerQuad(reg.hull)
		if !ok || !quadFitsHull(q, reg.hullArea) {
			continue
		}
		if q.IsDegenerate() {
			return model.Quad{}, ErrDegenerateBoundary
		}
		return q, nil
	}
	return model.Quad{}, ErrNoBoardFound
}

// Locate finds the puzzle's outer frame and rectifies it into an
// axis-aligned size x size square (size <= 0 selects DefaultBoardSize).
// It fails with ErrNoBoardFound when no suitable four-cornered region
// exists, or ErrDegenerateBoundary when the detected corners are
// collinear or enclose no area.
func Locate(img image.Image, size int) (*model.RectifiedBoard, error) {
	if size <= 0 {
		size = DefaultBoardSize
	}
	q, err := FindBoardQuad(img)
	if err != nil {
		return nil, err
	}
	board, err := Warp(img, q, size)
	if err != nil {
		return nil, ErrDegenerateBoundary
	}
	return board, nil
}
