package model

import "image"

// Digit is a recognized cell value. 0 means the cell is blank.
type Digit = uint8

// Grid is a 9x9 Sudoku board. A candidate grid (from recognition) may be
// sparse or even violate Sudoku constraints; a solution grid is fully
// populated and constraint-satisfying.
type Grid [9][9]Digit

// Empty reports whether the grid contains no digits at all.
func (g Grid) Empty() bool {
	return g.Count() == 0
}

// Count returns the number of non-blank cells.
func (g Grid) Count() int {
	n := 0
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if g[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

// Cell is one lattice cell of the rectified board. Image is the isolated,
// centered digit glyph normalized to [GlyphSize] x [GlyphSize] pixels, or
// nil when the cell was judged empty and never reached classification.
type Cell struct {
	Row, Col int
	Image    *image.Gray
}

// GlyphSize is the side length, in pixels, of a normalized glyph image
// handed to the classifier.
const GlyphSize = 32

// RectifiedBoard is the perspective-corrected, axis-aligned square image
// of the puzzle. Both a color and a grayscale variant are retained: the
// color image is useful for display and debugging, the grayscale variant
// feeds segmentation.
type RectifiedBoard struct {
	Color *image.RGBA
	Gray  *image.Gray
	Size  int
}
