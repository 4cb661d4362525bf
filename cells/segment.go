package cells

import (
	"image"

	"github.com/tsawler/gridsolve/model"
)

// DefaultMinFill is the minimum fraction of a cell's area the largest
// foreground component's bounding box must cover for the cell to count
// as holding a digit. Below it, the component is grid-line residue or
// scan noise and the cell is declared empty.
const DefaultMinFill = 0.03

// Segment partitions the rectified board into 81 cells in row-major
// order and isolates each cell's digit glyph: threshold, clear
// boundary-connected components, keep the largest remaining one. A cell
// judged empty has a nil Image and must not be sent to the classifier.
//
// The lattice step is Size/9, floored; the rightmost column and bottom
// row absorb any remainder pixels, so the split is deterministic for any
// board size. minFill <= 0 selects DefaultMinFill.
func Segment(b *model.RectifiedBoard, minFill float64) []model.Cell {
	if minFill <= 0 {
		minFill = DefaultMinFill
	}
	step := b.Size / 9
	out := make([]model.Cell, 0, 81)
	for row := 0; row < 9; row++ {
		y0 := row * step
		y1 := y0 + step
		if row == 8 {
			y1 = b.Size
		}
		for col := 0; col < 9; col++ {
			x0 := col * step
			x1 := x0 + step
			if col == 8 {
				x1 = b.Size
			}
			crop, _ := b.Gray.SubImage(image.Rect(x0, y0, x1, y1)).(*image.Gray)
			out = append(out, model.Cell{
				Row:   row,
				Col:   col,
				Image: ExtractGlyph(crop, minFill),
			})
		}
	}
	return out
}

// ExtractGlyph isolates the digit glyph in a single cell crop, returning
// a normalized GlyphSize x GlyphSize image or nil when the cell is empty.
func ExtractGlyph(crop *image.Gray, minFill float64) *image.Gray {
	thresh, ok := otsuThreshold(crop)
	if !ok {
		return nil // no contrast at all
	}
	bin := binarize(crop, thresh)
	clearBorder(bin)

	bbox, ok := largestComponent(bin)
	if !ok {
		return nil
	}
	cellArea := float64(bin.Rect.Dx() * bin.Rect.Dy())
	if float64(bbox.Dx()*bbox.Dy()) < minFill*cellArea {
		return nil
	}
	return normalizeGlyph(bin, bbox)
}
