package cells

import (
	"image"
	"image/color"
	"testing"

	"github.com/tsawler/gridsolve/model"
)

func whiteGray(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func fillRect(img *image.Gray, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
}

func boardFromGray(g *image.Gray) *model.RectifiedBoard {
	return &model.RectifiedBoard{Gray: g, Size: g.Rect.Dx()}
}

func TestSegment_CellCount(t *testing.T) {
	cells := Segment(boardFromGray(whiteGray(450, 450)), 0)
	if len(cells) != 81 {
		t.Fatalf("got %d cells, want 81", len(cells))
	}
	for i, c := range cells {
		if c.Row != i/9 || c.Col != i%9 {
			t.Errorf("cell %d has coordinate (%d,%d), want (%d,%d)", i, c.Row, c.Col, i/9, i%9)
		}
	}
}

func TestSegment_BlankBoardIsAllEmpty(t *testing.T) {
	cells := Segment(boardFromGray(whiteGray(450, 450)), 0)
	for _, c := range cells {
		if c.Image != nil {
			t.Fatalf("blank board produced a glyph at (%d,%d)", c.Row, c.Col)
		}
	}
}

func TestSegment_RemainderGoesToLastRowAndColumn(t *testing.T) {
	// 454 is not a multiple of 9: step is 50 and the last row/column
	// absorbs the 4 leftover pixels. Ink inside those leftover pixels
	// must land in cell (8,8).
	g := whiteGray(454, 454)
	fillRect(g, 410, 410, 448, 448)

	cells := Segment(boardFromGray(g), 0)
	for _, c := range cells {
		hasGlyph := c.Image != nil
		wantGlyph := c.Row == 8 && c.Col == 8
		if hasGlyph != wantGlyph {
			t.Errorf("cell (%d,%d): glyph=%v, want %v", c.Row, c.Col, hasGlyph, wantGlyph)
		}
	}
}

func TestOtsuThreshold_BimodalSplit(t *testing.T) {
	// Half the pixels at 40, half at 200: the split must fall in the
	// valley between the two modes.
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for i := range img.Pix {
		if i%2 == 0 {
			img.Pix[i] = 40
		} else {
			img.Pix[i] = 200
		}
	}
	thresh, ok := otsuThreshold(img)
	if !ok {
		t.Fatal("bimodal histogram should produce a threshold")
	}
	if thresh < 40 || thresh >= 200 {
		t.Errorf("threshold %d outside the valley [40,200)", thresh)
	}
}

func TestOtsuThreshold_FlatHistogram(t *testing.T) {
	if _, ok := otsuThreshold(whiteGray(20, 20)); ok {
		t.Error("flat histogram should report no threshold")
	}
}

func TestExtractGlyph_UniformCellIsEmpty(t *testing.T) {
	if g := ExtractGlyph(whiteGray(50, 50), 0.03); g != nil {
		t.Error("uniform white cell should be empty")
	}
}

func TestExtractGlyph_BorderNoiseIsEmpty(t *testing.T) {
	// Ink only in the border margin, as a residual grid line would be.
	crop := whiteGray(50, 50)
	fillRect(crop, 0, 0, 50, 3)
	fillRect(crop, 0, 47, 50, 50)

	if g := ExtractGlyph(crop, 0.03); g != nil {
		t.Error("border-only ink should leave the cell empty")
	}
}

func TestExtractGlyph_SpeckBelowMinFill(t *testing.T) {
	crop := whiteGray(50, 50)
	fillRect(crop, 24, 24, 26, 26) // 2x2 speck: 0.16% of the cell

	if g := ExtractGlyph(crop, 0.03); g != nil {
		t.Error("tiny speck should leave the cell empty")
	}
}

func TestExtractGlyph_Blob(t *testing.T) {
	crop := whiteGray(50, 50)
	fillRect(crop, 15, 10, 35, 40)

	g := ExtractGlyph(crop, 0.03)
	if g == nil {
		t.Fatal("expected a glyph")
	}
	if g.Rect.Dx() != model.GlyphSize || g.Rect.Dy() != model.GlyphSize {
		t.Fatalf("glyph is %dx%d, want %dx%d", g.Rect.Dx(), g.Rect.Dy(), model.GlyphSize, model.GlyphSize)
	}
	// Ink must be white-on-black and centered.
	if g.Pix[g.PixOffset(model.GlyphSize/2, model.GlyphSize/2)] == 0 {
		t.Error("glyph center should be ink")
	}
	if g.Pix[g.PixOffset(0, 0)] != 0 {
		t.Error("glyph corner should be background")
	}
}

func TestExtractGlyph_LargestComponentWins(t *testing.T) {
	// A big blob and a detached speck: the blob's bounding box decides.
	crop := whiteGray(50, 50)
	fillRect(crop, 10, 10, 30, 40)
	fillRect(crop, 40, 8, 42, 10)

	g := ExtractGlyph(crop, 0.03)
	if g == nil {
		t.Fatal("expected a glyph")
	}
	// The blob is 20x30 scaled by 2/3: the glyph's ink must stay inside
	// the centered 14x20 box, so the canvas edges remain background.
	for x := 0; x < model.GlyphSize; x++ {
		if g.Pix[g.PixOffset(x, 1)] != 0 {
			t.Errorf("row 1 should be background, ink at x=%d", x)
		}
	}
}
