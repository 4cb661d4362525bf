package gridsolve_test

import (
	"errors"
	"image"
	"image/color"
	"math"
	"strconv"
	"testing"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/gridsolve"
	"github.com/tsawler/gridsolve/cells"
	"github.com/tsawler/gridsolve/model"
	"github.com/tsawler/gridsolve/ocr"
	"github.com/tsawler/gridsolve/render"
)

// The classic example puzzle and its unique solution.
var (
	samplePuzzle = model.Grid{
		{5, 3, 0, 0, 7, 0, 0, 0, 0},
		{6, 0, 0, 1, 9, 5, 0, 0, 0},
		{0, 9, 8, 0, 0, 0, 0, 6, 0},
		{8, 0, 0, 0, 6, 0, 0, 0, 3},
		{4, 0, 0, 8, 0, 3, 0, 0, 1},
		{7, 0, 0, 0, 2, 0, 0, 0, 6},
		{0, 6, 0, 0, 0, 0, 2, 8, 0},
		{0, 0, 0, 4, 1, 9, 0, 0, 5},
		{0, 0, 0, 0, 8, 0, 0, 7, 9},
	}
	sampleSolution = model.Grid{
		{5, 3, 4, 6, 7, 8, 9, 1, 2},
		{6, 7, 2, 1, 9, 5, 3, 4, 8},
		{1, 9, 8, 3, 4, 2, 5, 6, 7},
		{8, 5, 9, 7, 6, 1, 4, 2, 3},
		{4, 2, 6, 8, 5, 3, 7, 9, 1},
		{7, 1, 3, 9, 2, 4, 8, 5, 6},
		{9, 6, 1, 5, 3, 7, 2, 8, 4},
		{2, 8, 7, 4, 1, 9, 6, 3, 5},
		{3, 4, 5, 2, 8, 6, 1, 7, 9},
	}
)

// drawDigit paints a digit centered at (cx, cy), scaling the 7x13 basic
// font up 3x so glyphs cover a realistic share of a 50px cell.
func drawDigit(dst *image.Gray, cx, cy int, d model.Digit) {
	tiny := image.NewGray(image.Rect(0, 0, 7, 13))
	for i := range tiny.Pix {
		tiny.Pix[i] = 255
	}
	drawer := &font.Drawer{
		Dst:  tiny,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(0, 11),
	}
	drawer.DrawString(strconv.Itoa(int(d)))

	const w, h = 7 * 3, 13 * 3
	x0, y0 := cx-w/2, cy-h/2
	xdraw.NearestNeighbor.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), tiny, tiny.Bounds(), xdraw.Src, nil)
}

// puzzleImage renders a clean synthetic photograph of a puzzle: a white
// 500x500 frame with a black board outline from (25,25) to (475,475)
// and the given digits centered in their 50px cells.
func puzzleImage(g model.Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 500, 500))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	frame := func(x0, y0, x1, y1 int) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	frame(25, 25, 475, 28)
	frame(25, 472, 475, 475)
	frame(25, 25, 28, 475)
	frame(472, 25, 475, 475)

	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if g[r][c] != 0 {
				drawDigit(img, 25+c*50+25, 25+r*50+25, g[r][c])
			}
		}
	}
	return img
}

// templateClassifier matches glyphs against templates produced by
// rendering each digit and running it through the same glyph isolation
// as the pipeline. It stands in for the externally trained model.
type templateClassifier struct {
	templates [10]*image.Gray
}

func newTemplateClassifier(t *testing.T) *templateClassifier {
	t.Helper()
	tc := &templateClassifier{}
	for d := model.Digit(1); d <= 9; d++ {
		cell := image.NewGray(image.Rect(0, 0, 50, 50))
		for i := range cell.Pix {
			cell.Pix[i] = 255
		}
		drawDigit(cell, 25, 25, d)
		glyph := cells.ExtractGlyph(cell, cells.DefaultMinFill)
		if glyph == nil {
			t.Fatalf("digit %d template produced no glyph", d)
		}
		tc.templates[d] = glyph
	}
	return tc
}

func (tc *templateClassifier) Classify(glyph *image.Gray) (model.Digit, error) {
	best, bestDist := model.Digit(0), math.MaxInt
	for d := model.Digit(1); d <= 9; d++ {
		dist := 0
		tpl := tc.templates[d]
		for i := range tpl.Pix {
			diff := int(tpl.Pix[i]) - int(glyph.Pix[i])
			if diff < 0 {
				diff = -diff
			}
			dist += diff
		}
		if dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best, nil
}

func (tc *templateClassifier) Close() error { return nil }

func TestPipeline_SolvesCleanPhoto(t *testing.T) {
	img := puzzleImage(samplePuzzle)
	classifier := newTemplateClassifier(t)

	candidate, solution, warnings, err := gridsolve.FromImage(img).
		WithClassifier(classifier).
		Grids()
	if err != nil {
		t.Fatalf("Grids failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %s", gridsolve.FormatWarnings(warnings))
	}
	if candidate != samplePuzzle {
		t.Errorf("recognized grid differs from rendered puzzle:\ngot\n%s\nwant\n%s",
			render.Text(candidate), render.Text(samplePuzzle))
	}
	if solution != sampleSolution {
		t.Errorf("solution mismatch:\ngot\n%s\nwant\n%s",
			render.Text(solution), render.Text(sampleSolution))
	}

	text, _, err := gridsolve.FromImage(img).WithClassifier(classifier).Solve()
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if want := render.Text(sampleSolution); text != want {
		t.Errorf("rendered output mismatch:\ngot\n%s\nwant\n%s", text, want)
	}

	// Round-trip: the rendered text parses back to the solution.
	back, err := render.Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if back != solution {
		t.Error("parsed output differs from solution grid")
	}
}

func TestPipeline_NoBoardInImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 300, 300))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	_, _, err := gridsolve.FromImage(img).
		WithClassifier(ocr.ClassifierFunc(func(*image.Gray) (model.Digit, error) { return 0, nil })).
		Solve()
	if !errors.Is(err, gridsolve.ErrNoBoardFound) {
		t.Errorf("Solve = %v, want ErrNoBoardFound", err)
	}
}

func TestPipeline_LenientAbsorbsUnreadableCells(t *testing.T) {
	img := puzzleImage(samplePuzzle)
	failing := ocr.ClassifierFunc(func(*image.Gray) (model.Digit, error) {
		return 0, ocr.ErrClassificationFailed
	})

	candidate, warnings, err := gridsolve.FromImage(img).
		WithClassifier(failing).
		Recognize()
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if !candidate.Empty() {
		t.Error("all cells should have been absorbed as blank")
	}
	if want := samplePuzzle.Count(); len(warnings) != want {
		t.Errorf("got %d warnings, want %d (one per rendered digit)", len(warnings), want)
	}
}

func TestPipeline_StrictAbortsOnUnreadableCell(t *testing.T) {
	img := puzzleImage(samplePuzzle)
	failing := ocr.ClassifierFunc(func(*image.Gray) (model.Digit, error) {
		return 0, ocr.ErrClassificationFailed
	})

	_, _, err := gridsolve.FromImage(img).
		WithClassifier(failing).
		Strict().
		Recognize()
	if !errors.Is(err, gridsolve.ErrClassificationFailed) {
		t.Errorf("Recognize = %v, want ErrClassificationFailed", err)
	}
}

func TestPipeline_BoardOnly(t *testing.T) {
	img := puzzleImage(samplePuzzle)
	board, err := gridsolve.FromImage(img).Board()
	if err != nil {
		t.Fatalf("Board failed: %v", err)
	}
	if board.Size != 450 {
		t.Errorf("Size = %d, want 450", board.Size)
	}
	if board.Gray == nil || board.Color == nil {
		t.Error("both grayscale and color variants should be retained")
	}
}

func TestPipeline_InvalidOption(t *testing.T) {
	_, _, err := gridsolve.FromImage(puzzleImage(samplePuzzle)).BoardSize(3).Solve()
	if err == nil {
		t.Error("expected error for unusable board size")
	}
}
