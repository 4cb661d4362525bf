package gridsolve

import (
	"bytes"
	"fmt"
	"image"
	"os"

	// Registered raster formats for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/tsawler/gridsolve/cells"
	"github.com/tsawler/gridsolve/geometry"
	"github.com/tsawler/gridsolve/model"
	"github.com/tsawler/gridsolve/ocr"
	"github.com/tsawler/gridsolve/render"
	"github.com/tsawler/gridsolve/solver"
)

// Pipeline provides a fluent interface for the photo-to-solution
// transformation. Each configuration method returns a new Pipeline
// instance, making a configured Pipeline safe for concurrent use and
// allowing method chaining.
type Pipeline struct {
	// Source (exactly one is set)
	filename string
	data     []byte
	img      image.Image

	// Configuration
	options solveOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Pipeline with copied options, so
// each chain method returns an independent instance.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		filename: p.filename,
		data:     p.data,
		img:      p.img,
		options:  p.options.clone(),
		err:      p.err,
	}
}

// WithClassifier substitutes a digit classifier for the default
// Tesseract engine. The classifier is shared, not owned: the pipeline
// never closes it.
func (p *Pipeline) WithClassifier(c ocr.Classifier) *Pipeline {
	np := p.clone()
	np.options.classifier = c
	return np
}

// Strict makes any unreadable cell abort the pipeline with
// ErrClassificationFailed. By default unreadable cells are recorded as
// blank and reported as warnings, since the solver tolerates sparse
// input.
func (p *Pipeline) Strict() *Pipeline {
	np := p.clone()
	np.options.strict = true
	return np
}

// BoardSize overrides the side length of the canonical rectified board.
func (p *Pipeline) BoardSize(size int) *Pipeline {
	np := p.clone()
	if size < 9 {
		np.err = fmt.Errorf("board size %d is too small", size)
		return np
	}
	np.options.boardSize = size
	return np
}

// MinFill overrides the minimum glyph coverage fraction below which a
// cell is declared empty.
func (p *Pipeline) MinFill(fraction float64) *Pipeline {
	np := p.clone()
	np.options.minFill = fraction
	return np
}

// MaxNodes overrides the solver's decision-node budget.
func (p *Pipeline) MaxNodes(n int) *Pipeline {
	np := p.clone()
	np.options.maxNodes = n
	return np
}

// decode produces the source image, reading and decoding lazily.
func (p *Pipeline) decode() (image.Image, error) {
	if p.img != nil {
		return p.img, nil
	}
	data := p.data
	if data == nil {
		var err error
		data, err = os.ReadFile(p.filename)
		if err != nil {
			return nil, err
		}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return img, nil
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Board locates and rectifies the puzzle without recognizing digits.
func (p *Pipeline) Board() (*model.RectifiedBoard, error) {
	if p.err != nil {
		return nil, p.err
	}
	img, err := p.decode()
	if err != nil {
		return nil, err
	}
	board, err := geometry.Locate(img, p.options.boardSize)
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}
	return board, nil
}

// Recognize runs localization, segmentation, and classification,
// returning the candidate grid before solving. Warnings report cells
// that were absorbed as blank in lenient mode.
func (p *Pipeline) Recognize() (model.Grid, []Warning, error) {
	if p.err != nil {
		return model.Grid{}, nil, p.err
	}
	board, err := p.Board()
	if err != nil {
		return model.Grid{}, nil, err
	}

	classifier := p.options.classifier
	if classifier == nil {
		t, err := ocr.NewTesseract()
		if err != nil {
			return model.Grid{}, nil, fmt.Errorf("classifier: %w", err)
		}
		defer t.Close()
		classifier = t
	}

	var warnings []Warning
	digits := make([]model.Digit, 0, 81)
	for _, cell := range cells.Segment(board, p.options.minFill) {
		if cell.Image == nil {
			digits = append(digits, 0)
			continue
		}
		d, err := classifier.Classify(cell.Image)
		if err != nil {
			if p.options.strict {
				return model.Grid{}, nil, fmt.Errorf("classify cell (%d,%d): %w", cell.Row, cell.Col, err)
			}
			warnings = append(warnings, Warning{
				Row:     cell.Row,
				Col:     cell.Col,
				Message: fmt.Sprintf("unreadable, treated as blank: %v", err),
			})
			d = 0
		}
		digits = append(digits, d)
	}
	return assemble(digits), warnings, nil
}

// Grids runs the full pipeline and returns both the recognized candidate
// grid and its solution.
func (p *Pipeline) Grids() (candidate, solution model.Grid, warnings []Warning, err error) {
	candidate, warnings, err = p.Recognize()
	if err != nil {
		return model.Grid{}, model.Grid{}, nil, err
	}
	solution, _, err = solver.Solve(candidate, p.options.maxNodes)
	if err != nil {
		return candidate, model.Grid{}, warnings, fmt.Errorf("solver: %w", err)
	}
	return candidate, solution, warnings, nil
}

// Solve runs the full pipeline and renders the solved grid as a
// bordered text block.
//
// Example:
//
//	text, warnings, err := gridsolve.Open("puzzle.jpg").Solve()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", gridsolve.FormatWarnings(warnings))
//	}
func (p *Pipeline) Solve() (string, []Warning, error) {
	_, solution, warnings, err := p.Grids()
	if err != nil {
		return "", warnings, err
	}
	return render.Text(solution), warnings, nil
}

// assemble folds 81 digits in row-major order into a grid. Pure
// reshaping; constraint validation belongs to the solver.
func assemble(digits []model.Digit) model.Grid {
	var g model.Grid
	for i, d := range digits {
		g[i/9][i%9] = d
	}
	return g
}
