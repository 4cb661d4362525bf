package gridsolve

import (
	"github.com/tsawler/gridsolve/cells"
	"github.com/tsawler/gridsolve/geometry"
	"github.com/tsawler/gridsolve/ocr"
	"github.com/tsawler/gridsolve/solver"
)

// solveOptions holds configuration for a pipeline run.
type solveOptions struct {
	classifier ocr.Classifier
	strict     bool
	boardSize  int
	minFill    float64
	maxNodes   int
}

// defaultOptions returns the default pipeline options.
func defaultOptions() solveOptions {
	return solveOptions{
		classifier: nil, // Tesseract is constructed lazily when unset
		strict:     false,
		boardSize:  geometry.DefaultBoardSize,
		minFill:    cells.DefaultMinFill,
		maxNodes:   solver.DefaultMaxNodes,
	}
}

// clone copies the options. The classifier handle is shared by design:
// it is the process-wide model loaded once at startup.
func (o solveOptions) clone() solveOptions {
	return solveOptions{
		classifier: o.classifier,
		strict:     o.strict,
		boardSize:  o.boardSize,
		minFill:    o.minFill,
		maxNodes:   o.maxNodes,
	}
}
