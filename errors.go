package gridsolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/gridsolve/geometry"
	"github.com/tsawler/gridsolve/ocr"
	"github.com/tsawler/gridsolve/solver"
)

// Failure kinds surfaced by the pipeline. Each terminal error wraps one
// of these sentinels with stage context, so callers dispatch with
// errors.Is and can present "no puzzle detected" differently from
// "puzzle unsolvable".
var (
	// ErrInvalidImage reports that the input bytes are not a decodable
	// raster image.
	ErrInvalidImage = errors.New("cannot decode input image")

	// ErrNoBoardFound reports that no puzzle outline was detected.
	ErrNoBoardFound = geometry.ErrNoBoardFound

	// ErrDegenerateBoundary reports corners that cannot bound a board.
	ErrDegenerateBoundary = geometry.ErrDegenerateBoundary

	// ErrClassificationFailed reports an unreadable cell. It aborts the
	// pipeline only in strict mode; by default the cell is recorded as
	// blank and a Warning is accumulated.
	ErrClassificationFailed = ocr.ErrClassificationFailed

	// ErrUnsatisfiable reports a recognized grid with no valid completion.
	ErrUnsatisfiable = solver.ErrUnsatisfiable

	// ErrTimeout reports that solving exceeded its search budget.
	ErrTimeout = solver.ErrTimeout
)

// Warning describes a non-fatal problem encountered while processing:
// the pipeline produced a result, but one of its inputs was imperfect.
type Warning struct {
	Row, Col int
	Message  string
}

func (w Warning) String() string {
	return fmt.Sprintf("cell (%d,%d): %s", w.Row, w.Col, w.Message)
}

// FormatWarnings formats warnings as a single semicolon-separated string
// for logging.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
