package solver

import (
	"errors"
	"math/bits"
	"time"

	"github.com/tsawler/gridsolve/model"
)

var (
	// ErrUnsatisfiable reports a grid with no constraint-satisfying
	// completion, including grids that are invalid as given.
	ErrUnsatisfiable = errors.New("puzzle is unsatisfiable")

	// ErrTimeout reports that search exceeded the decision-node budget.
	ErrTimeout = errors.New("search budget exhausted")
)

// DefaultMaxNodes is the default decision-node budget for Solve. Genuine
// puzzles solve in well under ten thousand nodes; the budget exists for
// recognition errors that produce near-empty or contradictory boards.
const DefaultMaxNodes = 2_000_000

// Stats captures search effort for an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// state tracks used digits per unit. Bit v set means digit v is present.
type state struct {
	grid  model.Grid
	rows  [9]uint16
	cols  [9]uint16
	boxes [9]uint16
}

func boxOf(r, c int) int { return (r/3)*3 + c/3 }

// newState builds unit masks from a grid. ok is false when some unit
// already contains a duplicate non-zero digit.
func newState(g model.Grid) (*state, bool) {
	s := &state{grid: g}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			v := g[r][c]
			if v == 0 {
				continue
			}
			bit := uint16(1) << v
			b := boxOf(r, c)
			if s.rows[r]&bit != 0 || s.cols[c]&bit != 0 || s.boxes[b]&bit != 0 {
				return nil, false
			}
			s.rows[r] |= bit
			s.cols[c] |= bit
			s.boxes[b] |= bit
		}
	}
	return s, true
}

// candidates returns the bitmask of legal digits for an empty cell.
func (s *state) candidates(r, c int) uint16 {
	const all = 0x3FE // bits 1..9
	return all &^ (s.rows[r] | s.cols[c] | s.boxes[boxOf(r, c)])
}

func (s *state) place(r, c int, v model.Digit) {
	bit := uint16(1) << v
	s.grid[r][c] = v
	s.rows[r] |= bit
	s.cols[c] |= bit
	s.boxes[boxOf(r, c)] |= bit
}

func (s *state) remove(r, c int, v model.Digit) {
	bit := uint16(1) << v
	s.grid[r][c] = 0
	s.rows[r] &^= bit
	s.cols[c] &^= bit
	s.boxes[boxOf(r, c)] &^= bit
}

// mostConstrained finds the empty cell with the fewest legal candidates,
// scanning in row-major order so ties resolve to the lowest index. The
// second result is false when no empty cell remains.
func (s *state) mostConstrained() (int, int, bool) {
	bestR, bestC, bestN := 0, 0, 10
	found := false
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if s.grid[r][c] != 0 {
				continue
			}
			n := bits.OnesCount16(s.candidates(r, c))
			if !found || n < bestN {
				bestR, bestC, bestN = r, c, n
				found = true
				if n == 0 {
					return bestR, bestC, true
				}
			}
		}
	}
	return bestR, bestC, found
}

// Validate checks the grid for duplicate digits within any row, column,
// or 3x3 box. It returns ErrUnsatisfiable on the first conflict and does
// not attempt any search.
func Validate(g model.Grid) error {
	if _, ok := newState(g); !ok {
		return ErrUnsatisfiable
	}
	return nil
}

// Solve returns a completion of the candidate grid, or ErrUnsatisfiable
// when none exists, or ErrTimeout when search exceeds maxNodes decisions
// (maxNodes <= 0 selects DefaultMaxNodes). The candidate is never
// modified; search runs on a scratch copy. Results are deterministic:
// the same candidate always produces the same output.
func Solve(candidate model.Grid, maxNodes int) (model.Grid, Stats, error) {
	start := time.Now()
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}

	s, ok := newState(candidate)
	if !ok {
		return model.Grid{}, Stats{Duration: time.Since(start)}, ErrUnsatisfiable
	}

	nodes := 0
	overBudget := false
	var dfs func() bool
	dfs = func() bool {
		r, c, open := s.mostConstrained()
		if !open {
			return true
		}
		cand := s.candidates(r, c)
		for v := model.Digit(1); v <= 9; v++ {
			if cand&(1<<v) == 0 {
				continue
			}
			nodes++
			if nodes > maxNodes {
				overBudget = true
				return false
			}
			s.place(r, c, v)
			if dfs() {
				return true
			}
			s.remove(r, c, v)
			if overBudget {
				return false
			}
		}
		return false
	}

	if !dfs() {
		st := Stats{Nodes: nodes, Duration: time.Since(start)}
		if overBudget {
			return model.Grid{}, st, ErrTimeout
		}
		return model.Grid{}, st, ErrUnsatisfiable
	}
	return s.grid, Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}
