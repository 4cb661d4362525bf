// Package solver completes partially filled Sudoku grids by backtracking
// search with constraint propagation.
//
// The solver keeps one uint16 bitmask of used digits per row, column, and
// 3x3 box, so legality checks and candidate enumeration are O(1) per cell.
// Search expands the most constrained cell first (fewest remaining legal
// digits, ties broken by lowest row-major index) and tries candidate
// values in ascending order, which makes the result deterministic:
// identical input always yields an identical solution or an identical
// failure.
//
// Input that already contains a duplicate digit in some row, column, or
// box is rejected by [Validate] before any search runs. Search effort is
// bounded by a decision-node cap rather than wall-clock time, so a
// pathological board fails the same way on every machine.
package solver
