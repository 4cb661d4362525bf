// Package render formats 9x9 grids as bordered fixed-width text and
// parses that format back into grids.
package render

import (
	"fmt"
	"strings"

	"github.com/tsawler/gridsolve/model"
)

const border = "+-----------------------+"

// Text renders a grid as a bordered text block. Horizontal separators
// divide the three 3x3 box bands and a "|" separates box columns:
//
//	+-----------------------+
//	| 5 3 4 | 6 7 8 | 9 1 2 |
//	| 6 7 2 | 1 9 5 | 3 4 8 |
//	| 1 9 8 | 3 4 2 | 5 6 7 |
//	+-----------------------+
//	...
//
// Blank cells render as 0. The output is purely presentational.
func Text(g model.Grid) string {
	var b strings.Builder
	b.WriteString(border)
	b.WriteByte('\n')
	for r := 0; r < 9; r++ {
		if r%3 == 0 && r != 0 {
			b.WriteString(border)
			b.WriteByte('\n')
		}
		for c := 0; c < 9; c++ {
			if c%3 == 0 {
				b.WriteString("| ")
			}
			fmt.Fprintf(&b, "%d ", g[r][c])
		}
		b.WriteString("|\n")
	}
	b.WriteString(border)
	return b.String()
}

// Parse is the inverse of Text. It accepts the bordered block produced by
// Text, ignoring border lines and separators, and rejects input that does
// not contain exactly 81 digit cells.
func Parse(s string) (model.Grid, error) {
	var g model.Grid
	n := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "+") {
			continue
		}
		for _, f := range strings.Fields(line) {
			if f == "|" {
				continue
			}
			if len(f) != 1 || f[0] < '0' || f[0] > '9' {
				return model.Grid{}, fmt.Errorf("unexpected token %q", f)
			}
			if n >= 81 {
				return model.Grid{}, fmt.Errorf("more than 81 cells")
			}
			g[n/9][n%9] = f[0] - '0'
			n++
		}
	}
	if n != 81 {
		return model.Grid{}, fmt.Errorf("expected 81 cells, found %d", n)
	}
	return g, nil
}
