// Package cells partitions a rectified board into the 9x9 cell lattice
// and isolates the digit glyph, if any, inside each cell.
//
// The lattice step is the board size divided by 9, floored; the last row
// and column of cells absorb any remainder pixels, so segmentation is
// stable for board sizes that are not a multiple of 9.
//
// Per cell, [Segment] thresholds the crop with Otsu's method, removes
// every foreground component touching the cell boundary so residual
// grid lines are not mistaken for ink, and keeps the largest remaining
// connected foreground component. Cells whose
// largest component covers too little of the cell are declared empty and
// never reach the classifier; grid-line fragments and scan noise near
// cell edges otherwise produce false digits on blank cells. Surviving
// glyphs are cropped, centered, and scaled onto a square canvas of
// [model.GlyphSize] pixels for classification.
package cells
