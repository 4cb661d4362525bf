// Package geometry locates a Sudoku board in a photograph and produces a
// perspective-corrected square image of it.
//
// [Locate] implements a four-step algorithm:
//
//  1. Preprocess: grayscale conversion, box smoothing, and adaptive mean
//     thresholding, so grid lines stay high-contrast under uneven lighting.
//  2. Detect: enumerate connected foreground regions and rank them by the
//     area their convex hull encloses. The board candidate is the largest
//     region whose hull is well approximated by a four-cornered polygon
//     and covers enough of the frame.
//  3. Order: canonicalize the four corners top-left first via
//     [model.OrderQuad], rejecting degenerate outlines.
//  4. Rectify: compute the homography from the canonical square onto the
//     detected quadrilateral and resample the source through it with
//     bilinear interpolation.
//
// Every step iterates pixels in fixed order and uses no randomness, so
// identical input bytes produce bit-identical rectified output.
package geometry
