// Package model provides the intermediate representation for the
// photo-to-solution pipeline.
//
// This package defines the data structures that flow between pipeline
// stages. Each stage consumes one of these types and produces the next,
// making them the primary API for inspecting intermediate results.
//
// # Geometry
//
// Geometric primitives describe the detected puzzle boundary in source
// image coordinates:
//
//   - [Point] - 2D point with distance calculation
//   - [Quad] - four ordered corners of the detected board
//
// A [Quad] is always stored in canonical order (top-left, top-right,
// bottom-right, bottom-left); use [OrderQuad] to canonicalize corners
// produced in arbitrary detection order.
//
// # Board data
//
// The puzzle itself is represented by:
//
//   - [RectifiedBoard] - the perspective-corrected board image
//   - [Cell] - a normalized single-digit glyph with its grid coordinate
//   - [Digit] - a recognized value in [0,9], 0 meaning blank
//   - [Grid] - the 9x9 puzzle, candidate or solved
//
// Grid has value semantics: stages hand copies across boundaries, so no
// stage ever observes another stage's mutations.
package model
