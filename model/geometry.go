package model

import "math"

// Point represents a 2D point in image coordinates.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Quad is a quadrilateral describing a detected board boundary.
// Corners are stored in canonical order: top-left, top-right,
// bottom-right, bottom-left.
type Quad [4]Point

// OrderQuad canonicalizes four corner points produced in arbitrary order.
// The top-left corner has the smallest x+y sum, the bottom-right the
// largest; the top-right corner has the largest x-y difference, the
// bottom-left the smallest. This is deterministic for any input order.
func OrderQuad(pts [4]Point) Quad {
	var q Quad
	minSum, maxSum := math.Inf(1), math.Inf(-1)
	minDiff, maxDiff := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		sum := p.X + p.Y
		diff := p.X - p.Y
		if sum < minSum {
			minSum = sum
			q[0] = p // top-left
		}
		if sum > maxSum {
			maxSum = sum
			q[2] = p // bottom-right
		}
		if diff > maxDiff {
			maxDiff = diff
			q[1] = p // top-right
		}
		if diff < minDiff {
			minDiff = diff
			q[3] = p // bottom-left
		}
	}
	return q
}

// Area returns the enclosed area of the quadrilateral via the shoelace
// formula. The result is positive for canonically ordered corners.
func (q Quad) Area() float64 {
	var sum float64
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		sum += q[i].X*q[j].Y - q[j].X*q[i].Y
	}
	return math.Abs(sum) / 2
}

// IsDegenerate reports whether the quadrilateral cannot bound a real
// board: near-zero area, repeated corners, or a non-convex outline.
func (q Quad) IsDegenerate() bool {
	const minArea = 1.0
	if q.Area() < minArea {
		return true
	}
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if q[i].Distance(q[j]) < 1.0 {
				return true
			}
		}
	}
	// Convexity: all cross products of consecutive edges must share a sign.
	sign := 0
	for i := 0; i < 4; i++ {
		a, b, c := q[i], q[(i+1)%4], q[(i+2)%4]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		switch {
		case cross > 0:
			if sign < 0 {
				return true
			}
			sign = 1
		case cross < 0:
			if sign > 0 {
				return true
			}
			sign = -1
		}
	}
	return false
}
