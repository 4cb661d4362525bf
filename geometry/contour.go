package geometry

import (
	"image"
	"sort"

	"github.com/tsawler/gridsolve/model"
)

// region is an 8-connected foreground component of a binary image.
// Edge points (the leftmost and rightmost pixel of the region on each
// scanline) are enough to build its convex hull.
type region struct {
	pixels   int
	edges    []image.Point
	hull     []model.Point
	hullArea float64
}

// findRegions labels 8-connected foreground (255) components by
// breadth-first search in scanline order, so labelling is deterministic.
func findRegions(bin *image.Gray) []*region {
	w, h := bin.Rect.Dx(), bin.Rect.Dy()
	visited := make([]bool, w*h)
	var regions []*region

	var queue []image.Point
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			if visited[sy*w+sx] || bin.Pix[bin.PixOffset(sx, sy)] == 0 {
				continue
			}
			reg := &region{}
			// Track the horizontal extent of the region per scanline.
			minX := make(map[int]int)
			maxX := make(map[int]int)

			visited[sy*w+sx] = true
			queue = append(queue[:0], image.Point{X: sx, Y: sy})
			for len(queue) > 0 {
				p := queue[0]
				queue = queue[1:]
				reg.pixels++
				if v, ok := minX[p.Y]; !ok || p.X < v {
					minX[p.Y] = p.X
				}
				if v, ok := maxX[p.Y]; !ok || p.X > v {
					maxX[p.Y] = p.X
				}
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h || visited[ny*w+nx] {
							continue
						}
						if bin.Pix[bin.PixOffset(nx, ny)] == 0 {
							continue
						}
						visited[ny*w+nx] = true
						queue = append(queue, image.Point{X: nx, Y: ny})
					}
				}
			}

			for y, x := range minX {
				reg.edges = append(reg.edges, image.Point{X: x, Y: y})
				if mx := maxX[y]; mx != x {
					reg.edges = append(reg.edges, image.Point{X: mx, Y: y})
				}
			}
			reg.hull = convexHull(reg.edges)
			reg.hullArea = polygonArea(reg.hull)
			regions = append(regions, reg)
		}
	}
	return regions
}

// convexHull computes the convex hull of a point set using Andrew's
// monotone chain, returning vertices in counter-clockwise order in image
// coordinates (y grows downward).
func convexHull(pts []image.Point) []model.Point {
	if len(pts) < 3 {
		out := make([]model.Point, 0, len(pts))
		for _, p := range pts {
			out = append(out, model.Point{X: float64(p.X), Y: float64(p.Y)})
		}
		return out
	}
	sorted := make([]image.Point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	cross := func(o, a, b image.Point) int {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	hull := make([]image.Point, 0, 2*len(sorted))
	// Lower hull.
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// Upper hull.
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1]

	out := make([]model.Point, len(hull))
	for i, p := range hull {
		out[i] = model.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}

// polygonArea returns the absolute area enclosed by a polygon.
func polygonArea(poly []model.Point) float64 {
	if len(poly) < 3 {
		return 0
	}
	var sum float64
	for i := range poly {
		j := (i + 1) % len(poly)
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// cornerQuad extracts the four extremal corners of a hull: smallest and
// largest x+y give top-left and bottom-right, largest and smallest x-y
// give top-right and bottom-left. For a photographed rectangle these are
// its actual corners.
func cornerQuad(hull []model.Point) (model.Quad, bool) {
	if len(hull) < 4 {
		return model.Quad{}, false
	}
	tl, tr, br, bl := hull[0], hull[0], hull[0], hull[0]
	for _, p := range hull[1:] {
		if p.X+p.Y < tl.X+tl.Y {
			tl = p
		}
		if p.X+p.Y > br.X+br.Y {
			br = p
		}
		if p.X-p.Y > tr.X-tr.Y {
			tr = p
		}
		if p.X-p.Y < bl.X-bl.Y {
			bl = p
		}
	}
	return model.OrderQuad([4]model.Point{tl, tr, br, bl}), true
}

// quadFitsHull reports whether the extremal quad is a faithful polygon
// approximation of the hull. A rectangle-like region scores close to 1;
// a round blob's extremal quad misses roughly a third of the hull area.
func quadFitsHull(q model.Quad, hullArea float64) bool {
	const minFit = 0.8
	if hullArea <= 0 {
		return false
	}
	return q.Area() >= minFit*hullArea
}
