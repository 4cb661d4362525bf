package cells

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/gridsolve/model"
)

// otsuThreshold picks the intensity split maximizing between-class
// variance. The second result is false for a flat histogram (a blank
// crop with no contrast at all).
func otsuThreshold(g *image.Gray) (uint8, bool) {
	var hist [256]int
	total := 0
	for y := g.Rect.Min.Y; y < g.Rect.Max.Y; y++ {
		for x := g.Rect.Min.X; x < g.Rect.Max.X; x++ {
			hist[g.GrayAt(x, y).Y]++
			total++
		}
	}

	var sumAll float64
	for v, n := range hist {
		sumAll += float64(v * n)
	}

	var sumBelow float64
	nBelow := 0
	bestT, bestVar := 0, -1.0
	for t := 0; t < 256; t++ {
		nBelow += hist[t]
		if nBelow == 0 {
			continue
		}
		nAbove := total - nBelow
		if nAbove == 0 {
			break
		}
		sumBelow += float64(t * hist[t])
		meanBelow := sumBelow / float64(nBelow)
		meanAbove := (sumAll - sumBelow) / float64(nAbove)
		d := meanBelow - meanAbove
		between := float64(nBelow) * float64(nAbove) * d * d
		if between > bestVar {
			bestVar = between
			bestT = t
		}
	}
	if bestVar <= 0 {
		return 0, false
	}
	return uint8(bestT), true
}

// binarize marks pixels at or below the threshold (dark ink) as
// foreground 255 in a new image anchored at the origin.
func binarize(g *image.Gray, thresh uint8) *image.Gray {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if g.GrayAt(g.Rect.Min.X+x, g.Rect.Min.Y+y).Y <= thresh {
				out.Pix[out.PixOffset(x, y)] = 255
			}
		}
	}
	return out
}

// clearBorder removes every foreground component connected to the cell
// boundary. Residual grid lines and board-frame slivers from imperfect
// rectification always touch the boundary; a digit glyph does not.
func clearBorder(bin *image.Gray) {
	w, h := bin.Rect.Dx(), bin.Rect.Dy()

	var stack []image.Point
	push := func(x, y int) {
		if bin.Pix[bin.PixOffset(x, y)] != 0 {
			bin.Pix[bin.PixOffset(x, y)] = 0
			stack = append(stack, image.Point{X: x, Y: y})
		}
	}
	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				push(nx, ny)
			}
		}
	}
}

// largestComponent finds the biggest 8-connected foreground component
// and returns its bounding box. ok is false when no foreground exists.
func largestComponent(bin *image.Gray) (bbox image.Rectangle, ok bool) {
	w, h := bin.Rect.Dx(), bin.Rect.Dy()
	visited := make([]bool, w*h)
	bestSize := 0

	var stack []image.Point
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			if visited[sy*w+sx] || bin.Pix[bin.PixOffset(sx, sy)] == 0 {
				continue
			}
			size := 0
			box := image.Rect(sx, sy, sx+1, sy+1)
			visited[sy*w+sx] = true
			stack = append(stack[:0], image.Point{X: sx, Y: sy})
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				size++
				box = box.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
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
						stack = append(stack, image.Point{X: nx, Y: ny})
					}
				}
			}
			if size > bestSize {
				bestSize = size
				bbox = box
			}
		}
	}
	return bbox, bestSize > 0
}

// normalizeGlyph scales the masked glyph into a centered box occupying
// roughly two thirds of a GlyphSize x GlyphSize canvas, preserving
// aspect ratio. Output is white ink on black background.
func normalizeGlyph(mask *image.Gray, bbox image.Rectangle) *image.Gray {
	const inner = model.GlyphSize * 5 / 8 // 20 for a 32px canvas

	bw, bh := bbox.Dx(), bbox.Dy()
	scale := float64(inner) / float64(bw)
	if s := float64(inner) / float64(bh); s < scale {
		scale = s
	}
	tw := int(float64(bw)*scale + 0.5)
	th := int(float64(bh)*scale + 0.5)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	out := image.NewGray(image.Rect(0, 0, model.GlyphSize, model.GlyphSize))
	ox := (model.GlyphSize - tw) / 2
	oy := (model.GlyphSize - th) / 2
	xdraw.ApproxBiLinear.Scale(out, image.Rect(ox, oy, ox+tw, oy+th), mask.SubImage(bbox), bbox, xdraw.Src, nil)
	return out
}
