package geometry

import (
	"fmt"
	"image"
	"math"

	"github.com/tsawler/gridsolve/model"
)

// homography is a 3x3 projective transform in row-major order.
type homography [9]float64

// apply maps a point through the transform.
func (h homography) apply(x, y float64) (float64, float64) {
	w := h[6]*x + h[7]*y + h[8]
	return (h[0]*x + h[1]*y + h[2]) / w, (h[3]*x + h[4]*y + h[5]) / w
}

// computeHomography solves for the transform mapping the axis-aligned
// square (0,0)-(size,size) onto the quadrilateral, using the direct
// linear transform: four point correspondences give eight equations in
// the eight unknown coefficients (h22 is fixed at 1).
func computeHomography(q model.Quad, size float64) (homography, error) {
	src := [4]model.Point{
		{X: 0, Y: 0},
		{X: size, Y: 0},
		{X: size, Y: size},
		{X: 0, Y: size},
	}

	// Build the 8x9 augmented system row by row.
	var m [8][9]float64
	for i := 0; i < 4; i++ {
		sx, sy := src[i].X, src[i].Y
		dx, dy := q[i].X, q[i].Y
		m[2*i] = [9]float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx, dx}
		m[2*i+1] = [9]float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy, dy}
	}

	// Gaussian elimination with partial pivoting.
	for col := 0; col < 8; col++ {
		pivot := col
		for r := col + 1; r < 8; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return homography{}, fmt.Errorf("singular correspondence matrix")
		}
		m[col], m[pivot] = m[pivot], m[col]
		for r := 0; r < 8; r++ {
			if r == col {
				continue
			}
			f := m[r][col] / m[col][col]
			for c := col; c < 9; c++ {
				m[r][c] -= f * m[col][c]
			}
		}
	}

	var h homography
	for i := 0; i < 8; i++ {
		h[i] = m[i][8] / m[i][i]
	}
	h[8] = 1
	return h, nil
}

// Warp resamples the source image through the quadrilateral into an
// axis-aligned size x size square, producing both color and grayscale
// variants. Sampling is bilinear with border clamping.
func Warp(src image.Image, q model.Quad, size int) (*model.RectifiedBoard, error) {
	h, err := computeHomography(q, float64(size))
	if err != nil {
		return nil, err
	}

	rgba := toRGBA(src)
	gray := Grayscale(src)

	outColor := image.NewRGBA(image.Rect(0, 0, size, size))
	outGray := image.NewGray(image.Rect(0, 0, size, size))

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// Sample at the pixel center for symmetric coverage.
			sx, sy := h.apply(float64(x)+0.5, float64(y)+0.5)
			r, g, b, a := sampleRGBA(rgba, sx-0.5, sy-0.5)
			o := outColor.PixOffset(x, y)
			outColor.Pix[o+0] = r
			outColor.Pix[o+1] = g
			outColor.Pix[o+2] = b
			outColor.Pix[o+3] = a
			outGray.Pix[outGray.PixOffset(x, y)] = sampleGray(gray, sx-0.5, sy-0.5)
		}
	}
	return &model.RectifiedBoard{Color: outColor, Gray: outGray, Size: size}, nil
}

// toRGBA returns an origin-anchored RGBA copy of img. Like Grayscale it
// never passes a sub-image through, so pixel indexing stays zero-based.
func toRGBA(img image.Image) *image.RGBA {
	if r, ok := img.(*image.RGBA); ok && r.Rect.Min == (image.Point{}) {
		return r
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sampleGray reads a bilinear-interpolated intensity at fractional
// coordinates, clamping beyond-border reads to the nearest edge pixel.
func sampleGray(g *image.Gray, fx, fy float64) uint8 {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := clampInt(x0+1, 0, w-1)
	y1 := clampInt(y0+1, 0, h-1)
	x0 = clampInt(x0, 0, w-1)
	y0 = clampInt(y0, 0, h-1)

	p00 := float64(g.Pix[g.PixOffset(x0, y0)])
	p10 := float64(g.Pix[g.PixOffset(x1, y0)])
	p01 := float64(g.Pix[g.PixOffset(x0, y1)])
	p11 := float64(g.Pix[g.PixOffset(x1, y1)])

	top := p00 + (p10-p00)*tx
	bot := p01 + (p11-p01)*tx
	return uint8(math.Round(top + (bot-top)*ty))
}

// sampleRGBA is sampleGray over four channels.
func sampleRGBA(img *image.RGBA, fx, fy float64) (uint8, uint8, uint8, uint8) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := clampInt(x0+1, 0, w-1)
	y1 := clampInt(y0+1, 0, h-1)
	x0 = clampInt(x0, 0, w-1)
	y0 = clampInt(y0, 0, h-1)

	var out [4]uint8
	o00 := img.PixOffset(x0, y0)
	o10 := img.PixOffset(x1, y0)
	o01 := img.PixOffset(x0, y1)
	o11 := img.PixOffset(x1, y1)
	for ch := 0; ch < 4; ch++ {
		p00 := float64(img.Pix[o00+ch])
		p10 := float64(img.Pix[o10+ch])
		p01 := float64(img.Pix[o01+ch])
		p11 := float64(img.Pix[o11+ch])
		top := p00 + (p10-p00)*tx
		bot := p01 + (p11-p01)*tx
		out[ch] = uint8(math.Round(top + (bot-top)*ty))
	}
	return out[0], out[1], out[2], out[3]
}
