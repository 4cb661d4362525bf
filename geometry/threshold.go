package geometry

import (
	"image"
	"image/color"
	"image/draw"
)

// Grayscale converts any image to 8-bit grayscale using the standard
// library's luminance conversion. The result is always anchored at the
// origin, so sub-images are copied rather than returned as-is.
func Grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// integralImage stores summed-area values for O(1) window sums.
// sum[(y+1)*(w+1)+(x+1)] is the sum of all pixels at or above-left of (x,y).
type integralImage struct {
	w, h int
	sum  []uint64
}

func newIntegralImage(g *image.Gray) *integralImage {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	ii := &integralImage{w: w, h: h, sum: make([]uint64, (w+1)*(h+1))}
	stride := w + 1
	for y := 0; y < h; y++ {
		var rowSum uint64
		for x := 0; x < w; x++ {
			rowSum += uint64(g.GrayAt(g.Rect.Min.X+x, g.Rect.Min.Y+y).Y)
			ii.sum[(y+1)*stride+(x+1)] = ii.sum[y*stride+(x+1)] + rowSum
		}
	}
	return ii
}

// windowMean returns the mean intensity of the window centered at (x, y)
// with the given radius, clamped to the image border.
func (ii *integralImage) windowMean(x, y, radius int) uint8 {
	x0, y0 := x-radius, y-radius
	x1, y1 := x+radius+1, y+radius+1
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > ii.w {
		x1 = ii.w
	}
	if y1 > ii.h {
		y1 = ii.h
	}
	stride := ii.w + 1
	total := ii.sum[y1*stride+x1] - ii.sum[y0*stride+x1] - ii.sum[y1*stride+x0] + ii.sum[y0*stride+x0]
	return uint8(total / uint64((x1-x0)*(y1-y0)))
}

// BoxBlur smooths a grayscale image with a square mean filter of the
// given radius (radius 3 gives a 7x7 window).
func BoxBlur(g *image.Gray, radius int) *image.Gray {
	ii := newIntegralImage(g)
	w, h := g.Rect.Dx(), g.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetGray(x, y, color.Gray{Y: ii.windowMean(x, y, radius)})
		}
	}
	return out
}

// AdaptiveThreshold binarizes a grayscale image against the local mean:
// a pixel becomes foreground (255) when it is darker than the mean of
// the surrounding block-sized window by more than delta. The inversion
// makes dark ink and grid lines the foreground.
func AdaptiveThreshold(g *image.Gray, block, delta int) *image.Gray {
	ii := newIntegralImage(g)
	w, h := g.Rect.Dx(), g.Rect.Dy()
	radius := block / 2
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mean := int(ii.windowMean(x, y, radius))
			v := int(g.GrayAt(g.Rect.Min.X+x, g.Rect.Min.Y+y).Y)
			if v < mean-delta {
				out.Pix[out.PixOffset(x, y)] = 255
			}
		}
	}
	return out
}
