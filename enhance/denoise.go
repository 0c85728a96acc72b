package enhance

import (
	"image"
	"image/color"
	"math"
)

// Denoise window geometry. A 3x3 patch compared across a 7x7 search window
// keeps quality close to the usual non-local-means parameters while staying
// tractable in pure Go.
const (
	patchRadius  = 1
	searchRadius = 3
)

// denoise applies a non-local-means style filter: each pixel is replaced by
// a weighted average of nearby pixels, where the weight depends on how
// similar their surrounding patches look. Patch similarity is computed on
// luminance and the resulting weights are applied to all three channels,
// which removes sensor and JPEG noise without blurring glyph edges.
func (e *Enhancer) denoise(src *image.NRGBA) *image.NRGBA {
	if e.cfg.DenoiseStrength <= 0 {
		return src
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	gray := toGray(src)
	hh := e.cfg.DenoiseStrength * e.cfg.DenoiseStrength
	patchArea := float64((2*patchRadius + 1) * (2*patchRadius + 1))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sumR, sumG, sumB, sumW float64

			for dy := -searchRadius; dy <= searchRadius; dy++ {
				for dx := -searchRadius; dx <= searchRadius; dx++ {
					d2 := patchDistance(gray, x, y, x+dx, y+dy)
					weight := math.Exp(-d2 / (hh * patchArea))

					p := nrgbaAtClamped(src, x+dx, y+dy)
					sumR += weight * float64(p.R)
					sumG += weight * float64(p.G)
					sumB += weight * float64(p.B)
					sumW += weight
				}
			}

			dst.SetNRGBA(x, y, color.NRGBA{
				R: uint8(sumR/sumW + 0.5),
				G: uint8(sumG/sumW + 0.5),
				B: uint8(sumB/sumW + 0.5),
				A: src.NRGBAAt(x, y).A,
			})
		}
	}

	return dst
}

// patchDistance returns the mean squared luminance difference between the
// patches centered at (x0,y0) and (x1,y1).
func patchDistance(gray *image.Gray, x0, y0, x1, y1 int) float64 {
	var sum float64
	for py := -patchRadius; py <= patchRadius; py++ {
		for px := -patchRadius; px <= patchRadius; px++ {
			a := float64(grayAtClamped(gray, x0+px, y0+py))
			b := float64(grayAtClamped(gray, x1+px, y1+py))
			diff := a - b
			sum += diff * diff
		}
	}
	return sum / float64((2*patchRadius+1)*(2*patchRadius+1))
}
