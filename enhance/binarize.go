package enhance

import (
	"image"
	"math"
)

// adaptiveThreshold binarizes a grayscale image against a Gaussian-weighted
// local mean minus a constant offset. Comparing against a local rather than
// global threshold keeps glyphs legible under the uneven lighting a handheld
// card photograph always has. Pixels brighter than their local threshold
// become white, the rest black.
func (e *Enhancer) adaptiveThreshold(gray *image.Gray) *image.Gray {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()

	block := e.cfg.ThresholdBlock
	radius := block / 2
	kernel := gaussianKernel1D(block)

	// Separable Gaussian mean: horizontal pass, then vertical.
	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				sum += kernel[k+radius] * float64(grayAtClamped(gray, b.Min.X+x+k, b.Min.Y+y))
			}
			tmp[y*w+x] = sum
		}
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var mean float64
			for k := -radius; k <= radius; k++ {
				yy := clampInt(y+k, 0, h-1)
				mean += kernel[k+radius] * tmp[yy*w+x]
			}

			if float64(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y) > mean-e.cfg.ThresholdOffset {
				dst.Pix[y*w+x] = 255
			}
		}
	}

	return dst
}

// gaussianKernel1D builds a normalized 1D Gaussian kernel of the given odd
// size, with sigma derived from the size so larger windows smooth more.
func gaussianKernel1D(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8

	kernel := make([]float64, size)
	radius := size / 2
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
