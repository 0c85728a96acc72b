package enhance

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// resize downscales to the target width with Catmull-Rom (cubic)
// interpolation, preserving aspect ratio. Narrower images pass through
// untouched so the pipeline never upsamples.
func (e *Enhancer) resize(src *image.NRGBA) *image.NRGBA {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	if w <= e.cfg.TargetWidth {
		return src
	}

	newH := h * e.cfg.TargetWidth / w
	if newH < 1 {
		newH = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, e.cfg.TargetWidth, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// toGray converts to 8-bit grayscale using the standard luminance weights.
func toGray(src *image.NRGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x-b.Min.X, y-b.Min.Y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return dst
}

// clampInt limits v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// grayAtClamped samples a grayscale pixel, replicating edge pixels for
// out-of-bounds coordinates.
func grayAtClamped(img *image.Gray, x, y int) uint8 {
	b := img.Bounds()
	x = clampInt(x, b.Min.X, b.Max.X-1)
	y = clampInt(y, b.Min.Y, b.Max.Y-1)
	return img.GrayAt(x, y).Y
}

// nrgbaAtClamped samples a color pixel, replicating edge pixels for
// out-of-bounds coordinates.
func nrgbaAtClamped(img *image.NRGBA, x, y int) color.NRGBA {
	b := img.Bounds()
	x = clampInt(x, b.Min.X, b.Max.X-1)
	y = clampInt(y, b.Min.Y, b.Max.Y-1)
	return img.NRGBAAt(x, y)
}
