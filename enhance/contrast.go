package enhance

import (
	"image"
	"image/color"
	"math"
)

// enhanceContrast applies contrast-limited adaptive histogram equalization
// (CLAHE) to the luminance channel only, leaving chrominance untouched so
// the color balance of the card is preserved.
func (e *Enhancer) enhanceContrast(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	// Split into luminance and chrominance planes.
	luma := make([]uint8, w*h)
	cb := make([]uint8, w*h)
	cr := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := src.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			yy, pb, pr := color.RGBToYCbCr(p.R, p.G, p.B)
			luma[y*w+x] = yy
			cb[y*w+x] = pb
			cr[y*w+x] = pr
		}
	}

	equalized := e.clahe(luma, w, h)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			r, g, bb := color.YCbCrToRGB(equalized[i], cb[i], cr[i])
			dst.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: bb, A: src.NRGBAAt(b.Min.X+x, b.Min.Y+y).A})
		}
	}

	return dst
}

// clahe equalizes a single 8-bit plane tile by tile, clipping each tile
// histogram at the configured limit and interpolating between neighboring
// tile mappings to avoid visible tile seams.
func (e *Enhancer) clahe(plane []uint8, w, h int) []uint8 {
	grid := e.cfg.TileGrid
	if grid > w {
		grid = w
	}
	if grid > h {
		grid = h
	}
	if grid < 1 {
		grid = 1
	}

	tileW := (w + grid - 1) / grid
	tileH := (h + grid - 1) / grid

	// Build one remapping LUT per tile.
	luts := make([][256]uint8, grid*grid)
	for ty := 0; ty < grid; ty++ {
		for tx := 0; tx < grid; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := clampInt(x0+tileW, 0, w), clampInt(y0+tileH, 0, h)

			var hist [256]int
			count := 0
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					hist[plane[y*w+x]]++
					count++
				}
			}
			if count == 0 {
				continue
			}

			// Clip the histogram and redistribute the excess uniformly.
			limit := int(e.cfg.ClipLimit * float64(count) / 256)
			if limit < 1 {
				limit = 1
			}
			excess := 0
			for i := range hist {
				if hist[i] > limit {
					excess += hist[i] - limit
					hist[i] = limit
				}
			}
			share := excess / 256
			for i := range hist {
				hist[i] += share
			}

			// Cumulative distribution to LUT.
			cum := 0
			scale := 255.0 / float64(count)
			for i := range hist {
				cum += hist[i]
				luts[ty*grid+tx][i] = uint8(math.Round(float64(cum) * scale))
			}
		}
	}

	// Remap each pixel by bilinear interpolation between the four nearest
	// tile LUTs.
	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Position relative to tile centers.
			fx := (float64(x)-float64(tileW)/2 + 0.5) / float64(tileW)
			fy := (float64(y)-float64(tileH)/2 + 0.5) / float64(tileH)

			tx0 := clampInt(int(math.Floor(fx)), 0, grid-1)
			ty0 := clampInt(int(math.Floor(fy)), 0, grid-1)
			tx1 := clampInt(tx0+1, 0, grid-1)
			ty1 := clampInt(ty0+1, 0, grid-1)

			wx := fx - math.Floor(fx)
			wy := fy - math.Floor(fy)

			v := plane[y*w+x]
			top := float64(luts[ty0*grid+tx0][v])*(1-wx) + float64(luts[ty0*grid+tx1][v])*wx
			bot := float64(luts[ty1*grid+tx0][v])*(1-wx) + float64(luts[ty1*grid+tx1][v])*wx
			out[y*w+x] = uint8(top*(1-wy) + bot*wy + 0.5)
		}
	}

	return out
}
