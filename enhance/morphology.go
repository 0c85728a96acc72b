package enhance

import "image"

// morphClean removes binarization artifacts: an opening pass with a small
// square kernel deletes isolated noise specks, then a closing pass with a
// wide-but-short kernel reconnects character strokes the thresholding broke
// apart.
func (e *Enhancer) morphClean(binary *image.Gray) *image.Gray {
	opened := dilate(erode(binary, 2, 2), 2, 2)
	closed := erode(dilate(opened, 2, 1), 2, 1)
	return closed
}

// erode replaces each pixel with the minimum over a kw x kh window anchored
// at the pixel.
func erode(src *image.Gray, kw, kh int) *image.Gray {
	return morph(src, kw, kh, func(a, b uint8) uint8 {
		if b < a {
			return b
		}
		return a
	}, 255)
}

// dilate replaces each pixel with the maximum over a kw x kh window anchored
// at the pixel.
func dilate(src *image.Gray, kw, kh int) *image.Gray {
	return morph(src, kw, kh, func(a, b uint8) uint8 {
		if b > a {
			return b
		}
		return a
	}, 0)
}

func morph(src *image.Gray, kw, kh int, pick func(a, b uint8) uint8, seed uint8) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := seed
			for dy := 0; dy < kh; dy++ {
				for dx := 0; dx < kw; dx++ {
					v = pick(v, grayAtClamped(src, b.Min.X+x+dx, b.Min.Y+y+dy))
				}
			}
			dst.Pix[y*w+x] = v
		}
	}

	return dst
}
