package enhance

import "image"

// removeBorders crops to the bounding box of the largest bright connected
// region plus a fixed padding, clamped to the image bounds. On a binarized
// card the largest bright region is the card face itself, so this strips
// the desk surface and shadows outside it without touching the (disjoint)
// ink clusters inside. When no bright region is found the input is returned
// unchanged so the result is never empty.
func (e *Enhancer) removeBorders(binary *image.Gray) *image.Gray {
	b := binary.Bounds()
	w, h := b.Dx(), b.Dy()

	visited := make([]bool, w*h)
	var best image.Rectangle
	bestArea := 0

	// Flood fill each bright region and track the largest bounding box.
	for start := 0; start < w*h; start++ {
		if visited[start] || binary.Pix[start] < 128 {
			continue
		}

		minX, minY, maxX, maxY := start%w, start/w, start%w, start/w
		area := 0
		stack := []int{start}
		visited[start] = true

		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			area++

			x, y := i%w, i/w
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}

			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				ni := ny*w + nx
				if !visited[ni] && binary.Pix[ni] >= 128 {
					visited[ni] = true
					stack = append(stack, ni)
				}
			}
		}

		if area > bestArea {
			bestArea = area
			best = image.Rect(minX, minY, maxX+1, maxY+1)
		}
	}

	if bestArea == 0 {
		return binary
	}

	pad := e.cfg.BorderPadding
	crop := image.Rect(
		clampInt(best.Min.X-pad, 0, w),
		clampInt(best.Min.Y-pad, 0, h),
		clampInt(best.Max.X+pad, 0, w),
		clampInt(best.Max.Y+pad, 0, h),
	)

	dst := image.NewGray(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	for y := 0; y < crop.Dy(); y++ {
		for x := 0; x < crop.Dx(); x++ {
			dst.Pix[y*crop.Dx()+x] = binary.Pix[(crop.Min.Y+y)*w+crop.Min.X+x]
		}
	}
	return dst
}
