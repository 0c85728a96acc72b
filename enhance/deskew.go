package enhance

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// deskew estimates the card's rotation from detected line angles and rotates
// the image to level it. The returned angle is the detected median skew in
// degrees. When no edges or lines are found, or the detected angle is below
// the configured threshold, the input is returned unrotated: amplifying
// detection noise into a visible rotation is worse than leaving a nearly
// level card alone.
func (e *Enhancer) deskew(src *image.NRGBA) (*image.NRGBA, float64) {
	gray := toGray(src)
	edges := e.cannyEdges(gray)

	angles := e.houghLineAngles(edges)
	if len(angles) == 0 {
		return src, 0
	}

	sort.Float64s(angles)
	median := angles[len(angles)/2]
	if len(angles)%2 == 0 {
		median = (angles[len(angles)/2-1] + angles[len(angles)/2]) / 2
	}

	if math.Abs(median) < e.cfg.DeskewThreshold {
		return src, median
	}

	return rotate(src, median), median
}

// cannyEdges runs Canny edge detection: Gaussian smoothing, Sobel gradients,
// non-maximum suppression, then hysteresis thresholding.
func (e *Enhancer) cannyEdges(gray *image.Gray) *image.Gray {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()

	smoothed := gaussianSmooth(gray)

	// Sobel gradients.
	mag := make([]float64, w*h)
	dir := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := float64(grayAtClamped(smoothed, x+1, y-1)) + 2*float64(grayAtClamped(smoothed, x+1, y)) + float64(grayAtClamped(smoothed, x+1, y+1)) -
				float64(grayAtClamped(smoothed, x-1, y-1)) - 2*float64(grayAtClamped(smoothed, x-1, y)) - float64(grayAtClamped(smoothed, x-1, y+1))
			gy := float64(grayAtClamped(smoothed, x-1, y+1)) + 2*float64(grayAtClamped(smoothed, x, y+1)) + float64(grayAtClamped(smoothed, x+1, y+1)) -
				float64(grayAtClamped(smoothed, x-1, y-1)) - 2*float64(grayAtClamped(smoothed, x, y-1)) - float64(grayAtClamped(smoothed, x+1, y-1))
			mag[y*w+x] = math.Hypot(gx, gy)
			dir[y*w+x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression: keep a pixel only if it is the local maximum
	// along its gradient direction.
	suppressed := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m := mag[y*w+x]
			if m == 0 {
				continue
			}

			angle := dir[y*w+x]
			if angle < 0 {
				angle += math.Pi
			}

			var dx, dy int
			switch {
			case angle < math.Pi/8 || angle >= 7*math.Pi/8:
				dx, dy = 1, 0
			case angle < 3*math.Pi/8:
				dx, dy = 1, 1
			case angle < 5*math.Pi/8:
				dx, dy = 0, 1
			default:
				dx, dy = 1, -1
			}

			n1 := magAt(mag, w, h, x+dx, y+dy)
			n2 := magAt(mag, w, h, x-dx, y-dy)
			if m >= n1 && m >= n2 {
				suppressed[y*w+x] = m
			}
		}
	}

	// Hysteresis: strong edges seed a flood fill through weak edges.
	edges := image.NewGray(image.Rect(0, 0, w, h))
	var stack []int
	for i, m := range suppressed {
		if m >= e.cfg.CannyHigh {
			edges.Pix[i] = 255
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				ni := ny*w + nx
				if edges.Pix[ni] == 0 && suppressed[ni] >= e.cfg.CannyLow {
					edges.Pix[ni] = 255
					stack = append(stack, ni)
				}
			}
		}
	}

	return edges
}

func magAt(mag []float64, w, h, x, y int) float64 {
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0
	}
	return mag[y*w+x]
}

// gaussianSmooth applies a 5x5 Gaussian blur prior to gradient computation.
func gaussianSmooth(gray *image.Gray) *image.Gray {
	kernel := []float64{1, 4, 6, 4, 1}
	const norm = 16.0

	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()

	// Separable: horizontal pass, then vertical.
	tmp := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -2; k <= 2; k++ {
				sum += kernel[k+2] * float64(grayAtClamped(gray, x+k, y))
			}
			tmp.SetGray(x, y, color.Gray{Y: uint8(sum/norm + 0.5)})
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -2; k <= 2; k++ {
				sum += kernel[k+2] * float64(grayAtClamped(tmp, x, y+k))
			}
			out.SetGray(x, y, color.Gray{Y: uint8(sum/norm + 0.5)})
		}
	}

	return out
}

// houghLineAngles runs a standard Hough transform over the edge map and
// returns the skew angle, in degrees, of every line that clears the vote
// threshold and lies within ±45° of horizontal.
func (e *Enhancer) houghLineAngles(edges *image.Gray) []float64 {
	b := edges.Bounds()
	w, h := b.Dx(), b.Dy()

	diag := int(math.Ceil(math.Hypot(float64(w), float64(h))))
	const thetaSteps = 180

	acc := make([]int, (2*diag+1)*thetaSteps)

	sinTab := make([]float64, thetaSteps)
	cosTab := make([]float64, thetaSteps)
	for t := 0; t < thetaSteps; t++ {
		theta := float64(t) * math.Pi / thetaSteps
		sinTab[t] = math.Sin(theta)
		cosTab[t] = math.Cos(theta)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if edges.GrayAt(x, y).Y == 0 {
				continue
			}
			for t := 0; t < thetaSteps; t++ {
				rho := int(math.Round(float64(x)*cosTab[t] + float64(y)*sinTab[t]))
				acc[(rho+diag)*thetaSteps+t]++
			}
		}
	}

	var angles []float64
	for r := 0; r < 2*diag+1; r++ {
		for t := 0; t < thetaSteps; t++ {
			if acc[r*thetaSteps+t] < e.cfg.HoughVotes {
				continue
			}
			angle := float64(t) - 90
			if angle > -45 && angle < 45 {
				angles = append(angles, angle)
			}
		}
	}

	return angles
}

// rotate rotates about the image center by the given angle in degrees,
// expanding the canvas so no content is cropped. New border pixels replicate
// the nearest source edge. Sampling is bilinear.
func rotate(src *image.NRGBA, degrees float64) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	absSin, absCos := math.Abs(sin), math.Abs(cos)

	newW := int(float64(h)*absSin + float64(w)*absCos)
	newH := int(float64(h)*absCos + float64(w)*absSin)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	cx, cy := float64(w)/2, float64(h)/2
	ncx, ncy := float64(newW)/2, float64(newH)/2

	dst := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			// Inverse mapping: destination pixel back to source coordinates.
			dx := float64(x) - ncx
			dy := float64(y) - ncy
			sx := dx*cos - dy*sin + cx
			sy := dx*sin + dy*cos + cy
			dst.SetNRGBA(x, y, bilinearSample(src, sx, sy))
		}
	}

	return dst
}

// bilinearSample interpolates the four neighbors of (x, y), clamping
// coordinates so sampling outside the image replicates the edge.
func bilinearSample(src *image.NRGBA, x, y float64) color.NRGBA {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	p00 := nrgbaAtClamped(src, x0, y0)
	p10 := nrgbaAtClamped(src, x0+1, y0)
	p01 := nrgbaAtClamped(src, x0, y0+1)
	p11 := nrgbaAtClamped(src, x0+1, y0+1)

	lerp := func(a, b, c, d uint8) uint8 {
		top := float64(a)*(1-fx) + float64(b)*fx
		bot := float64(c)*(1-fx) + float64(d)*fx
		return uint8(top*(1-fy) + bot*fy + 0.5)
	}

	return color.NRGBA{
		R: lerp(p00.R, p10.R, p01.R, p11.R),
		G: lerp(p00.G, p10.G, p01.G, p11.G),
		B: lerp(p00.B, p10.B, p01.B, p11.B),
		A: lerp(p00.A, p10.A, p01.A, p11.A),
	}
}
