// Package enhance implements the image enhancement pipeline that turns an
// arbitrary photograph of a business card into an OCR-friendly binary raster.
//
// The pipeline is deterministic and stateless across calls: given the same
// input and configuration it always produces the same output. Each stage
// produces a fresh buffer, so debug snapshots taken between stages remain
// valid after the pipeline completes.
//
// # Stages
//
// An [Enhancer] applies eight stages in fixed order:
//
//  1. Resize to the configured target width (downscale only, cubic)
//  2. Denoise (non-local-means style, tuned by strength)
//  3. Deskew (edge detection, Hough line voting, median angle rotation)
//  4. Contrast enhancement (CLAHE on the luminance channel)
//  5. Grayscale conversion
//  6. Adaptive binarization (Gaussian local mean minus offset)
//  7. Morphological cleanup (opening, then a wide closing pass)
//  8. Border removal (crop to the largest bright region plus padding)
//
// # Usage
//
//	img, err := enhance.Open("card.jpg")
//	if err != nil {
//	    // handle error
//	}
//	enhancer := enhance.New(enhance.DefaultConfig())
//	binary := enhancer.Enhance(img)
//
// Use [Enhancer.EnhanceDebug] to additionally collect a named snapshot after
// each stage.
//
// Every stage tolerates degenerate input (for example a pure white frame)
// without failing; the output is simply low-information. The only error this
// package reports is [ErrImageLoad] for an image that cannot be decoded.
package enhance
