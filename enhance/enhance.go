package enhance

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ErrImageLoad is returned when a source image cannot be decoded. It is
// fatal for a pipeline run; all other degenerate inputs degrade to
// low-information output instead of failing.
var ErrImageLoad = errors.New("image cannot be decoded")

// Config holds the enhancement pipeline parameters.
type Config struct {
	// TargetWidth is the width images are downscaled to before processing.
	// Images narrower than this are never upsampled.
	TargetWidth int

	// DenoiseStrength tunes the non-local-means filter. Higher values remove
	// more noise at the cost of detail.
	DenoiseStrength float64

	// DeskewThreshold is the minimum detected skew, in degrees, that
	// triggers rotation. Smaller detected angles are treated as level.
	DeskewThreshold float64

	// CannyLow and CannyHigh are the hysteresis thresholds for edge
	// detection during deskew.
	CannyLow, CannyHigh float64

	// HoughVotes is the minimum accumulator count for a detected line.
	HoughVotes int

	// ClipLimit bounds per-tile histogram clipping during contrast
	// enhancement.
	ClipLimit float64

	// TileGrid is the number of CLAHE tiles per axis.
	TileGrid int

	// ThresholdBlock is the local window size for adaptive binarization.
	// Must be odd; even values are rounded up.
	ThresholdBlock int

	// ThresholdOffset is subtracted from the Gaussian local mean before
	// comparison.
	ThresholdOffset float64

	// BorderPadding is the margin, in pixels, kept around the detected card
	// region when cropping.
	BorderPadding int
}

// DefaultConfig returns the pipeline parameters tuned for handheld card
// photographs.
func DefaultConfig() Config {
	return Config{
		TargetWidth:     1200,
		DenoiseStrength: 7,
		DeskewThreshold: 0.5,
		CannyLow:        50,
		CannyHigh:       150,
		HoughVotes:      200,
		ClipLimit:       2.0,
		TileGrid:        8,
		ThresholdBlock:  11,
		ThresholdOffset: 2,
		BorderPadding:   10,
	}
}

// Snapshot is a named intermediate image captured after one pipeline stage.
type Snapshot struct {
	Name  string
	Image image.Image
}

// Enhancer runs the enhancement pipeline. It is stateless across calls and
// safe for concurrent use.
type Enhancer struct {
	cfg Config
}

// New creates an Enhancer. Out-of-range configuration values are clamped to
// usable minimums.
func New(cfg Config) *Enhancer {
	if cfg.TargetWidth < 1 {
		cfg.TargetWidth = DefaultConfig().TargetWidth
	}
	if cfg.ThresholdBlock < 3 {
		cfg.ThresholdBlock = 3
	}
	if cfg.ThresholdBlock%2 == 0 {
		cfg.ThresholdBlock++
	}
	if cfg.TileGrid < 1 {
		cfg.TileGrid = 1
	}
	if cfg.BorderPadding < 0 {
		cfg.BorderPadding = 0
	}
	return &Enhancer{cfg: cfg}
}

// Open decodes an image file, honoring EXIF orientation. It returns
// ErrImageLoad if the file does not exist or is not a decodable image.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	return img, nil
}

// Enhance runs the full pipeline and returns the binarized, deskewed,
// cropped result.
func (e *Enhancer) Enhance(img image.Image) *image.Gray {
	out, _ := e.run(img, false)
	return out
}

// EnhanceDebug runs the full pipeline and additionally returns a named
// snapshot after each stage, in stage order.
func (e *Enhancer) EnhanceDebug(img image.Image) (*image.Gray, []Snapshot) {
	return e.run(img, true)
}

func (e *Enhancer) run(img image.Image, debug bool) (*image.Gray, []Snapshot) {
	var snaps []Snapshot
	record := func(name string, im image.Image) {
		if debug {
			snaps = append(snaps, Snapshot{Name: name, Image: im})
		}
	}

	src := imaging.Clone(img)
	if src.Bounds().Dx() < 1 || src.Bounds().Dy() < 1 {
		src = imaging.New(1, 1, color.White)
	}

	resized := e.resize(src)
	record("1_resized", resized)

	denoised := e.denoise(resized)
	record("2_denoised", denoised)

	deskewed, _ := e.deskew(denoised)
	record("3_deskewed", deskewed)

	contrasted := e.enhanceContrast(deskewed)
	record("4_contrast_enhanced", contrasted)

	gray := toGray(contrasted)
	record("5_grayscale", gray)

	binary := e.adaptiveThreshold(gray)
	record("6_binary", binary)

	cleaned := e.morphClean(binary)
	record("7_cleaned", cleaned)

	final := e.removeBorders(cleaned)
	record("8_final", final)

	return final, snaps
}
