package enhance

import (
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func whiteNRGBA(w, h int) *image.NRGBA {
	return imaging.New(w, h, color.White)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.jpg"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errorIsImageLoad(err) {
		t.Errorf("error should wrap ErrImageLoad, got %v", err)
	}
}

func TestOpen_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.jpg")
	if err := os.WriteFile(path, []byte("definitely not a jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path)
	if err == nil {
		t.Fatal("expected error for undecodable file")
	}
	if !errorIsImageLoad(err) {
		t.Errorf("error should wrap ErrImageLoad, got %v", err)
	}
}

func errorIsImageLoad(err error) bool {
	for ; err != nil; err = unwrap(err) {
		if err == ErrImageLoad {
			return true
		}
	}
	return false
}

func unwrap(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}

func TestResize_NeverUpsamples(t *testing.T) {
	e := New(Config{TargetWidth: 1200})

	small := whiteNRGBA(300, 200)
	out := e.resize(small)
	if out.Bounds().Dx() != 300 || out.Bounds().Dy() != 200 {
		t.Errorf("narrow image was resized: got %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestResize_DownscalesToTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetWidth = 100
	e := New(cfg)

	out := e.resize(whiteNRGBA(400, 200))
	if out.Bounds().Dx() != 100 {
		t.Errorf("width = %d, want 100", out.Bounds().Dx())
	}
	if out.Bounds().Dy() != 50 {
		t.Errorf("height = %d, want 50 (aspect preserved)", out.Bounds().Dy())
	}
}

func TestEnhance_DegenerateWhiteImage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetWidth = 120
	e := New(cfg)

	out := e.Enhance(whiteNRGBA(100, 60))

	if out.Bounds().Dx() < 1 || out.Bounds().Dy() < 1 {
		t.Errorf("output degenerate: %v", out.Bounds())
	}
	if out.Bounds().Dx() > cfg.TargetWidth {
		t.Errorf("output wider than target: %d", out.Bounds().Dx())
	}
}

func TestEnhance_OutputBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetWidth = 150
	e := New(cfg)

	// A plausible card: dark text block on a white card on a dark desk.
	src := imaging.New(400, 240, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	for y := 40; y < 200; y++ {
		for x := 60; x < 340; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 250, G: 250, B: 250, A: 255})
		}
	}
	for y := 100; y < 110; y++ {
		for x := 100; x < 300; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
		}
	}

	out := e.Enhance(src)

	if out.Bounds().Dx() > cfg.TargetWidth {
		t.Errorf("output width %d exceeds target %d", out.Bounds().Dx(), cfg.TargetWidth)
	}
	if out.Bounds().Dx() < 1 || out.Bounds().Dy() < 1 {
		t.Errorf("output degenerate: %v", out.Bounds())
	}

	// Binarized output must be strictly black/white.
	for i, p := range out.Pix {
		if p != 0 && p != 255 {
			t.Fatalf("pixel %d = %d, want 0 or 255", i, p)
		}
	}
}

func TestEnhanceDebug_SnapshotOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetWidth = 80
	e := New(cfg)

	_, snaps := e.EnhanceDebug(whiteNRGBA(60, 40))

	want := []string{
		"1_resized", "2_denoised", "3_deskewed", "4_contrast_enhanced",
		"5_grayscale", "6_binary", "7_cleaned", "8_final",
	}
	if len(snaps) != len(want) {
		t.Fatalf("got %d snapshots, want %d", len(snaps), len(want))
	}
	for i, name := range want {
		if snaps[i].Name != name {
			t.Errorf("snapshot %d = %q, want %q", i, snaps[i].Name, name)
		}
		if snaps[i].Image == nil {
			t.Errorf("snapshot %q has nil image", name)
		}
	}
}

// drawLine draws a thick dark line through the image center at the given
// angle in degrees.
func drawLine(img *image.NRGBA, degrees float64) {
	b := img.Bounds()
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)

	for tt := -400.0; tt <= 400.0; tt += 0.25 {
		x := int(cx + tt*cos)
		y := int(cy + tt*sin)
		for dy := -1; dy <= 1; dy++ {
			if image.Pt(x, y+dy).In(b) {
				img.SetNRGBA(x, y+dy, color.NRGBA{A: 255})
			}
		}
	}
}

// deskewTestConfig lowers the Hough vote threshold to suit the small
// synthetic images used in these tests.
func deskewTestConfig() Config {
	cfg := DefaultConfig()
	cfg.HoughVotes = 100
	return cfg
}

func TestDeskew_LevelImageNotRotated(t *testing.T) {
	e := New(deskewTestConfig())

	src := whiteNRGBA(400, 300)
	drawLine(src, 0)

	out, angle := e.deskew(src)
	if math.Abs(angle) >= e.cfg.DeskewThreshold {
		t.Errorf("detected angle %.2f on a level image", angle)
	}
	if out.Bounds() != src.Bounds() {
		t.Errorf("level image was rotated: %v -> %v", src.Bounds(), out.Bounds())
	}
}

func TestDeskew_DetectsTilt(t *testing.T) {
	e := New(deskewTestConfig())

	src := whiteNRGBA(400, 300)
	drawLine(src, 5)

	out, angle := e.deskew(src)
	if math.Abs(angle-5) > 1.5 {
		t.Errorf("detected angle %.2f, want about 5", angle)
	}

	// Rotation expands the canvas so no content is cropped.
	if out.Bounds().Dx() < src.Bounds().Dx() {
		t.Errorf("rotated canvas narrower than source: %v", out.Bounds())
	}
}

func TestDeskew_IdempotentBelowThreshold(t *testing.T) {
	e := New(deskewTestConfig())

	src := whiteNRGBA(400, 300)
	drawLine(src, 5)

	once, _ := e.deskew(src)
	twice, angle := e.deskew(once)

	// Second pass sees a level image and must not rotate again.
	if math.Abs(angle) >= e.cfg.DeskewThreshold {
		t.Errorf("second pass still detects %.2f degrees", angle)
	}
	if twice.Bounds() != once.Bounds() {
		t.Errorf("second pass changed bounds: %v -> %v", once.Bounds(), twice.Bounds())
	}
}

func TestDeskew_NoLinesFound(t *testing.T) {
	e := New(DefaultConfig())

	out, angle := e.deskew(whiteNRGBA(200, 100))
	if angle != 0 {
		t.Errorf("angle = %.2f on a blank image, want 0", angle)
	}
	if out.Bounds().Dx() != 200 || out.Bounds().Dy() != 100 {
		t.Errorf("blank image was modified: %v", out.Bounds())
	}
}

func TestAdaptiveThreshold_UniformInput(t *testing.T) {
	e := New(DefaultConfig())

	gray := image.NewGray(image.Rect(0, 0, 50, 50))
	for i := range gray.Pix {
		gray.Pix[i] = 128
	}

	out := e.adaptiveThreshold(gray)
	for i, p := range out.Pix {
		if p != 255 {
			t.Fatalf("uniform input pixel %d = %d, want white", i, p)
		}
	}
}

func TestMorphClean_RemovesSpecks(t *testing.T) {
	e := New(DefaultConfig())

	// White page with one isolated 1px ink speck and one solid stroke.
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.Pix[5*40+5] = 0
	for y := 20; y < 24; y++ {
		for x := 10; x < 30; x++ {
			img.Pix[y*40+x] = 0
		}
	}

	out := e.morphClean(img)

	if out.Pix[5*40+5] != 255 {
		t.Error("isolated speck survived opening")
	}
	if out.Pix[22*40+20] != 0 {
		t.Error("solid stroke was erased")
	}
}

func TestRemoveBorders_CropsToCardFace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BorderPadding = 2
	e := New(cfg)

	// Dark desk surface with a bright card region in the middle.
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	for y := 40; y < 60; y++ {
		for x := 30; x < 70; x++ {
			img.Pix[y*100+x] = 255
		}
	}

	out := e.removeBorders(img)

	wantW := 40 + 2*cfg.BorderPadding
	wantH := 20 + 2*cfg.BorderPadding
	if out.Bounds().Dx() != wantW || out.Bounds().Dy() != wantH {
		t.Errorf("crop = %dx%d, want %dx%d", out.Bounds().Dx(), out.Bounds().Dy(), wantW, wantH)
	}
}

func TestRemoveBorders_KeepsDisjointInkClusters(t *testing.T) {
	e := New(DefaultConfig())

	// A bright card filling the frame with two separated ink clusters:
	// a large block at the left and a small one near the right edge.
	// The crop must follow the card face, not the biggest ink blob, so
	// both clusters survive.
	img := image.NewGray(image.Rect(0, 0, 400, 100))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for y := 20; y < 50; y++ {
		for x := 10; x < 60; x++ {
			img.Pix[y*400+x] = 0
		}
	}
	for y := 40; y < 50; y++ {
		for x := 370; x < 390; x++ {
			img.Pix[y*400+x] = 0
		}
	}

	out := e.removeBorders(img)

	if out.Bounds().Dx() != 400 || out.Bounds().Dy() != 100 {
		t.Fatalf("crop = %dx%d, want 400x100", out.Bounds().Dx(), out.Bounds().Dy())
	}
	if out.Pix[45*400+380] != 0 {
		t.Error("right-hand ink cluster was cropped away")
	}
	if out.Pix[30*400+30] != 0 {
		t.Error("left-hand ink cluster was cropped away")
	}
}

func TestRemoveBorders_BlankImageUnchanged(t *testing.T) {
	e := New(DefaultConfig())

	img := image.NewGray(image.Rect(0, 0, 30, 30))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	out := e.removeBorders(img)
	if out.Bounds().Dx() != 30 || out.Bounds().Dy() != 30 {
		t.Errorf("blank image was cropped: %v", out.Bounds())
	}
}

func TestRemoveBorders_AllDarkImageUnchanged(t *testing.T) {
	e := New(DefaultConfig())

	img := image.NewGray(image.Rect(0, 0, 30, 30))

	out := e.removeBorders(img)
	if out.Bounds().Dx() != 30 || out.Bounds().Dy() != 30 {
		t.Errorf("all-dark image was cropped: %v", out.Bounds())
	}
}

func TestGaussianKernel1D_Normalized(t *testing.T) {
	for _, size := range []int{3, 5, 11} {
		kernel := gaussianKernel1D(size)
		var sum float64
		for _, v := range kernel {
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("kernel size %d sums to %f, want 1", size, sum)
		}
	}
}
