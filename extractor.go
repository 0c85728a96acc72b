package cardex

import (
	"fmt"
	"image"

	"github.com/tsawler/cardex/entity"
	"github.com/tsawler/cardex/ocr"
	"github.com/tsawler/cardex/pipeline"
)

// Extractor provides a fluent interface for extracting contact information
// from card images. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source (exactly one is set)
	filename string
	img      image.Image

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		img:      e.img,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Language sets the OCR language code (Tesseract naming, e.g. "eng",
// "deu", "eng+hin").
//
// Example:
//
//	result, err := cardex.Open("card.jpg").Language("deu").Extract()
func (e *Extractor) Language(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.language = lang
	return newExt
}

// MinTokenConfidence sets the OCR confidence threshold below which
// recognized words are discarded.
//
// Example:
//
//	result, err := cardex.Open("card.jpg").MinTokenConfidence(50).Extract()
func (e *Extractor) MinTokenConfidence(confidence float64) *Extractor {
	newExt := e.clone()
	newExt.options.minTokenConfidence = confidence
	return newExt
}

// WithDebug captures a named snapshot of every image enhancement stage in
// the result, useful for diagnosing recognition problems.
//
// Example:
//
//	result, _ := cardex.Open("card.jpg").WithDebug().Extract()
//	for _, snap := range result.Snapshots {
//	    fmt.Println(snap.Name)
//	}
func (e *Extractor) WithDebug() *Extractor {
	newExt := e.clone()
	newExt.options.debug = true
	return newExt
}

// SkipQR disables QR code scanning. By default a QR contact payload on the
// card backfills fields the text pipeline left empty.
//
// Example:
//
//	result, err := cardex.Open("card.jpg").SkipQR().Extract()
func (e *Extractor) SkipQR() *Extractor {
	newExt := e.clone()
	newExt.options.skipQR = true
	return newExt
}

// WithOCR injects a custom OCR engine, replacing the built-in Tesseract
// engine. Required when the library is built without the "ocr" build tag.
func (e *Extractor) WithOCR(engine pipeline.OCREngine) *Extractor {
	newExt := e.clone()
	newExt.options.engine = engine
	return newExt
}

// WithTagger injects a custom named-entity tagger, replacing the built-in
// one. Pass nil to disable entity tagging and rely on positional heuristics
// alone.
func (e *Extractor) WithTagger(tagger entity.Tagger) *Extractor {
	newExt := e.clone()
	newExt.options.tagger = tagger
	newExt.options.hasTagger = true
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Extract runs the full pipeline and returns the extraction result.
//
// A card that yields no recognizable text returns pipeline.ErrNoText
// together with a valid empty result, so callers can distinguish that
// business outcome from a technical failure.
//
// Example:
//
//	result, err := cardex.Open("card.jpg").Extract()
//	if errors.Is(err, pipeline.ErrNoText) {
//	    fmt.Println("no text found on card")
//	}
func (e *Extractor) Extract() (Result, error) {
	if e.err != nil {
		return Result{}, e.err
	}

	engine, cleanup, err := e.resolveEngine()
	if err != nil {
		return Result{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	tagger := e.resolveTagger()

	cfg := pipeline.DefaultConfig()
	cfg.MinTokenConfidence = e.options.minTokenConfidence
	cfg.DecodeQR = !e.options.skipQR
	cfg.Debug = e.options.debug

	p := pipeline.New(cfg, engine, tagger)

	if e.img != nil {
		return p.RunImage(e.img)
	}
	if e.filename == "" {
		return Result{}, fmt.Errorf("no image specified")
	}
	return p.Run(e.filename)
}

// resolveEngine returns the injected OCR engine, or constructs the built-in
// Tesseract engine with the configured language. The cleanup func closes a
// constructed engine after the run; injected engines are the caller's to
// manage.
func (e *Extractor) resolveEngine() (pipeline.OCREngine, func(), error) {
	if e.options.engine != nil {
		return e.options.engine, nil, nil
	}

	engine, err := ocr.New()
	if err != nil {
		return nil, nil, err
	}
	if err := engine.SetLanguage(e.options.language); err != nil {
		engine.Close()
		return nil, nil, err
	}
	return engine, func() { engine.Close() }, nil
}

func (e *Extractor) resolveTagger() entity.Tagger {
	if e.options.hasTagger {
		return e.options.tagger
	}
	return entity.NewProseTagger()
}
