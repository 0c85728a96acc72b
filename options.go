package cardex

import (
	"github.com/tsawler/cardex/entity"
	"github.com/tsawler/cardex/ocr"
	"github.com/tsawler/cardex/pipeline"
)

// ExtractOptions holds configuration for an extraction run.
type ExtractOptions struct {
	// OCR configuration
	language           string
	minTokenConfidence float64

	// Processing options
	debug  bool
	skipQR bool

	// Injected collaborators (nil means use the defaults)
	engine    pipeline.OCREngine
	tagger    entity.Tagger
	hasTagger bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		language:           "eng",
		minTokenConfidence: ocr.DefaultMinConfidence,
		debug:              false,
		skipQR:             false,
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		language:           o.language,
		minTokenConfidence: o.minTokenConfidence,
		debug:              o.debug,
		skipQR:             o.skipQR,
		engine:             o.engine,
		tagger:             o.tagger,
		hasTagger:          o.hasTagger,
	}
}
