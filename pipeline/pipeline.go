package pipeline

import (
	"bytes"
	"image"
	"image/png"
	"strings"

	"github.com/tsawler/cardex/enhance"
	"github.com/tsawler/cardex/entity"
	"github.com/tsawler/cardex/model"
	"github.com/tsawler/cardex/ocr"
	"github.com/tsawler/cardex/pattern"
	"github.com/tsawler/cardex/qr"
	"github.com/tsawler/cardex/validate"
)

// OCREngine recognizes text on an encoded image. It returns the raw
// multi-line text plus per-token detail for line grouping.
type OCREngine interface {
	Recognize(imageData []byte) (string, []ocr.Token, error)
}

// Config holds the per-stage configuration for a pipeline.
type Config struct {
	Enhance  enhance.Config
	Entity   entity.Config
	Validate validate.Config

	// MinTokenConfidence discards OCR tokens below this confidence during
	// line grouping.
	MinTokenConfidence float64

	// DecodeQR scans the original image for a QR contact payload and uses it
	// to backfill fields the text pipeline left empty.
	DecodeQR bool

	// Debug captures a named snapshot after every enhancement stage.
	Debug bool
}

// DefaultConfig returns the standard per-stage defaults with QR backfill
// enabled.
func DefaultConfig() Config {
	return Config{
		Enhance:            enhance.DefaultConfig(),
		Entity:             entity.DefaultConfig(),
		Validate:           validate.DefaultConfig(),
		MinTokenConfidence: ocr.DefaultMinConfidence,
		DecodeQR:           true,
	}
}

// Result is the complete output of one run.
type Result struct {
	Record model.ExtractionRecord
	Scores model.ConfidenceMap

	// RawText is the OCR engine's uncorrected output.
	RawText string

	// Lines are the grouped, confidence-filtered text lines the extractors
	// consumed.
	Lines []model.OCRLine

	// Snapshots holds the per-stage enhancement images when Debug is set.
	Snapshots []enhance.Snapshot
}

// Pipeline executes extraction runs. Construct once and reuse; it holds no
// per-run state.
type Pipeline struct {
	cfg       Config
	enhancer  *enhance.Enhancer
	extractor *pattern.Extractor
	resolver  *entity.Resolver
	validator *validate.Validator
	engine    OCREngine
}

// New creates a Pipeline. The engine must be non-nil; the tagger may be nil
// to run entity resolution on positional heuristics alone.
func New(cfg Config, engine OCREngine, tagger entity.Tagger) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		enhancer:  enhance.New(cfg.Enhance),
		extractor: pattern.New(nil),
		resolver:  entity.NewResolver(cfg.Entity, tagger),
		validator: validate.New(cfg.Validate),
		engine:    engine,
	}
}

// Run loads the image at path and executes the full pipeline on it.
func (p *Pipeline) Run(path string) (Result, error) {
	img, err := enhance.Open(path)
	if err != nil {
		return Result{}, err
	}
	return p.RunImage(img)
}

// RunImage executes the full pipeline on an already-decoded image.
// A run that finds no text returns ErrNoText together with a valid empty
// result; collaborator failures return a CollaboratorError.
func (p *Pipeline) RunImage(img image.Image) (Result, error) {
	var result Result

	var enhanced *image.Gray
	if p.cfg.Debug {
		enhanced, result.Snapshots = p.enhancer.EnhanceDebug(img)
	} else {
		enhanced = p.enhancer.Enhance(img)
	}

	encoded, err := encodePNG(enhanced)
	if err != nil {
		return result, &CollaboratorError{Stage: "ocr", Err: err}
	}

	raw, tokens, err := p.engine.Recognize(encoded)
	if err != nil {
		return result, &CollaboratorError{Stage: "ocr", Err: err}
	}
	result.RawText = raw

	result.Lines = ocr.BuildLines(tokens, p.cfg.MinTokenConfidence)
	if len(result.Lines) == 0 {
		// Engines without per-token detail still produce raw text.
		for i, text := range ocr.SplitLines(raw) {
			result.Lines = append(result.Lines, model.OCRLine{Text: text, LineIndex: i})
		}
	}
	if len(result.Lines) == 0 {
		return result, ErrNoText
	}

	lineTexts := make([]string, len(result.Lines))
	for i, line := range result.Lines {
		lineTexts[i] = line.Text
	}
	text := strings.Join(lineTexts, "\n")

	structured := p.extractor.Extract(text)

	entities, err := p.resolver.Resolve(text, lineTexts)
	if err != nil {
		return result, &CollaboratorError{Stage: "tagger", Err: err}
	}

	result.Record = p.validator.Merge(structured, entities)

	if p.cfg.DecodeQR {
		p.backfillFromQR(img, &result.Record)
	}

	result.Scores = validate.Score(result.Record)
	return result, nil
}

// backfillFromQR fills fields the text pipeline left empty from a QR
// contact payload, if the card carries one. QR data never overrides a field
// the extractors found, and a failed decode is ignored.
func (p *Pipeline) backfillFromQR(img image.Image, record *model.ExtractionRecord) {
	payload, err := qr.Decode(img)
	if err != nil {
		return
	}
	contact, ok := qr.ParseContact(payload)
	if !ok {
		return
	}

	fill := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
		}
	}
	fill(&record.Name, contact.Name)
	fill(&record.Phone, contact.Phone)
	fill(&record.Email, contact.Email)
	fill(&record.Company, contact.Company)
	fill(&record.JobPosition, contact.Title)
	fill(&record.Website, contact.Website)
	fill(&record.Address, contact.Address)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
