//go:build ocr

// Package ocr provides OCR (Optical Character Recognition) capabilities
// for reading text off enhanced business card images.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Engine wraps Tesseract for OCR operations.
type Engine struct {
	client *gosseract.Client
}

// New creates a new OCR engine configured for single-block card layouts.
// The engine should be closed when no longer needed to release resources.
func New() (*Engine, error) {
	client := gosseract.NewClient()
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (e *Engine) SetLanguage(lang string) error {
	return e.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode.
// This affects how Tesseract analyzes the card layout.
// See gosseract.PageSegMode constants for available modes.
func (e *Engine) SetPageSegMode(mode gosseract.PageSegMode) error {
	return e.client.SetPageSegMode(mode)
}

// Recognize performs OCR on image data (PNG, TIFF, JPEG, etc.). It returns
// the recognized text with leading/trailing whitespace trimmed, plus the
// per-token detail (text, confidence, line attribution, vertical position)
// that line grouping and layout heuristics consume.
func (e *Engine) Recognize(imageData []byte) (string, []Token, error) {
	if err := e.client.SetImageFromBytes(imageData); err != nil {
		return "", nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxesVerbose()
	if err != nil {
		return "", nil, fmt.Errorf("OCR detail failed: %w", err)
	}

	tokens := make([]Token, 0, len(boxes))
	for _, b := range boxes {
		tokens = append(tokens, Token{
			Text:       b.Word,
			Confidence: b.Confidence,
			LineNum:    b.LineNum,
			TopY:       b.Box.Min.Y,
		})
	}

	return strings.TrimSpace(text), tokens, nil
}

// MultiPass performs OCR with several page segmentation modes and returns
// the longest non-empty result. Difficult cards with unusual layouts often
// recognize better under a mode other than the single-block default.
func (e *Engine) MultiPass(imageData []byte) (string, error) {
	modes := []gosseract.PageSegMode{
		gosseract.PSM_SINGLE_BLOCK,
		gosseract.PSM_SINGLE_COLUMN,
		gosseract.PSM_AUTO,
	}

	var best string
	for _, mode := range modes {
		if err := e.client.SetPageSegMode(mode); err != nil {
			continue
		}
		if err := e.client.SetImageFromBytes(imageData); err != nil {
			continue
		}
		text, err := e.client.Text()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if len(text) > len(best) {
			best = text
		}
	}

	// Restore the default mode for subsequent calls.
	_ = e.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK)

	if best == "" {
		return "", fmt.Errorf("OCR produced no text in any segmentation mode")
	}
	return best, nil
}
