package ocr

import (
	"strings"

	"github.com/tsawler/cardex/model"
)

// Token is a single recognized word with the attribution the downstream
// heuristics need: recognition confidence in [0,100], the engine's line
// number, and the vertical position of the word's bounding box.
type Token struct {
	Text       string
	Confidence float64
	LineNum    int
	TopY       int
}

// DefaultMinConfidence is the token confidence threshold below which
// recognized words are discarded during line grouping.
const DefaultMinConfidence = 30

// BuildLines groups tokens into ordered lines. Tokens with confidence below
// minConfidence and empty tokens are discarded; consecutive tokens sharing a
// line number are joined with single spaces. Line order follows token order,
// which Tesseract emits top-to-bottom.
func BuildLines(tokens []Token, minConfidence float64) []model.OCRLine {
	var lines []model.OCRLine
	var current []string
	currentNum := -1

	flush := func() {
		if len(current) > 0 {
			lines = append(lines, model.OCRLine{
				Text:      strings.Join(current, " "),
				LineIndex: currentNum,
			})
			current = nil
		}
	}

	for _, tok := range tokens {
		if tok.Confidence < minConfidence {
			continue
		}
		text := strings.TrimSpace(tok.Text)
		if text == "" {
			continue
		}

		if tok.LineNum != currentNum {
			flush()
			currentNum = tok.LineNum
		}
		current = append(current, text)
	}
	flush()

	return lines
}

// SplitLines cleans raw OCR text into non-empty lines with internal
// whitespace collapsed. It is the fallback line source when per-token
// detail is unavailable.
func SplitLines(raw string) []string {
	var cleaned []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return cleaned
}

// Sections partitions recognized words into vertical thirds of the card.
// Position-based extraction heuristics use this coarse layout: names tend to
// sit in the top third, addresses in the bottom.
type Sections struct {
	Top    []string
	Middle []string
	Bottom []string
}

// LayoutSections assigns tokens to vertical thirds of an image of the given
// height, applying the same confidence filter as BuildLines.
func LayoutSections(tokens []Token, height int, minConfidence float64) Sections {
	var s Sections
	if height < 1 {
		return s
	}

	for _, tok := range tokens {
		if tok.Confidence < minConfidence {
			continue
		}
		text := strings.TrimSpace(tok.Text)
		if text == "" {
			continue
		}

		switch {
		case tok.TopY < height/3:
			s.Top = append(s.Top, text)
		case tok.TopY < 2*height/3:
			s.Middle = append(s.Middle, text)
		default:
			s.Bottom = append(s.Bottom, text)
		}
	}

	return s
}
