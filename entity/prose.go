package entity

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseTagger implements Tagger with the prose NLP library's bundled
// named-entity model. The model ships with the library, so construction
// never touches the network.
type ProseTagger struct{}

// NewProseTagger creates a prose-backed tagger.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag runs tokenization, part-of-speech tagging, and entity chunking over
// the text and returns the recognized spans. Prose labels person and
// geo-political entity spans; other kinds simply yield no spans, and the
// resolver's keyword heuristics carry those fields instead.
func (t *ProseTagger) Tag(text string) ([]Span, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("entity tagging failed: %w", err)
	}

	var spans []Span
	for _, ent := range doc.Entities() {
		switch ent.Label {
		case "PERSON":
			spans = append(spans, Span{Text: ent.Text, Kind: Person})
		case "ORGANIZATION", "ORG":
			spans = append(spans, Span{Text: ent.Text, Kind: Organization})
		case "GPE":
			spans = append(spans, Span{Text: ent.Text, Kind: GPE})
		case "LOCATION", "LOC":
			spans = append(spans, Span{Text: ent.Text, Kind: Location})
		}
	}

	return spans, nil
}
