package entity

// SpanKind classifies a tagged entity span.
type SpanKind int

// Span kinds the resolver consumes. Anything else a tagger knows about is
// discarded before it reaches the heuristics.
const (
	Person SpanKind = iota
	Organization
	GPE
	Location
)

// String returns the conventional NER label for the kind.
func (k SpanKind) String() string {
	switch k {
	case Person:
		return "PERSON"
	case Organization:
		return "ORGANIZATION"
	case GPE:
		return "GPE"
	case Location:
		return "LOCATION"
	default:
		return "UNKNOWN"
	}
}

// Span is a tagged entity span of the input text.
type Span struct {
	Text string
	Kind SpanKind
}

// Tagger is the named-entity tagging collaborator. Implementations must be
// constructed explicitly before the resolver is built; Tag must not trigger
// lazy model downloads.
type Tagger interface {
	Tag(text string) ([]Span, error)
}

// spansByKind buckets spans into flat per-kind lists.
func spansByKind(spans []Span) map[SpanKind][]string {
	byKind := make(map[SpanKind][]string)
	for _, s := range spans {
		byKind[s.Kind] = append(byKind[s.Kind], s.Text)
	}
	return byKind
}
