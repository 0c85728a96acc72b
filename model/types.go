package model

// FieldKind identifies which contact field a candidate or score refers to.
type FieldKind int

// Contact field kinds.
const (
	FieldName FieldKind = iota
	FieldJobPosition
	FieldCompany
	FieldAddress
	FieldEmail
	FieldPhone
	FieldWebsite
	FieldFax
)

// String returns the field name as it appears in records and confidence maps.
func (k FieldKind) String() string {
	switch k {
	case FieldName:
		return "name"
	case FieldJobPosition:
		return "job_position"
	case FieldCompany:
		return "company"
	case FieldAddress:
		return "address"
	case FieldEmail:
		return "email"
	case FieldPhone:
		return "phone"
	case FieldWebsite:
		return "website"
	case FieldFax:
		return "fax"
	default:
		return "unknown"
	}
}

// OCRLine is a single OCR-attributed line of text. LineIndex preserves the
// top-to-bottom order in which the line appears on the card; position-based
// heuristics (such as "the name is usually the first line") depend on it.
type OCRLine struct {
	Text      string
	LineIndex int
}

// Candidate is a provisional extraction for one field. Multiple candidates
// may exist per field before resolution; the highest-scoring one wins, with
// ties broken in favor of the first-generated candidate. Candidates are
// never persisted beyond resolution.
type Candidate struct {
	Value string
	Score float64
	Kind  FieldKind
}

// StructuredFields holds the fields extracted by fixed-shape pattern
// matching over the raw OCR text. Produced once per run and not modified
// afterwards. A field with no matches is a nil slice, empty string, or nil
// map, never an error.
type StructuredFields struct {
	Emails      []string
	Phones      []string
	Websites    []string
	SocialMedia map[string]string
	Fax         string
	PostalCodes []string
	CompanyIDs  map[string]string
}

// EntityFields holds the fields resolved by the heuristic entity extractor.
// At most one value per field; an empty string means no candidate passed
// validation.
type EntityFields struct {
	Name        string
	JobPosition string
	Company     string
	Address     string
}
