package entity

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/tsawler/cardex/model"
)

// Config holds the resolver's heuristic parameters.
type Config struct {
	// MinNameLength and MaxNameLength bound a plausible person name in
	// characters.
	MinNameLength int
	MaxNameLength int

	// MinNameWords and MaxNameWords bound a plausible person name in words.
	MinNameWords int
	MaxNameWords int

	// Honorifics are the titles that may precede a name (without the
	// trailing period).
	Honorifics []string

	// JobKeywords mark a span as a job position when present anywhere in it.
	JobKeywords []string
}

// DefaultConfig returns the heuristic parameters tuned for typical
// English-language cards.
func DefaultConfig() Config {
	return Config{
		MinNameLength: 2,
		MaxNameLength: 50,
		MinNameWords:  1,
		MaxNameWords:  5,
		Honorifics:    []string{"Mr", "Mrs", "Ms", "Dr", "Prof"},
		JobKeywords:   []string{"Manager", "Director", "CEO", "Engineer", "Designer"},
	}
}

// Candidate generation scores. Higher wins; ties go to the candidate
// generated first.
const (
	scoreTaggedPerson   = 10
	scoreAfterHonorific = 9
	scoreFirstLine      = 8
	scoreCapitalizedRun = 6

	scoreLineAfterName = 9
	scoreJobKeyword    = 8
	scoreTitleShape    = 7

	scoreTaggedOrg     = 8
	scoreLineAfterJob  = 7
	scoreCompanyShape  = 6
)

var (
	capitalizedRunPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3}\b`)

	titleShapePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(Chief\s+\w+\s+Officer)\b`),
		regexp.MustCompile(`(?i)\b(Vice\s+President)\b`),
		regexp.MustCompile(`(?i)\b(Senior\s+\w+)\b`),
		regexp.MustCompile(`(?i)\b(\w+\s+Manager)\b`),
		regexp.MustCompile(`(?i)\b(\w+\s+Director)\b`),
		regexp.MustCompile(`(?i)\b(\w+\s+Engineer)\b`),
	}

	companyShapePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b([A-Z][A-Za-z0-9\s&]+(?:Inc|LLC|Ltd|Corp|Corporation|Company|Co)\b\.?)`),
		regexp.MustCompile(`\b([A-Z][A-Za-z0-9\s&]+(?:Technologies|Solutions|Services|Group|Industries))\b`),
	}

	addressKeywords = []string{
		"street", "road", "avenue", "lane", "drive", "plaza",
		"floor", "suite", "building", "city", "state", "zip",
	}

	postalRunPattern = regexp.MustCompile(`\b\d{5,6}\b`)
	digitPattern     = regexp.MustCompile(`\d`)
)

// candidate is one provisional scored extraction, tagged with the rule that
// produced it so resolution decisions stay auditable in tests.
type candidate struct {
	value string
	score float64
	rule  string
}

// Resolver assigns text spans to semantic roles using a tagger plus
// line-position and keyword heuristics.
type Resolver struct {
	cfg    Config
	tagger Tagger

	honorificPatterns []*regexp.Regexp
	keywordPatterns   []*regexp.Regexp
}

// NewResolver creates a Resolver with the given tagger. A nil tagger is
// allowed: the tagger-span strategies then contribute no candidates and the
// positional and shape heuristics carry every field.
func NewResolver(cfg Config, tagger Tagger) *Resolver {
	r := &Resolver{cfg: cfg, tagger: tagger}

	for _, h := range cfg.Honorifics {
		r.honorificPatterns = append(r.honorificPatterns,
			regexp.MustCompile(regexp.QuoteMeta(h)+`\.?\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`))
	}
	for _, k := range cfg.JobKeywords {
		// \s includes newlines, so a keyword match can span adjacent lines.
		// Use [^\S\n] instead of \s to confine matches to a single line.
		r.keywordPatterns = append(r.keywordPatterns,
			regexp.MustCompile(`(?i)\b[\w\s]*`+regexp.QuoteMeta(k)+`[\w\s]*\b`))
	}

	return r
}

// Resolve extracts the four entity fields from the text. The lines slice is
// the same text split into printed order; position heuristics depend on it.
// A field with no valid candidate is empty. Only a tagger failure returns an
// error.
func (r *Resolver) Resolve(text string, lines []string) (model.EntityFields, error) {
	var spans []Span
	if r.tagger != nil {
		var err error
		spans, err = r.tagger.Tag(text)
		if err != nil {
			return model.EntityFields{}, fmt.Errorf("resolve entities: %w", err)
		}
	}
	byKind := spansByKind(spans)

	name := r.extractName(lines, byKind[Person])
	job := r.extractJobPosition(text, lines, name)
	company := r.extractCompany(text, lines, byKind[Organization], name, job)
	address := r.extractAddress(lines, append(byKind[GPE], byKind[Location]...))

	return model.EntityFields{
		Name:        name,
		JobPosition: job,
		Company:     company,
		Address:     address,
	}, nil
}

// extractName generates name candidates from tagger spans, the first line,
// honorific patterns, and capitalized-word runs near the top of the card.
func (r *Resolver) extractName(lines []string, persons []string) string {
	var candidates []candidate

	for _, person := range persons {
		if r.validName(person) {
			candidates = append(candidates, candidate{person, scoreTaggedPerson, "tagged-person"})
		}
	}

	if first := firstNonEmpty(lines); first != "" && r.validName(first) {
		candidates = append(candidates, candidate{first, scoreFirstLine, "first-line"})
	}

	for _, line := range lines {
		for i, h := range r.cfg.Honorifics {
			if !strings.Contains(line, h) {
				continue
			}
			if m := r.honorificPatterns[i].FindStringSubmatch(line); m != nil && r.validName(m[1]) {
				candidates = append(candidates, candidate{m[1], scoreAfterHonorific, "after-honorific"})
			}
		}
	}

	for _, line := range firstN(lines, 3) {
		for _, m := range capitalizedRunPattern.FindAllString(line, -1) {
			if r.validName(m) && !r.isJobPosition(m) {
				candidates = append(candidates, candidate{m, scoreCapitalizedRun, "capitalized-run"})
			}
		}
	}

	return pickBest(candidates)
}

// validName reports whether the span is name-shaped: bounded length and
// word count, leading uppercase, no digits, no email or website fragments,
// and not itself a job position.
func (r *Resolver) validName(text string) bool {
	if text == "" {
		return false
	}
	if len(text) < r.cfg.MinNameLength || len(text) > r.cfg.MaxNameLength {
		return false
	}

	words := len(strings.Fields(text))
	if words < r.cfg.MinNameWords || words > r.cfg.MaxNameWords {
		return false
	}

	if !unicode.IsUpper([]rune(text)[0]) {
		return false
	}
	if digitPattern.MatchString(text) {
		return false
	}
	if strings.Contains(text, "@") || strings.Contains(strings.ToLower(text), ".com") {
		return false
	}

	return !r.isJobPosition(text)
}

// extractJobPosition generates title candidates from keyword spans, the
// line following the resolved name, and common title shapes.
func (r *Resolver) extractJobPosition(text string, lines []string, name string) string {
	var candidates []candidate

	for _, p := range r.keywordPatterns {
		for _, m := range p.FindAllString(text, -1) {
			cleaned := strings.TrimSpace(m)
			if len(cleaned) > 3 {
				candidates = append(candidates, candidate{cleaned, scoreJobKeyword, "keyword"})
			}
		}
	}

	if name != "" {
		if next := lineAfter(lines, name); next != "" && r.isJobPosition(next) {
			candidates = append(candidates, candidate{next, scoreLineAfterName, "line-after-name"})
		}
	}

	for _, p := range titleShapePatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			candidates = append(candidates, candidate{m[1], scoreTitleShape, "title-shape"})
		}
	}

	return pickBest(dedupeFold(candidates))
}

// isJobPosition reports whether any configured job keyword appears in the
// span.
func (r *Resolver) isJobPosition(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, k := range r.cfg.JobKeywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// extractCompany generates company candidates from tagger organization
// spans, the line following the resolved job position, and legal-entity or
// business-category suffix shapes.
func (r *Resolver) extractCompany(text string, lines []string, orgs []string, name, job string) string {
	var candidates []candidate

	for _, org := range orgs {
		if len(org) > 2 {
			candidates = append(candidates, candidate{org, scoreTaggedOrg, "tagged-org"})
		}
	}

	if job != "" {
		if next := lineAfter(lines, job); next != "" && r.validCompany(next, name, job) {
			candidates = append(candidates, candidate{next, scoreLineAfterJob, "line-after-job"})
		}
	}

	for _, p := range companyShapePatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			if r.validCompany(m[1], name, job) {
				candidates = append(candidates, candidate{m[1], scoreCompanyShape, "company-shape"})
			}
		}
	}

	return pickBest(dedupeFold(candidates))
}

// validCompany rejects spans that are actually the person, the job title,
// or contain email-like fragments.
func (r *Resolver) validCompany(text, name, job string) bool {
	if len(text) < 2 {
		return false
	}
	if name != "" && strings.EqualFold(text, name) {
		return false
	}
	if job != "" && strings.EqualFold(text, job) {
		return false
	}
	return !strings.Contains(text, "@") && !strings.Contains(strings.ToLower(text), ".com")
}

// extractAddress prefers lines carrying an address keyword or a 5-6 digit
// postal run, joined in encounter order; tagger location spans are the
// fallback when no line qualifies.
func (r *Resolver) extractAddress(lines []string, locations []string) string {
	var parts []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		matched := false
		for _, k := range addressKeywords {
			if strings.Contains(lower, k) {
				matched = true
				break
			}
		}
		if matched || postalRunPattern.MatchString(line) {
			parts = append(parts, line)
		}
	}

	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	if len(locations) > 0 {
		return strings.Join(locations, ", ")
	}
	return ""
}

// pickBest returns the value of the highest-scoring candidate, with ties
// broken in favor of the first-generated candidate.
func pickBest(candidates []candidate) string {
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	return candidates[0].value
}

// dedupeFold drops candidates whose value repeats case-insensitively,
// keeping the first occurrence.
func dedupeFold(candidates []candidate) []candidate {
	seen := make(map[string]bool)
	var out []candidate
	for _, c := range candidates {
		key := strings.ToLower(c.value)
		if !seen[key] {
			seen[key] = true
			out = append(out, c)
		}
	}
	return out
}

// firstNonEmpty returns the first line with visible content.
func firstNonEmpty(lines []string) string {
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// lineAfter returns the line immediately following the first line that
// contains the needle, or "" when the needle is absent or last.
func lineAfter(lines []string, needle string) string {
	for i, line := range lines {
		if strings.Contains(line, needle) && i+1 < len(lines) {
			return strings.TrimSpace(lines[i+1])
		}
	}
	return ""
}

// firstN returns at most the first n elements of lines.
func firstN(lines []string, n int) []string {
	if len(lines) < n {
		return lines
	}
	return lines[:n]
}
