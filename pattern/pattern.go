package pattern

import (
	"regexp"
	"strings"

	"github.com/tsawler/cardex/model"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Phone shapes ordered for recall: international with country code,
	// grouped national formats, bare 10-digit, extension-suffixed.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,3}[\s.-]?\(?\d{1,4}\)?[\s.-]?\d{1,4}[\s.-]?\d{1,4}[\s.-]?\d{1,9}`),
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{10,}`),
		regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\b\d{10}\b`),
		regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\s*(?:ext\.?|x)\s*\d{1,5}`),
	}

	websitePattern = regexp.MustCompile(`(?i)\b(?:https?://)?(?:www\.)?[A-Za-z0-9-]+\.[A-Za-z]{2,}(?:\.[A-Za-z]{2,})?(?:/[^\s]*)?\b`)

	socialPatterns = map[string]*regexp.Regexp{
		"linkedin": regexp.MustCompile(`(?i)(?:linkedin\.com/in/|@)([A-Za-z0-9_-]+)`),
		"twitter":  regexp.MustCompile(`(?i)(?:twitter\.com/|@)([A-Za-z0-9_]+)`),
		"facebook": regexp.MustCompile(`(?i)(?:facebook\.com/)([A-Za-z0-9.]+)`),
	}

	faxPattern      = regexp.MustCompile(`(?i)(?:fax|f)[\s:]*\+?\d{1,3}?[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}`)
	faxLabelPattern = regexp.MustCompile(`(?i)^(?:fax|f)[\s:]*`)

	zipPattern = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	pinPattern = regexp.MustCompile(`\b\d{6}\b`)

	// Company identifier shapes: Indian GST (15 chars), Indian PAN
	// (10 chars), US EIN (2-7 digits).
	gstPattern = regexp.MustCompile(`\b\d{2}[A-Z]{5}\d{4}[A-Z][A-Z\d]Z[A-Z\d]\b`)
	panPattern = regexp.MustCompile(`\b[A-Z]{5}\d{4}[A-Z]\b`)
	einPattern = regexp.MustCompile(`\b\d{2}-\d{7}\b`)

	phoneLabelPattern = regexp.MustCompile(`(?i)\b(?:phone|tel|mobile|cell|m|t)\b[\s:]*`)
	phoneJunkPattern  = regexp.MustCompile(`[^\d+\-() ]`)
)

// Extractor extracts structured fields from raw card text.
type Extractor struct {
	checker PhoneChecker
}

// New creates an Extractor. A nil checker selects [LibPhoneChecker].
func New(checker PhoneChecker) *Extractor {
	if checker == nil {
		checker = LibPhoneChecker{}
	}
	return &Extractor{checker: checker}
}

// Extract runs every field extractor over the text and returns the combined
// structured fields. Fields with no matches are left empty.
func (e *Extractor) Extract(text string) model.StructuredFields {
	return model.StructuredFields{
		Emails:      e.Emails(text),
		Phones:      e.Phones(text),
		Websites:    e.Websites(text),
		SocialMedia: e.SocialMedia(text),
		Fax:         e.Fax(text),
		PostalCodes: e.PostalCodes(text),
		CompanyIDs:  e.CompanyIDs(text),
	}
}

// Emails returns all valid email addresses, lowercased and deduplicated in
// first-encounter order.
func (e *Extractor) Emails(text string) []string {
	var emails []string
	for _, match := range emailPattern.FindAllString(text, -1) {
		email := strings.ToLower(strings.TrimSpace(match))
		if validEmail(email) && !contains(emails, email) {
			emails = append(emails, email)
		}
	}
	return emails
}

func validEmail(email string) bool {
	if len(email) < 5 || len(email) > 254 {
		return false
	}
	if strings.Count(email, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(email, "@")
	if local == "" || domain == "" {
		return false
	}
	return strings.Contains(domain, ".")
}

// Phones returns all validated phone numbers, normalized and deduplicated in
// first-encounter order.
func (e *Extractor) Phones(text string) []string {
	var raw []string
	for _, p := range phonePatterns {
		for _, match := range p.FindAllString(text, -1) {
			if !contains(raw, match) {
				raw = append(raw, match)
			}
		}
	}

	var phones []string
	for _, phone := range raw {
		normalized := NormalizePhone(phone)
		if normalized == "" {
			continue
		}
		if e.validPhone(normalized) && !contains(phones, normalized) {
			phones = append(phones, normalized)
		}
	}
	return phones
}

// NormalizePhone strips textual labels ("phone:", "tel:") and every
// character other than digits, '+', '-', parentheses, and spaces, then
// collapses whitespace.
func NormalizePhone(phone string) string {
	phone = phoneLabelPattern.ReplaceAllString(phone, "")
	phone = phoneJunkPattern.ReplaceAllString(phone, "")
	return strings.Join(strings.Fields(phone), " ")
}

// validPhone applies the semantic checker, falling back to a digit-count
// bound of [7,15] when the number cannot be parsed.
func (e *Extractor) validPhone(phone string) bool {
	valid, parsed := e.checker.Check(phone)
	if parsed {
		return valid
	}
	n := digitCount(phone)
	return n >= 7 && n <= 15
}

// Websites returns cleaned URLs: scheme-prefixed with https:// when bare,
// lowercased, trailing punctuation stripped, deduplicated in
// first-encounter order. Email addresses are blanked out first so their
// local parts and domains are not mistaken for URLs.
func (e *Extractor) Websites(text string) []string {
	text = emailPattern.ReplaceAllString(text, " ")

	var sites []string
	for _, match := range websitePattern.FindAllString(text, -1) {
		url := strings.TrimRight(strings.TrimSpace(match), ".,;:")
		if url == "" {
			continue
		}
		if !strings.HasPrefix(url, "http") {
			url = "https://" + url
		}
		url = strings.ToLower(url)
		if !contains(sites, url) {
			sites = append(sites, url)
		}
	}
	return sites
}

// SocialMedia returns per-platform handles. The first match wins for each
// platform; platforms without a match are absent from the map.
func (e *Extractor) SocialMedia(text string) map[string]string {
	social := make(map[string]string)
	for platform, p := range socialPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			social[platform] = m[1]
		}
	}
	return social
}

// Fax returns the first fax number found, with its label stripped and the
// number normalized like a phone. Empty when no fax is labeled.
func (e *Extractor) Fax(text string) string {
	match := faxPattern.FindString(text)
	if match == "" {
		return ""
	}
	return NormalizePhone(faxLabelPattern.ReplaceAllString(match, ""))
}

// PostalCodes returns ZIP (5 or 5+4 digit) and PIN (6 digit) codes,
// deduplicated in first-encounter order. No validation beyond shape is done.
func (e *Extractor) PostalCodes(text string) []string {
	var codes []string
	for _, p := range []*regexp.Regexp{zipPattern, pinPattern} {
		for _, match := range p.FindAllString(text, -1) {
			if !contains(codes, match) {
				codes = append(codes, match)
			}
		}
	}
	return codes
}

// CompanyIDs returns recognized company tax identifiers keyed by type (GST,
// PAN, EIN). At most one value is captured per type; the first match wins.
func (e *Extractor) CompanyIDs(text string) map[string]string {
	ids := make(map[string]string)
	if m := gstPattern.FindString(text); m != "" {
		ids["GST"] = m
	}
	if m := panPattern.FindString(text); m != "" {
		ids["PAN"] = m
	}
	if m := einPattern.FindString(text); m != "" {
		ids["EIN"] = m
	}
	return ids
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
