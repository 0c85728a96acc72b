package validate

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsawler/cardex/model"
)

// Config holds the fusion and selection parameters.
type Config struct {
	// GenericDomains lists email providers that score below company domains
	// during best-email selection.
	GenericDomains []string

	// MobileLeadingDigits are the digits a 10-digit national number may start
	// with to earn the mobile bonus during best-phone selection.
	MobileLeadingDigits string
}

// DefaultConfig returns selection parameters tuned for Indian mobile
// numbering alongside the common global email providers.
func DefaultConfig() Config {
	return Config{
		GenericDomains:      []string{"gmail.com", "yahoo.com", "outlook.com", "hotmail.com"},
		MobileLeadingDigits: "6789",
	}
}

var (
	honorificPrefixes = []string{"Mr.", "Mrs.", "Ms.", "Dr.", "Prof."}

	trailingCompanyPunct = regexp.MustCompile(`[,;:]+$`)
	repeatedCommas       = regexp.MustCompile(`,\s*,`)
	commaNoSpace         = regexp.MustCompile(`,(\S)`)
	nonDigits            = regexp.MustCompile(`\D`)
	canonicalIntlPhone   = regexp.MustCompile(`^\+\d{1,3}[\s-]?\d{10}$`)
)

// Validator merges structured and entity fields into one cleaned record.
// It is safe for concurrent use.
type Validator struct {
	cfg    Config
	titler func(string) string
}

// New creates a Validator with the given config.
func New(cfg Config) *Validator {
	return &Validator{
		cfg: cfg,
		titler: func(s string) string {
			return cases.Title(language.English).String(s)
		},
	}
}

// Merge combines both extractor outputs into a cleaned ExtractionRecord.
// Fields absent from both inputs stay empty; Merge never fails.
func (v *Validator) Merge(structured model.StructuredFields, entities model.EntityFields) model.ExtractionRecord {
	record := model.ExtractionRecord{
		Name:        v.cleanName(entities.Name),
		JobPosition: v.cleanJobPosition(entities.JobPosition),
		Company:     v.cleanCompany(entities.Company),
		Address:     v.cleanAddress(entities.Address),
		Fax:         structured.Fax,
		SocialMedia: structured.SocialMedia,
		CompanyIDs:  structured.CompanyIDs,
	}

	record.Email = v.selectBestEmail(structured.Emails)

	phone, alternates := v.selectBestPhone(structured.Phones)
	record.Phone = phone
	record.AlternatePhones = alternates

	if len(structured.Websites) > 0 {
		record.Website = structured.Websites[0]
	}

	return record
}

// cleanName collapses whitespace, strips one leading honorific, title-cases,
// and strips trailing punctuation.
func (v *Validator) cleanName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	for _, prefix := range honorificPrefixes {
		if strings.HasPrefix(name, prefix+" ") {
			name = name[len(prefix)+1:]
			break
		}
	}
	name = v.titler(name)
	return strings.TrimRight(name, ".,;:")
}

func (v *Validator) cleanJobPosition(position string) string {
	position = strings.Join(strings.Fields(position), " ")
	position = v.titler(position)
	return strings.TrimRight(position, ".,;:")
}

// cleanCompany keeps the original casing: legal suffixes like "LLC" must
// survive, so only trailing separators are stripped.
func (v *Validator) cleanCompany(company string) string {
	company = strings.Join(strings.Fields(company), " ")
	return trailingCompanyPunct.ReplaceAllString(company, "")
}

func (v *Validator) cleanAddress(address string) string {
	address = strings.Join(strings.Fields(address), " ")
	address = repeatedCommas.ReplaceAllString(address, ",")
	address = commaNoSpace.ReplaceAllString(address, ", $1")
	return strings.TrimRight(address, ".,;:")
}

// selectBestEmail prefers company domains over generic providers, then
// shorter addresses. Losing emails are dropped.
func (v *Validator) selectBestEmail(emails []string) string {
	best := ""
	bestScore := -1.0

	for _, email := range emails {
		score := 0.0

		domain := ""
		if at := strings.Index(email, "@"); at >= 0 {
			domain = strings.ToLower(email[at+1:])
		}
		generic := false
		for _, g := range v.cfg.GenericDomains {
			if domain == g {
				generic = true
				break
			}
		}
		if !generic {
			score += 10
		}
		score += 5 / float64(len(email))

		if score > bestScore {
			best = email
			bestScore = score
		}
	}

	return best
}

// selectBestPhone picks the primary number and returns the remaining
// digit-distinct numbers as alternates in encounter order. Numbers that
// differ only in formatting count as one.
func (v *Validator) selectBestPhone(phones []string) (string, []string) {
	seen := make(map[string]bool)
	var unique []string
	for _, phone := range phones {
		digits := nonDigits.ReplaceAllString(phone, "")
		if !seen[digits] {
			seen[digits] = true
			unique = append(unique, phone)
		}
	}
	if len(unique) == 0 {
		return "", nil
	}

	best := 0
	bestScore := -1
	for i, phone := range unique {
		if score := v.phoneScore(phone); score > bestScore {
			best = i
			bestScore = score
		}
	}

	var alternates []string
	for i, phone := range unique {
		if i != best {
			alternates = append(alternates, phone)
		}
	}
	return unique[best], alternates
}

// phoneScore rewards a country-code prefix, a mobile-shaped national
// number, and canonical international formatting.
func (v *Validator) phoneScore(phone string) int {
	score := 0

	if strings.HasPrefix(phone, "+") {
		score += 5
	}

	digits := nonDigits.ReplaceAllString(phone, "")
	national := digits
	if strings.HasPrefix(phone, "+") && len(digits) > 10 {
		national = digits[len(digits)-10:]
	}
	if len(national) == 10 && strings.ContainsRune(v.cfg.MobileLeadingDigits, rune(national[0])) {
		score += 10
	}

	if canonicalIntlPhone.MatchString(phone) {
		score += 3
	}

	return score
}

// FormatPhoneDisplay formats a bare 10-digit number as (XXX) XXX-XXXX.
// International numbers and anything else pass through unchanged.
func FormatPhoneDisplay(phone string) string {
	if strings.HasPrefix(strings.TrimSpace(phone), "+") {
		return phone
	}
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) == 10 {
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	}
	return phone
}
