package model

import (
	"fmt"
	"strings"
)

// ExtractionRecord is the fused, cleaned output of a pipeline run. Every
// populated field has passed that field's own validation; empty strings and
// nil collections mean "not found". Records are constructed once by the
// validator and never mutated afterwards.
type ExtractionRecord struct {
	Name        string
	JobPosition string
	Company     string
	Email       string
	Phone       string
	Website     string
	Fax         string
	Address     string

	// AlternatePhones holds the validated numbers that were not selected as
	// the primary phone, in their original encounter order.
	AlternatePhones []string

	// SocialMedia maps platform name (linkedin, twitter, facebook) to handle.
	SocialMedia map[string]string

	// CompanyIDs maps identifier type (GST, PAN, EIN) to value.
	CompanyIDs map[string]string
}

// IsEmpty reports whether no scalar field was extracted.
func (r ExtractionRecord) IsEmpty() bool {
	return r.Name == "" && r.JobPosition == "" && r.Company == "" &&
		r.Email == "" && r.Phone == "" && r.Website == "" &&
		r.Fax == "" && r.Address == ""
}

// FieldCount returns the number of populated scalar fields.
func (r ExtractionRecord) FieldCount() int {
	count := 0
	for _, v := range []string{r.Name, r.JobPosition, r.Company, r.Email, r.Phone, r.Website, r.Fax, r.Address} {
		if v != "" {
			count++
		}
	}
	return count
}

// ConfidenceMap holds per-field confidence scores. Each score is a
// deterministic heuristic quality estimate in [0,100], not a statistical
// probability. Overall is a fixed convex combination of the per-field
// scores, rounded to two decimals.
type ConfidenceMap struct {
	Name        float64
	Email       float64
	Phone       float64
	JobPosition float64
	Company     float64
	Address     float64
	Overall     float64
}

// ByField returns the per-field scores keyed by field name. The overall
// score is included under "overall".
func (c ConfidenceMap) ByField() map[string]float64 {
	return map[string]float64{
		"name":         c.Name,
		"email":        c.Email,
		"phone":        c.Phone,
		"job_position": c.JobPosition,
		"company":      c.Company,
		"address":      c.Address,
		"overall":      c.Overall,
	}
}

// Summary returns a short human-readable account of an extraction: how many
// fields were populated, the overall confidence, and which fields scored
// high (>=80) or low (<50 but present).
func Summary(record ExtractionRecord, scores ConfidenceMap) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Extracted %d fields\n", record.FieldCount())
	fmt.Fprintf(&sb, "Overall confidence: %.1f%%", scores.Overall)

	var high, low []string
	for _, name := range []string{"name", "email", "phone", "job_position", "company", "address"} {
		score := scores.ByField()[name]
		switch {
		case score >= 80:
			high = append(high, name)
		case score > 0 && score < 50:
			low = append(low, name)
		}
	}

	if len(high) > 0 {
		fmt.Fprintf(&sb, "\nHigh confidence: %s", strings.Join(high, ", "))
	}
	if len(low) > 0 {
		fmt.Fprintf(&sb, "\nLow confidence: %s", strings.Join(low, ", "))
	}

	return sb.String()
}
