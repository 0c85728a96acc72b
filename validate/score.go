package validate

import (
	"math"
	"regexp"
	"strings"

	"github.com/tsawler/cardex/model"
)

// Overall confidence weights. They sum to 1.
const (
	weightName        = 0.25
	weightEmail       = 0.20
	weightPhone       = 0.20
	weightJobPosition = 0.15
	weightCompany     = 0.15
	weightAddress     = 0.05
)

var (
	properNameShape = regexp.MustCompile(`^[A-Z][a-z]+(\s[A-Z][a-z]+)+$`)
	letterFirst     = regexp.MustCompile(`^[a-zA-Z]`)
	postalRun       = regexp.MustCompile(`\d{5,6}`)
)

// Score computes the per-field confidence map for a record. Empty fields
// score 0; populated fields start from a base and earn additive bonuses,
// capped at 100. Scoring is deterministic and never fails.
func Score(record model.ExtractionRecord) model.ConfidenceMap {
	scores := model.ConfidenceMap{
		Name:        nameScore(record.Name),
		Email:       emailScore(record.Email),
		Phone:       phoneConfidence(record.Phone),
		JobPosition: flatScore(record.JobPosition, 75),
		Company:     flatScore(record.Company, 70),
		Address:     addressScore(record.Address),
	}

	overall := scores.Name*weightName +
		scores.Email*weightEmail +
		scores.Phone*weightPhone +
		scores.JobPosition*weightJobPosition +
		scores.Company*weightCompany +
		scores.Address*weightAddress
	scores.Overall = math.Round(overall*100) / 100

	return scores
}

func nameScore(name string) float64 {
	if name == "" {
		return 0
	}
	score := 50.0
	if len(strings.Fields(name)) >= 2 {
		score += 30
	}
	if properNameShape.MatchString(name) {
		score += 20
	}
	return capped(score)
}

func emailScore(email string) float64 {
	if email == "" {
		return 0
	}
	score := 70.0
	if letterFirst.MatchString(email) {
		score += 15
	}
	if strings.Contains(email, ".") {
		score += 15
	}
	return capped(score)
}

func phoneConfidence(phone string) float64 {
	if phone == "" {
		return 0
	}
	score := 60.0
	if strings.HasPrefix(phone, "+") {
		score += 20
	}
	if len(nonDigits.ReplaceAllString(phone, "")) >= 10 {
		score += 20
	}
	return capped(score)
}

func flatScore(value string, points float64) float64 {
	if value == "" {
		return 0
	}
	return points
}

func addressScore(address string) float64 {
	if address == "" {
		return 0
	}
	score := 50.0
	if strings.Contains(address, ",") {
		score += 25
	}
	if postalRun.MatchString(address) {
		score += 25
	}
	return capped(score)
}

func capped(score float64) float64 {
	return math.Min(score, 100)
}
