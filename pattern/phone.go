package pattern

import (
	"regexp"

	"github.com/nyaruka/phonenumbers"
)

// PhoneChecker validates the semantics of a normalized phone number.
type PhoneChecker interface {
	// Check reports whether the number is a valid phone number. The second
	// result is false when the checker could not parse the input at all, in
	// which case the caller falls back to its own heuristic.
	Check(phone string) (valid bool, parsed bool)
}

// LibPhoneChecker validates numbers with the libphonenumber metadata. It
// only parses numbers carrying an explicit country code ("+..."), since no
// default region can be assumed for a business card.
type LibPhoneChecker struct{}

// Check parses the number as an international number and reports its
// validity. Parse failures report parsed=false so the caller can apply its
// digit-count fallback.
func (LibPhoneChecker) Check(phone string) (valid bool, parsed bool) {
	num, err := phonenumbers.Parse(phone, "")
	if err != nil {
		return false, false
	}
	return phonenumbers.IsValidNumber(num), true
}

var nonDigits = regexp.MustCompile(`\D`)

// digitCount returns the number of digit characters in s.
func digitCount(s string) int {
	return len(nonDigits.ReplaceAllString(s, ""))
}
