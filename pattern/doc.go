// Package pattern extracts structured contact fields from raw OCR text by
// fixed-shape pattern matching.
//
// An [Extractor] recognizes emails, phone and fax numbers, websites, social
// media handles, postal codes, and company tax identifiers. Extraction is a
// pure function of the input text: no I/O, no state across calls.
//
//	ex := pattern.New(nil)
//	fields := ex.Extract(text)
//
// Every field is normalized and validated before it is returned; a field
// with zero matches yields an empty value, never an error.
//
// # Phone Validation
//
// Phone numbers are checked by a [PhoneChecker]. The default,
// [LibPhoneChecker], parses candidates as international numbers with the
// libphonenumber port. When a number cannot be parsed the extractor falls
// back to a digit-count heuristic (7 to 15 digits) rather than rejecting it,
// since cards frequently print numbers without a country code.
package pattern
