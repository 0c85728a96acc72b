// Package validate fuses pattern-extractor and entity-resolver output into
// a single cleaned ExtractionRecord and scores its quality.
//
// Merging never fails: a field missing from both inputs stays empty, a
// field that fails cleaning is dropped, and the rest of the record is kept.
// Multi-candidate fields are reduced to one value here. Emails compete on
// domain (company domains beat generic providers) and length; losing emails
// are discarded. Phones compete on formatting and mobile shape; losing
// numbers that are digit-distinct from the winner are kept as alternates
// in their original order.
//
// Confidence scoring is a deterministic additive point system per field,
// capped at 100, with a fixed weighted overall score. It estimates
// extraction quality, it is not a probability.
package validate
