// Package pipeline runs the full card extraction sequence: image
// enhancement, OCR, pattern and entity extraction, QR backfill, and fusion
// into a scored ExtractionRecord.
//
// Each stage completes before the next begins and no state is shared
// between runs, so one Pipeline may serve concurrent runs as long as its
// OCR engine tolerates concurrent calls.
//
// Failures are split three ways. An unreadable image or a failing
// collaborator (OCR engine, entity tagger) aborts the run with an error. A
// readable card that yields no text is a business outcome, reported as
// ErrNoText alongside a valid empty result. A single field that fails
// validation is dropped silently and the rest of the record survives.
package pipeline
