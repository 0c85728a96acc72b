// Package model provides the value types shared by the card extraction
// pipeline.
//
// This package defines the user-facing data structures that represent the
// result of processing a photographed business card. All extraction stages
// ultimately produce these types, making them the primary API for consuming
// extracted contact information.
//
// # Pipeline Types
//
// The pipeline stages exchange the following types:
//
//   - [OCRLine] - an OCR-attributed line of text with its printed position
//   - [Candidate] - a provisional, scored extraction for one field
//   - [StructuredFields] - pattern-matched fields (emails, phones, websites)
//   - [EntityFields] - heuristically resolved fields (name, title, company)
//
// # Results
//
// The fused output of a pipeline run:
//
//   - [ExtractionRecord] - the final contact record, one value per field
//   - [ConfidenceMap] - per-field confidence scores in [0,100] plus an
//     overall weighted aggregate
//
// All types in this package are plain values. Each pipeline stage constructs
// a fresh value and never mutates one it received, so records and confidence
// maps can be shared freely across goroutines once produced.
package model
