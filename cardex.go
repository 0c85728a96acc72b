// Package cardex provides a fluent API for extracting contact information
// from photographs of business cards.
//
// Basic usage:
//
//	result, err := cardex.Open("card.jpg").Extract()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(result.Record.Name, result.Record.Email)
//
// With options:
//
//	result, err := cardex.Open("card.jpg").
//	    Language("eng").
//	    WithDebug().
//	    Extract()
//
// OCR requires Tesseract and the "ocr" build tag; without it, Extract
// returns an error unless an engine is injected via WithOCR. For advanced
// use cases the lower-level pipeline package is also available.
package cardex

import (
	"image"

	"github.com/tsawler/cardex/pipeline"
)

// Open prepares extraction from an image file. The file is not read until a
// terminal operation like Extract is called.
//
// Example:
//
//	result, err := cardex.Open("card.jpg").Extract()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromImage prepares extraction from an already-decoded image. This is
// useful when the image comes from memory rather than a file.
//
// Example:
//
//	result, err := cardex.FromImage(img).Extract()
func FromImage(img image.Image) *Extractor {
	return &Extractor{
		img:     img,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	result := cardex.Must(cardex.Open("card.jpg").Extract())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Result is the complete output of one extraction run.
type Result = pipeline.Result
