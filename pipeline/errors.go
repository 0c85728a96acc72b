package pipeline

import (
	"errors"
	"fmt"
)

// ErrNoText reports that the card image was processed successfully but no
// usable text was recognized. Runs ending in ErrNoText still return a valid
// empty result.
var ErrNoText = errors.New("no text detected")

// CollaboratorError wraps a failure of an external engine (OCR or entity
// tagger). It is fatal for the run.
type CollaboratorError struct {
	Stage string
	Err   error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s engine: %v", e.Stage, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}
