//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestStub_ReturnsNotEnabled(t *testing.T) {
	_, err := New()
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("New() error = %v, want ErrOCRNotEnabled", err)
	}

	var e *Engine
	if err := e.Close(); err != nil {
		t.Errorf("Close() on nil engine = %v, want nil", err)
	}

	stub := &Engine{}
	if _, _, err := stub.Recognize(nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Recognize() error = %v, want ErrOCRNotEnabled", err)
	}
	if _, err := stub.MultiPass(nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("MultiPass() error = %v, want ErrOCRNotEnabled", err)
	}
	if err := stub.SetLanguage("eng"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetLanguage() error = %v, want ErrOCRNotEnabled", err)
	}
}
