package ocr

import (
	"reflect"
	"testing"
)

func TestBuildLines(t *testing.T) {
	tokens := []Token{
		{Text: "Jane", Confidence: 90, LineNum: 1, TopY: 10},
		{Text: "Doe", Confidence: 88, LineNum: 1, TopY: 10},
		{Text: "Senior", Confidence: 85, LineNum: 2, TopY: 40},
		{Text: "Engineer", Confidence: 82, LineNum: 2, TopY: 40},
		{Text: "Acme", Confidence: 91, LineNum: 3, TopY: 70},
	}

	lines := BuildLines(tokens, DefaultMinConfidence)

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0].Text != "Jane Doe" || lines[0].LineIndex != 1 {
		t.Errorf("line 0 = %+v", lines[0])
	}
	if lines[1].Text != "Senior Engineer" {
		t.Errorf("line 1 = %+v", lines[1])
	}
	if lines[2].Text != "Acme" {
		t.Errorf("line 2 = %+v", lines[2])
	}
}

func TestBuildLines_ConfidenceFilter(t *testing.T) {
	tokens := []Token{
		{Text: "solid", Confidence: 75, LineNum: 1},
		{Text: "garbage", Confidence: 12, LineNum: 1},
		{Text: "word", Confidence: 40, LineNum: 1},
	}

	lines := BuildLines(tokens, 30)

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "solid word" {
		t.Errorf("line = %q, want %q", lines[0].Text, "solid word")
	}
}

func TestBuildLines_SkipsEmptyTokens(t *testing.T) {
	tokens := []Token{
		{Text: "  ", Confidence: 95, LineNum: 1},
		{Text: "only", Confidence: 95, LineNum: 2},
	}

	lines := BuildLines(tokens, 30)
	if len(lines) != 1 || lines[0].Text != "only" {
		t.Errorf("lines = %+v", lines)
	}
}

func TestBuildLines_Empty(t *testing.T) {
	if lines := BuildLines(nil, 30); lines != nil {
		t.Errorf("expected nil for no tokens, got %+v", lines)
	}
}

func TestSplitLines(t *testing.T) {
	raw := "Jane  Doe\n\n  Senior   Engineer  \nAcme Corp\n"

	got := SplitLines(raw)
	want := []string{"Jane Doe", "Senior Engineer", "Acme Corp"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitLines() = %v, want %v", got, want)
	}
}

func TestLayoutSections(t *testing.T) {
	tokens := []Token{
		{Text: "Jane", Confidence: 90, TopY: 5},
		{Text: "Engineer", Confidence: 90, TopY: 50},
		{Text: "Street", Confidence: 90, TopY: 95},
		{Text: "noise", Confidence: 5, TopY: 95},
	}

	s := LayoutSections(tokens, 120, 30)

	if !reflect.DeepEqual(s.Top, []string{"Jane"}) {
		t.Errorf("Top = %v", s.Top)
	}
	if !reflect.DeepEqual(s.Middle, []string{"Engineer"}) {
		t.Errorf("Middle = %v", s.Middle)
	}
	if !reflect.DeepEqual(s.Bottom, []string{"Street"}) {
		t.Errorf("Bottom = %v", s.Bottom)
	}
}

func TestLayoutSections_DegenerateHeight(t *testing.T) {
	s := LayoutSections([]Token{{Text: "x", Confidence: 90}}, 0, 30)
	if s.Top != nil || s.Middle != nil || s.Bottom != nil {
		t.Errorf("expected empty sections for zero height, got %+v", s)
	}
}
