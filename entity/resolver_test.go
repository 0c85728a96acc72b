package entity

import (
	"errors"
	"strings"
	"testing"
)

// staticTagger returns a fixed set of spans, or a fixed error.
type staticTagger struct {
	spans []Span
	err   error
}

func (s *staticTagger) Tag(string) ([]Span, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.spans, nil
}

func splitCard(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

const sampleCard = `Dr. Jane Doe
Senior Engineer
Acme Corp
jane.doe@acmecorp.com
+1 (555) 123-4567
www.acmecorp.com
123 Main Street, Springfield, 12345`

func TestResolveSampleCard(t *testing.T) {
	r := NewResolver(DefaultConfig(), nil)

	fields, err := r.Resolve(sampleCard, splitCard(sampleCard))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if fields.Name != "Jane Doe" {
		t.Errorf("name = %q, want %q", fields.Name, "Jane Doe")
	}
	if !strings.Contains(fields.JobPosition, "Engineer") {
		t.Errorf("job position = %q, want it to contain %q", fields.JobPosition, "Engineer")
	}
	if !strings.Contains(fields.Company, "Acme") {
		t.Errorf("company = %q, want it to contain %q", fields.Company, "Acme")
	}
	if !strings.Contains(fields.Address, "Main Street") {
		t.Errorf("address = %q, want it to contain %q", fields.Address, "Main Street")
	}
}

func TestResolveTaggedSpansWin(t *testing.T) {
	tagger := &staticTagger{spans: []Span{
		{Text: "Maria Garcia", Kind: Person},
		{Text: "Globex Corporation", Kind: Organization},
	}}
	r := NewResolver(DefaultConfig(), tagger)

	text := "Bob Smith\nMaria Garcia\nGlobex Corporation"
	fields, err := r.Resolve(text, splitCard(text))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if fields.Name != "Maria Garcia" {
		t.Errorf("name = %q, want tagged span to outrank first line", fields.Name)
	}
	if fields.Company != "Globex Corporation" {
		t.Errorf("company = %q, want %q", fields.Company, "Globex Corporation")
	}
}

func TestResolveTaggerError(t *testing.T) {
	wantErr := errors.New("model unavailable")
	r := NewResolver(DefaultConfig(), &staticTagger{err: wantErr})

	_, err := r.Resolve("Jane Doe", []string{"Jane Doe"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped %v", err, wantErr)
	}
}

func TestResolveNilTagger(t *testing.T) {
	r := NewResolver(DefaultConfig(), nil)

	text := "John Smith\nMarketing Manager\nInitech Solutions"
	fields, err := r.Resolve(text, splitCard(text))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if fields.Name != "John Smith" {
		t.Errorf("name = %q, want %q", fields.Name, "John Smith")
	}
	if fields.JobPosition != "Marketing Manager" {
		t.Errorf("job position = %q, want %q", fields.JobPosition, "Marketing Manager")
	}
	if fields.Company != "Initech Solutions" {
		t.Errorf("company = %q, want %q", fields.Company, "Initech Solutions")
	}
}

func TestResolveEmptyInput(t *testing.T) {
	r := NewResolver(DefaultConfig(), nil)

	fields, err := r.Resolve("", nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if fields.Name != "" || fields.JobPosition != "" || fields.Company != "" || fields.Address != "" {
		t.Errorf("expected all fields empty, got %+v", fields)
	}
}

func TestValidName(t *testing.T) {
	r := NewResolver(DefaultConfig(), nil)

	tests := []struct {
		text string
		want bool
	}{
		{"Jane Doe", true},
		{"J", false},
		{"jane doe", false},
		{"Jane Doe 42", false},
		{"jane@acme.com", false},
		{"Senior Engineer", false},
		{"A Very Long Name That Goes On Well Past Any Plausible Human Name Length", false},
	}

	for _, tt := range tests {
		if got := r.validName(tt.text); got != tt.want {
			t.Errorf("validName(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestExtractAddressKeywordLines(t *testing.T) {
	r := NewResolver(DefaultConfig(), nil)

	lines := []string{"Jane Doe", "42 Oak Avenue", "Suite 300", "Springfield 62704"}
	got := r.extractAddress(lines, nil)

	want := "42 Oak Avenue, Suite 300, Springfield 62704"
	if got != want {
		t.Errorf("address = %q, want %q", got, want)
	}
}

func TestExtractAddressLocationFallback(t *testing.T) {
	r := NewResolver(DefaultConfig(), nil)

	got := r.extractAddress([]string{"Jane Doe", "Acme Corp"}, []string{"Springfield", "Illinois"})
	if got != "Springfield, Illinois" {
		t.Errorf("address = %q, want location spans joined", got)
	}
}
