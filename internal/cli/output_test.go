package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/metsehaf/fidel/internal/config"
	"github.com/metsehaf/fidel/internal/models"
)

func testDisplay() *config.DisplayConfig {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	return &cfg.Display
}

func sampleResult() *models.QueryResult {
	return &models.QueryResult{
		Query:  "peace",
		Status: models.StatusOK,
		WordMatches: []*models.WordMatch{
			{
				Word: "ሰላም",
				Entry: &models.LexiconEntry{
					Definition:      "peace, greeting, wellbeing and safety",
					Transliteration: "salam",
					Gematria:        135,
				},
				MatchedField: models.FieldDefinition,
				VerseRefs:    []string{"1:1", "1:2"},
			},
		},
		WordMatchCount: 1,
		VerseMatches: []*models.VerseMatch{
			{Ref: "1:2", Text: "And he spoke of peace"},
		},
		VerseMatchCount: 1,
		Total:           2,
		QueryTime:       3,
	}
}

func TestWriteQueryResultText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteQueryResult(&buf, sampleResult(), OutputText, testDisplay()); err != nil {
		t.Fatalf("WriteQueryResult: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Found 2 results", "ሰላም", "salam", "[1:2] And he spoke of peace"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteQueryResultJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteQueryResult(&buf, sampleResult(), OutputJSON, testDisplay()); err != nil {
		t.Fatalf("WriteQueryResult: %v", err)
	}
	var res models.QueryResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if res.Total != 2 || res.Query != "peace" {
		t.Errorf("round-tripped result = %+v", res)
	}
}

func TestWriteQueryResultCompact(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteQueryResult(&buf, sampleResult(), OutputCompact, testDisplay()); err != nil {
		t.Fatalf("WriteQueryResult: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("compact lines = %d, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "word\tሰላም\t") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "verse\t1:2\t") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestWriteQueryResultStatuses(t *testing.T) {
	tests := []struct {
		status models.ResultStatus
		want   string
	}{
		{models.StatusTooShort, "too short"},
		{models.StatusUnavailable, "could not be loaded"},
		{models.StatusNoMatch, "No results"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		res := &models.QueryResult{Query: "x", Status: tt.status}
		if err := WriteQueryResult(&buf, res, OutputText, testDisplay()); err != nil {
			t.Fatalf("WriteQueryResult(%s): %v", tt.status, err)
		}
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("status %s output = %q, want %q", tt.status, buf.String(), tt.want)
		}
	}
}

func TestWriteQueryResultSuggestions(t *testing.T) {
	var buf bytes.Buffer
	res := &models.QueryResult{
		Query:       "salaam",
		Status:      models.StatusNoMatch,
		Suggestions: []string{"salam"},
	}
	if err := WriteQueryResult(&buf, res, OutputText, testDisplay()); err != nil {
		t.Fatalf("WriteQueryResult: %v", err)
	}
	if !strings.Contains(buf.String(), "Did you mean: salam?") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFormatDefinition(t *testing.T) {
	display := testDisplay()
	tests := []struct {
		def  string
		want string
	}{
		{"peace", "peace"},
		{"the heaven", "heaven"},
		{"And the heaven", "the heaven"},
		{"theory of everything", "theory of everything"},
		{"a very long definition that runs past the cut", "very long definition that..."},
	}
	for _, tt := range tests {
		if got := FormatDefinition(tt.def, display); got != tt.want {
			t.Errorf("FormatDefinition(%q) = %q, want %q", tt.def, got, tt.want)
		}
	}
}

func TestFormatDefinitionNoStrip(t *testing.T) {
	display := testDisplay()
	off := false
	display.StripParticles = &off
	if got := FormatDefinition("the heaven", display); got != "the heaven" {
		t.Errorf("FormatDefinition = %q, want untouched", got)
	}
}

func TestFormatDefinitionNilDisplay(t *testing.T) {
	if got := FormatDefinition("the heaven", nil); got != "the heaven" {
		t.Errorf("FormatDefinition = %q", got)
	}
}
