package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/metsehaf/fidel/internal/index"
	"github.com/metsehaf/fidel/internal/translit"
)

func buildTestIndex(t *testing.T) *index.SearchIndex {
	t.Helper()
	dir := t.TempDir()
	lexPath := filepath.Join(dir, "words.json")
	versePath := filepath.Join(dir, "search_index.json")
	if err := os.WriteFile(lexPath, []byte(engineLexiconJSON), 0o644); err != nil {
		t.Fatalf("write lexicon: %v", err)
	}
	if err := os.WriteFile(versePath, []byte(engineVerseJSON), 0o644); err != nil {
		t.Fatalf("write verse index: %v", err)
	}
	idx, _, err := index.NewLoader(lexPath, versePath).Acquire(context.Background(), nil)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	return idx
}

func TestSuggestNearMiss(t *testing.T) {
	s := NewSuggester(buildTestIndex(t), translit.DefaultChain(), 5)

	got := s.Suggest("salaam")
	if len(got) == 0 || got[0] != "salam" {
		t.Errorf("Suggest(salaam) = %v, want salam first", got)
	}
}

func TestSuggestExactTermExcluded(t *testing.T) {
	s := NewSuggester(buildTestIndex(t), translit.DefaultChain(), 5)

	for _, term := range s.Suggest("salam") {
		if term == "salam" {
			t.Error("exact term suggested for itself")
		}
	}
}

func TestSuggestDistanceBudget(t *testing.T) {
	s := NewSuggester(buildTestIndex(t), translit.DefaultChain(), 5)

	if got := s.Suggest("completely unrelated"); len(got) != 0 {
		t.Errorf("Suggest(far query) = %v, want none", got)
	}
}

func TestSuggestEmptyQuery(t *testing.T) {
	s := NewSuggester(buildTestIndex(t), translit.DefaultChain(), 5)

	if got := s.Suggest("   "); got != nil {
		t.Errorf("Suggest(blank) = %v, want nil", got)
	}
}

func TestSuggestLimit(t *testing.T) {
	s := NewSuggester(buildTestIndex(t), translit.DefaultChain(), 1)
	s.terms = []string{"salam", "salan", "salat"}

	if got := s.Suggest("salax"); len(got) > 1 {
		t.Errorf("Suggest = %v, want at most one", got)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"salam", "salam", 0},
		{"salam", "salaam", 1},
		{"henok", "henoch", 1},
		{"kitten", "sitting", 3},
		{"", "abc", 3},
	}
	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
