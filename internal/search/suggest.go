package search

import (
	"sort"
	"strings"

	"github.com/metsehaf/fidel/internal/index"
	"github.com/metsehaf/fidel/internal/translit"
)

// Suggester proposes near-miss transliterations for Latin queries that
// matched nothing, by edit distance over the lexicon's Latin forms.
type Suggester struct {
	maxDistance    int
	maxSuggestions int
	terms          []string // unique lowercase transliterations, source order
}

// NewSuggester collects the transliteration of every lexicon word through the
// provider chain (stored value first, computed fallback).
func NewSuggester(idx *index.SearchIndex, chain translit.Chain, maxSuggestions int) *Suggester {
	seen := make(map[string]bool)
	var terms []string
	for _, word := range idx.Words() {
		t := strings.ToLower(chain.Transliteration(word, idx.Entry(word)))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		terms = append(terms, t)
	}
	if maxSuggestions <= 0 {
		maxSuggestions = 5
	}
	return &Suggester{maxDistance: 2, maxSuggestions: maxSuggestions, terms: terms}
}

// Suggest returns the closest transliterations within the distance budget,
// nearest first. An exact term is never suggested for itself.
func (s *Suggester) Suggest(query string) []string {
	lq := strings.ToLower(strings.TrimSpace(query))
	if lq == "" {
		return nil
	}
	type candidate struct {
		term string
		dist int
	}
	var cands []candidate
	for _, term := range s.terms {
		d := levenshteinDistance(lq, term)
		if d > 0 && d <= s.maxDistance {
			cands = append(cands, candidate{term, d})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	if len(cands) > s.maxSuggestions {
		cands = cands[:s.maxSuggestions]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.term
	}
	return out
}
