// Package index builds the immutable in-memory search index and manages the
// per-session load lifecycle: sources are acquired at most once per session,
// consulting the local cache before fetching, and a load failure degrades to
// an unavailable index rather than a fatal error.
package index

import (
	"errors"

	"github.com/metsehaf/fidel/internal/models"
)

// Stats mirrors the counters of the verse-index document.
type Stats struct {
	VerseCount   int `json:"verse_count"`
	WordCount    int `json:"word_count"`
	ChapterCount int `json:"chapter_count"`
}

// SearchIndex aggregates the lexicon and verse data for one session. It is
// read-only after Build, so concurrent readers need no locking.
type SearchIndex struct {
	words     []string // lexicon keys in source order
	entries   map[string]*models.LexiconEntry
	verses    []models.VerseRecord
	locations map[string][]string // word -> verse refs, in verse order
	stats     Stats
}

// Build aggregates the two source documents into a SearchIndex. Validation is
// shape-only: an absent or empty source is a DataLoadError. Lexicon words
// missing from the verse text, and verse words missing from the lexicon, are
// both tolerated.
func Build(lexicon *OrderedLexicon, doc *models.VerseIndexDocument) (*SearchIndex, error) {
	if lexicon == nil || lexicon.Len() == 0 {
		return nil, &models.DataLoadError{Source: "lexicon", Err: errors.New("empty or missing lexicon")}
	}
	if doc == nil || len(doc.Verses) == 0 {
		return nil, &models.DataLoadError{Source: "verse index", Err: errors.New("empty or missing verse index")}
	}

	idx := &SearchIndex{
		words:     lexicon.Words(),
		entries:   lexicon.Entries(),
		verses:    doc.Verses,
		locations: make(map[string][]string),
		stats: Stats{
			VerseCount:   doc.VerseCount,
			WordCount:    doc.WordCount,
			ChapterCount: doc.ChapterCount,
		},
	}
	if idx.stats.VerseCount == 0 {
		idx.stats.VerseCount = len(doc.Verses)
	}

	for _, v := range doc.Verses {
		seen := make(map[string]bool, len(v.Words))
		for _, w := range v.Words {
			if seen[w] {
				continue // one ref per verse, however often the word recurs in it
			}
			seen[w] = true
			idx.locations[w] = append(idx.locations[w], v.Ref)
		}
	}
	return idx, nil
}

// Words returns the lexicon keys in source order.
func (idx *SearchIndex) Words() []string { return idx.words }

// Entry returns the lexicon entry for word, or nil.
func (idx *SearchIndex) Entry(word string) *models.LexiconEntry { return idx.entries[word] }

// Verses returns the verse records in source order.
func (idx *SearchIndex) Verses() []models.VerseRecord { return idx.verses }

// Locations returns the refs of every verse containing word. Words absent
// from the verse text yield an empty slice, never an error.
func (idx *SearchIndex) Locations(word string) []string { return idx.locations[word] }

// Stats returns the index counters.
func (idx *SearchIndex) Stats() Stats { return idx.stats }
