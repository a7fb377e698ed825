package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/metsehaf/fidel/internal/models"
)

// OrderedLexicon holds lexicon entries with the key order of the source
// document preserved. Result ordering follows source order, and a plain map
// decode would lose it.
type OrderedLexicon struct {
	words   []string
	entries map[string]*models.LexiconEntry
}

// DecodeLexicon reads a lexicon JSON object, keeping keys in document order.
func DecodeLexicon(r io.Reader) (*OrderedLexicon, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("lexicon: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("lexicon: expected JSON object, got %v", tok)
	}

	lex := &OrderedLexicon{entries: make(map[string]*models.LexiconEntry)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("lexicon: %w", err)
		}
		word, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("lexicon: non-string key %v", keyTok)
		}
		var entry models.LexiconEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("lexicon: entry %q: %w", word, err)
		}
		if _, dup := lex.entries[word]; !dup {
			lex.words = append(lex.words, word)
		}
		lex.entries[word] = &entry
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("lexicon: %w", err)
	}
	return lex, nil
}

// DecodeLexiconBytes decodes a lexicon from raw JSON.
func DecodeLexiconBytes(data []byte) (*OrderedLexicon, error) {
	return DecodeLexicon(bytes.NewReader(data))
}

// Len returns the number of entries.
func (l *OrderedLexicon) Len() int { return len(l.words) }

// Words returns the keys in document order.
func (l *OrderedLexicon) Words() []string { return l.words }

// Entries returns the key-to-entry mapping.
func (l *OrderedLexicon) Entries() map[string]*models.LexiconEntry { return l.entries }

// Entry returns the entry for word, or nil.
func (l *OrderedLexicon) Entry(word string) *models.LexiconEntry { return l.entries[word] }

// Timelines derives the timelines supplement: the per-word development stages
// pulled out of the lexicon, as cached alongside it.
func (l *OrderedLexicon) Timelines() map[string][]models.TimelineStage {
	out := make(map[string][]models.TimelineStage)
	for word, entry := range l.entries {
		if len(entry.Timeline) > 0 {
			out[word] = entry.Timeline
		}
	}
	return out
}
