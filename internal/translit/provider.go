package translit

import "github.com/metsehaf/fidel/internal/models"

// A Provider resolves the transliteration of a word, returning "" when it has
// nothing to offer.
type Provider interface {
	Transliteration(word string, entry *models.LexiconEntry) string
}

// Stored returns the transliteration recorded in the lexicon entry.
type Stored struct{}

func (Stored) Transliteration(_ string, entry *models.LexiconEntry) string {
	if entry == nil {
		return ""
	}
	return entry.Transliteration
}

// Computed derives the transliteration from the syllabary table.
type Computed struct{}

func (Computed) Transliteration(word string, _ *models.LexiconEntry) string {
	return Word(word)
}

// Chain tries each provider in order; the first non-empty answer wins.
type Chain []Provider

func (c Chain) Transliteration(word string, entry *models.LexiconEntry) string {
	for _, p := range c {
		if t := p.Transliteration(word, entry); t != "" {
			return t
		}
	}
	return ""
}

// DefaultChain prefers the stored value and falls back to the computed form.
func DefaultChain() Chain {
	return Chain{Stored{}, Computed{}}
}
