// Package models defines core data structures for lexicon entries, verses, queries, and results.
package models

// LetterAnalysis describes one Fidel character of a word: its traditional name,
// letter value, and pictographic meaning.
type LetterAnalysis struct {
	Char    string `json:"char"`
	Name    string `json:"name"`
	Value   int    `json:"value"`
	Meaning string `json:"meaning,omitempty"`
}

// TimelineStage is one step in a word's historical development.
type TimelineStage struct {
	Period string `json:"period"`
	Form   string `json:"form"`
	Note   string `json:"note,omitempty"`
}

// LexiconEntry is the annotation record for one Ge'ez word. Entries are never
// mutated after index construction.
type LexiconEntry struct {
	Geez              string           `json:"geez,omitempty"`
	Definition        string           `json:"definition"`
	EnglishDefinition string           `json:"english_definition,omitempty"`
	Transliteration   string           `json:"transliteration,omitempty"`
	Root              string           `json:"root,omitempty"`
	PartOfSpeech      string           `json:"part_of_speech,omitempty"`
	Gematria          int              `json:"gematria,omitempty"`
	DigitalRoot       int              `json:"digital_root,omitempty"`
	Frequency         int              `json:"frequency,omitempty"`
	FirstOccurrence   string           `json:"first_occurrence,omitempty"`
	Source            string           `json:"source,omitempty"`
	Pictographic      string           `json:"pictographic,omitempty"`
	Letters           []LetterAnalysis `json:"letters,omitempty"`
	Timeline          []TimelineStage  `json:"timeline,omitempty"`
}
