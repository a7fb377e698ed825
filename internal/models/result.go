package models

// ResultStatus classifies a query outcome. Every status is a recoverable,
// local state; the engine returns a QueryResult for any well-formed query.
type ResultStatus string

const (
	// StatusOK means at least one pass matched.
	StatusOK ResultStatus = "ok"
	// StatusTooShort means the trimmed query was under the minimum length.
	// Callers render a hint, not an error.
	StatusTooShort ResultStatus = "too_short"
	// StatusNoMatch means all three passes came up empty.
	StatusNoMatch ResultStatus = "no_match"
	// StatusUnavailable means source acquisition failed earlier in the session.
	StatusUnavailable ResultStatus = "unavailable"
)

// MatchField names the lexicon field a query matched first. A single entry
// reports only its first matching field, in priority order.
type MatchField string

const (
	FieldWord              MatchField = "Word"
	FieldDefinition        MatchField = "Definition"
	FieldEnglishDefinition MatchField = "English Definition"
	FieldTransliteration   MatchField = "Transliteration"
	FieldRoot              MatchField = "Root"
)

// WordMatch is one lexicon hit. VerseRefs lists every verse containing the
// word; it may be empty when the word never appears in the verse text.
type WordMatch struct {
	Word         string        `json:"word"`
	Entry        *LexiconEntry `json:"entry"`
	MatchedField MatchField    `json:"matched_field"`
	VerseRefs    []string      `json:"verse_refs"`
	Link         string        `json:"link,omitempty"`
}

// HighlightSpan is a half-open [Start, End) byte range into escaped verse text.
type HighlightSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// VerseMatch is one verse hit. Text is HTML-escaped source text; Spans mark
// the query occurrences within it, and HTML wraps them in <mark> tags.
type VerseMatch struct {
	Ref   string          `json:"ref"`
	Text  string          `json:"text"`
	Spans []HighlightSpan `json:"spans,omitempty"`
	HTML  string          `json:"html,omitempty"`
	Link  string          `json:"link,omitempty"`
}

// GematriaMatch is one exact letter-value hit. Gematria matches are never capped.
type GematriaMatch struct {
	Word  string        `json:"word"`
	Entry *LexiconEntry `json:"entry"`
}

// QueryResult is the response for a search request. WordMatches and
// VerseMatches may be truncated to the configured caps; the *Count fields
// always carry the true counts, and Total is their sum.
type QueryResult struct {
	Query           string           `json:"query"`
	Status          ResultStatus     `json:"status"`
	ScriptNative    bool             `json:"script_native"`
	WordMatches     []*WordMatch     `json:"word_matches"`
	WordMatchCount  int              `json:"word_match_count"`
	VerseMatches    []*VerseMatch    `json:"verse_matches"`
	VerseMatchCount int              `json:"verse_match_count"`
	GematriaMatches []*GematriaMatch `json:"gematria_matches"`
	Total           int              `json:"total"`
	QueryTime       int64            `json:"query_time_ms"`
	// Suggestions holds "Did you mean?" transliterations when nothing matched.
	Suggestions []string `json:"suggestions,omitempty"`
	// AutoFuzzy indicates the verse matches came from the typo-tolerant retry
	// after the exact passes returned nothing.
	AutoFuzzy bool `json:"auto_fuzzy,omitempty"`
}
