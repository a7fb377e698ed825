package models

// VerseRecord is one verse of the text: its "chapter:verse" reference, the
// English translation, and the Ge'ez words in surface order (duplicates kept).
type VerseRecord struct {
	Ref     string   `json:"ref"`
	Chapter int      `json:"chapter,omitempty"`
	Words   []string `json:"words"`
	English string   `json:"english"`
}

// VerseIndexDocument is the shape of the verse-index JSON file produced by the
// builder and consumed by the loader.
type VerseIndexDocument struct {
	Verses       []VerseRecord `json:"verses"`
	VerseCount   int           `json:"verse_count"`
	WordCount    int           `json:"word_count"`
	ChapterCount int           `json:"chapter_count"`
}
