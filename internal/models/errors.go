package models

import "fmt"

// DataLoadError reports that acquiring or decoding a source document failed.
// It is surfaced once at load time; afterwards every query returns an
// index-unavailable result instead of an error.
type DataLoadError struct {
	Source string // "lexicon" or "verse index"
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }
