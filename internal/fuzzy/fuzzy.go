// Package fuzzy provides a typo-tolerant search over the verse translations,
// backed by an in-memory Bleve index. It is only consulted as a retry when
// the exact substring passes return nothing.
package fuzzy

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/metsehaf/fidel/internal/models"
)

// VerseIndex is a Bleve index over the English verse text, keyed by ref.
type VerseIndex struct {
	index bleve.Index
	byRef map[string]models.VerseRecord
}

type verseDoc struct {
	Ref     string `json:"ref"`
	English string `json:"english"`
}

// NewVerseIndex builds an in-memory index over the given verses.
func NewVerseIndex(verses []models.VerseRecord) (*VerseIndex, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer: lowercase + tokenize, no stemming, so fuzzy edit
	// distances apply to the words as written.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("english", textFieldMapping)
	im.DefaultMapping = docMapping

	idx, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create verse index: %w", err)
	}

	batch := idx.NewBatch()
	byRef := make(map[string]models.VerseRecord, len(verses))
	for _, v := range verses {
		byRef[v.Ref] = v
		if err := batch.Index(v.Ref, verseDoc{Ref: v.Ref, English: v.English}); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("failed to index verse %s: %w", v.Ref, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("failed to commit verse batch: %w", err)
	}
	return &VerseIndex{index: idx, byRef: byRef}, nil
}

// Search returns up to limit verses whose translation approximately matches
// query, best score first. fuzziness is the maximum edit distance per term.
func (vi *VerseIndex) Search(ctx context.Context, query string, limit, fuzziness int) ([]models.VerseRecord, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}
	boolean := bleve.NewBooleanQuery()
	for _, term := range terms {
		fq := bleve.NewFuzzyQuery(term)
		fq.SetFuzziness(fuzziness)
		fq.SetField("english")
		boolean.AddShould(fq)
	}
	req := bleve.NewSearchRequestOptions(boolean, limit, 0, false)
	res, err := vi.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fuzzy verse search failed: %w", err)
	}

	out := make([]models.VerseRecord, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if v, ok := vi.byRef[hit.ID]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// Close releases the index.
func (vi *VerseIndex) Close() error {
	return vi.index.Close()
}
