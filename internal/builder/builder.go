// Package builder produces the verse-index document by scanning the site's
// chapter pages. Each verse block carries a verse-number span, the original
// text with one clickable element per word, and the English translation; the
// builder maps every word to its chapter:verse locations.
package builder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"go.uber.org/zap"

	"github.com/metsehaf/fidel/internal/models"
)

var (
	verseNumberExpr  = xpath.MustCompile(`//span[@class='verse-number']`)
	originalTextExpr = xpath.MustCompile(`.//div[contains(@class,'original-text')]`)
	translationExpr  = xpath.MustCompile(`.//div[@class='translation']`)
	clickableExpr    = xpath.MustCompile(`.//*[@onclick]`)

	wordEvolutionRe = regexp.MustCompile(`showWordEvolution\('([^']+)'\)`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// Builder scans chapter pages and assembles a VerseIndexDocument.
type Builder struct {
	chaptersDir  string
	chapterCount int
	ext          string
	logger       *zap.Logger
}

// New creates a builder over the given chapters directory. ext is the page
// extension without the dot.
func New(chaptersDir string, chapterCount int, ext string, logger *zap.Logger) *Builder {
	return &Builder{
		chaptersDir:  chaptersDir,
		chapterCount: chapterCount,
		ext:          ext,
		logger:       logger,
	}
}

// Build parses every chapter page in order. A missing page is logged and
// skipped; a page that fails to parse is an error.
func (b *Builder) Build() (*models.VerseIndexDocument, error) {
	doc := &models.VerseIndexDocument{ChapterCount: b.chapterCount}
	wordSet := make(map[string]bool)

	for ch := 1; ch <= b.chapterCount; ch++ {
		path := filepath.Join(b.chaptersDir, fmt.Sprintf("%d.%s", ch, b.ext))
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			if b.logger != nil {
				b.logger.Warn("chapter page missing", zap.String("path", path))
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open chapter %d: %w", ch, err)
		}

		page, err := xmlquery.Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse chapter %d: %w", ch, err)
		}

		verses := extractVerses(page, ch)
		doc.Verses = append(doc.Verses, verses...)
		for _, v := range verses {
			for _, w := range v.Words {
				wordSet[w] = true
			}
		}
	}

	doc.VerseCount = len(doc.Verses)
	doc.WordCount = len(wordSet)
	if b.logger != nil {
		b.logger.Info("verse index built",
			zap.Int("verses", doc.VerseCount),
			zap.Int("unique_words", doc.WordCount),
			zap.Int("chapters", doc.ChapterCount),
		)
	}
	return doc, nil
}

// BuildAndSave builds the document and writes it as indented JSON, creating
// the output directory if needed.
func (b *Builder) BuildAndSave(outputPath string) (*models.VerseIndexDocument, error) {
	doc, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode verse index: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write verse index: %w", err)
	}
	return doc, nil
}

// extractVerses walks the verse-number spans of one parsed page. The span's
// parent is the verse block; the original text and translation are located
// within it.
func extractVerses(page *xmlquery.Node, chapter int) []models.VerseRecord {
	var verses []models.VerseRecord
	for _, span := range xmlquery.QuerySelectorAll(page, verseNumberExpr) {
		block := span.Parent
		if block == nil {
			continue
		}
		ref := strings.TrimSpace(span.InnerText())
		if ref == "" {
			continue
		}

		var words []string
		if original := xmlquery.QuerySelector(block, originalTextExpr); original != nil {
			for _, el := range xmlquery.QuerySelectorAll(original, clickableExpr) {
				if m := wordEvolutionRe.FindStringSubmatch(el.SelectAttr("onclick")); m != nil {
					words = append(words, m[1])
				}
			}
		}

		var english string
		if tr := xmlquery.QuerySelector(block, translationExpr); tr != nil {
			english = whitespaceRe.ReplaceAllString(strings.TrimSpace(tr.InnerText()), " ")
		}

		verses = append(verses, models.VerseRecord{
			Ref:     ref,
			Chapter: chapter,
			Words:   words,
			English: english,
		})
	}
	return verses
}
