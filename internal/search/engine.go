// Package search implements the query engine: three exact match passes over
// the in-memory index, verse highlighting, a typo-tolerant verse retry, and
// "did you mean" suggestions for Latin queries that matched nothing.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/metsehaf/fidel/internal/config"
	"github.com/metsehaf/fidel/internal/fuzzy"
	"github.com/metsehaf/fidel/internal/index"
	"github.com/metsehaf/fidel/internal/models"
	"github.com/metsehaf/fidel/internal/translit"
)

// Engine answers queries against a session's index. The fuzzy verse index
// and the suggester are derived from the session index and rebuilt lazily
// whenever the session generation changes.
type Engine struct {
	session *index.Session
	cfg     *config.Config
	chain   translit.Chain
	logger  *zap.Logger

	mu        sync.Mutex
	gen       uint64
	fuzzyIdx  *fuzzy.VerseIndex
	suggester *Suggester
}

// NewEngine creates an engine over the given session.
func NewEngine(session *index.Session, cfg *config.Config, logger *zap.Logger) *Engine {
	return &Engine{
		session: session,
		cfg:     cfg,
		chain:   translit.DefaultChain(),
		logger:  logger,
	}
}

// Close releases the derived fuzzy index.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fuzzyIdx != nil {
		err := e.fuzzyIdx.Close()
		e.fuzzyIdx = nil
		return err
	}
	return nil
}

// Query evaluates a search request. It never returns an error for a
// well-formed query: unavailable data, short input and empty results are all
// reported through the result status.
func (e *Engine) Query(ctx context.Context, q *models.SearchQuery) *models.QueryResult {
	start := time.Now()
	q.Normalize()
	res := &models.QueryResult{Query: q.Query}

	idx, loadErr := e.session.Index()
	if idx == nil {
		res.Status = models.StatusUnavailable
		if e.logger != nil && loadErr != nil {
			e.logger.Warn("query against unavailable index", zap.Error(loadErr))
		}
		return res
	}

	if utf8.RuneCountInString(q.Query) < e.cfg.Search.MinQueryLength {
		res.Status = models.StatusTooShort
		res.QueryTime = time.Since(start).Milliseconds()
		return res
	}

	res.ScriptNative = translit.ContainsEthiopic(q.Query)

	e.matchWords(idx, q.Query, res)
	e.matchVerses(idx, q.Query, res)
	e.matchGematria(idx, q.Query, res)

	res.Total = res.WordMatchCount + res.VerseMatchCount + len(res.GematriaMatches)
	if res.Total == 0 {
		res.Status = models.StatusNoMatch
		if !res.ScriptNative {
			if q.Fuzzy || e.cfg.Search.FuzzyOrDefault() {
				e.fuzzyRetry(ctx, idx, q.Query, res)
			}
			if sg := e.ensureDerived(ctx, idx); sg != nil {
				res.Suggestions = sg.Suggest(q.Query)
			}
		}
		if res.VerseMatchCount > 0 {
			res.Status = models.StatusOK
			res.Total = res.VerseMatchCount
		}
	} else {
		res.Status = models.StatusOK
	}

	res.QueryTime = time.Since(start).Milliseconds()
	if e.logger != nil {
		e.logger.Debug("query evaluated",
			zap.String("query", q.Query),
			zap.String("status", string(res.Status)),
			zap.Int("total", res.Total),
			zap.Int64("ms", res.QueryTime),
		)
	}
	return res
}

// matchWords runs the lexicon pass. Script-native queries match by substring
// of the headword; Latin queries match the entry's Latin fields in priority
// order, and each entry reports only the first field that matched. Results
// keep lexicon source order; the slice is capped but the count is not.
func (e *Engine) matchWords(idx *index.SearchIndex, query string, res *models.QueryResult) {
	limit := e.cfg.Search.WordMatchLimit
	lq := strings.ToLower(query)

	for _, word := range idx.Words() {
		entry := idx.Entry(word)
		var field models.MatchField
		if res.ScriptNative {
			if !strings.Contains(word, query) {
				continue
			}
			field = models.FieldWord
		} else {
			field = e.firstMatchingField(word, entry, lq)
			if field == "" {
				continue
			}
		}
		res.WordMatchCount++
		if len(res.WordMatches) >= limit {
			continue
		}
		res.WordMatches = append(res.WordMatches, &models.WordMatch{
			Word:         word,
			Entry:        entry,
			MatchedField: field,
			VerseRefs:    idx.Locations(word),
			Link:         e.wordLink(idx, word),
		})
	}
}

// firstMatchingField checks the Latin fields in priority order and returns
// the first that contains the lowercased query, or "".
func (e *Engine) firstMatchingField(word string, entry *models.LexiconEntry, lq string) models.MatchField {
	if entry == nil {
		return ""
	}
	if strings.Contains(strings.ToLower(entry.Definition), lq) {
		return models.FieldDefinition
	}
	if strings.Contains(strings.ToLower(entry.EnglishDefinition), lq) {
		return models.FieldEnglishDefinition
	}
	if strings.Contains(strings.ToLower(e.chain.Transliteration(word, entry)), lq) {
		return models.FieldTransliteration
	}
	if strings.Contains(strings.ToLower(entry.Root), lq) {
		return models.FieldRoot
	}
	return ""
}

// matchVerses runs the translation pass. Script-native queries skip it; the
// verse text on this side is English only.
func (e *Engine) matchVerses(idx *index.SearchIndex, query string, res *models.QueryResult) {
	if res.ScriptNative {
		return
	}
	limit := e.cfg.Search.VerseMatchLimit
	lq := strings.ToLower(query)

	for i := range idx.Verses() {
		v := &idx.Verses()[i]
		if !strings.Contains(strings.ToLower(v.English), lq) {
			continue
		}
		res.VerseMatchCount++
		if len(res.VerseMatches) >= limit {
			continue
		}
		escaped, spans, marked := HighlightVerse(v.English, query)
		res.VerseMatches = append(res.VerseMatches, &models.VerseMatch{
			Ref:   v.Ref,
			Text:  escaped,
			Spans: spans,
			HTML:  marked,
			Link:  e.verseLink(v.Ref),
		})
	}
}

// matchGematria runs the letter-value pass for all-digit queries. Entries
// without a recorded value never match; zero is absence, not a value.
func (e *Engine) matchGematria(idx *index.SearchIndex, query string, res *models.QueryResult) {
	if res.ScriptNative || !allDigits(query) {
		return
	}
	n, err := strconv.Atoi(query)
	if err != nil || n <= 0 {
		return
	}
	for _, word := range idx.Words() {
		entry := idx.Entry(word)
		if entry == nil || entry.Gematria == 0 || entry.Gematria != n {
			continue
		}
		res.GematriaMatches = append(res.GematriaMatches, &models.GematriaMatch{
			Word:  word,
			Entry: entry,
		})
	}
}

// fuzzyRetry reruns the verse pass through the typo-tolerant index after the
// exact passes matched nothing. Retried matches carry no highlight spans;
// their terms need not appear verbatim in the text.
func (e *Engine) fuzzyRetry(ctx context.Context, idx *index.SearchIndex, query string, res *models.QueryResult) {
	fi := e.ensureFuzzy(ctx, idx)
	if fi == nil {
		return
	}
	verses, err := fi.Search(ctx, query, e.cfg.Search.VerseMatchLimit, e.cfg.Search.Fuzziness)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("fuzzy retry failed", zap.String("query", query), zap.Error(err))
		}
		return
	}
	if len(verses) == 0 {
		return
	}
	res.AutoFuzzy = true
	res.VerseMatchCount = len(verses)
	for _, v := range verses {
		escaped, _, marked := HighlightVerse(v.English, "")
		res.VerseMatches = append(res.VerseMatches, &models.VerseMatch{
			Ref:  v.Ref,
			Text: escaped,
			HTML: marked,
			Link: e.verseLink(v.Ref),
		})
	}
}

// ensureDerived rebuilds the fuzzy index and the suggester when the session
// generation moved, then returns the suggester.
func (e *Engine) ensureDerived(ctx context.Context, idx *index.SearchIndex) *Suggester {
	e.rebuild(ctx, idx)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.suggester
}

func (e *Engine) ensureFuzzy(ctx context.Context, idx *index.SearchIndex) *fuzzy.VerseIndex {
	e.rebuild(ctx, idx)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fuzzyIdx
}

func (e *Engine) rebuild(_ context.Context, idx *index.SearchIndex) {
	gen := e.session.Generation()
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen == e.gen && e.suggester != nil {
		return
	}
	if e.fuzzyIdx != nil {
		_ = e.fuzzyIdx.Close()
		e.fuzzyIdx = nil
	}
	fi, err := fuzzy.NewVerseIndex(idx.Verses())
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("fuzzy index build failed", zap.Error(err))
		}
	} else {
		e.fuzzyIdx = fi
	}
	e.suggester = NewSuggester(idx, e.chain, e.cfg.Search.MaxSuggestions)
	e.gen = gen
}

// allDigits reports whether s is non-empty and entirely decimal digits.
// Atoi alone is too permissive here: it accepts a leading sign.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// verseLink builds the site anchor for a "chapter:verse" ref.
func (e *Engine) verseLink(ref string) string {
	chapter, verse, ok := strings.Cut(ref, ":")
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s.%s#v%s-%s", chapter, e.cfg.Data.ChapterExt, chapter, verse)
}

// wordLink points at the word's first occurrence in the verse text, if any.
func (e *Engine) wordLink(idx *index.SearchIndex, word string) string {
	refs := idx.Locations(word)
	if len(refs) == 0 {
		return ""
	}
	return e.verseLink(refs[0])
}
