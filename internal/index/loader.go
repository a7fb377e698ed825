package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/metsehaf/fidel/internal/models"
	"github.com/metsehaf/fidel/internal/storage"
)

// Loader acquires the lexicon and verse-index documents. Sources may be
// filesystem paths or http(s) URLs. When a cache store is configured the
// lexicon is served from it first; fetched copies are written back together
// with the derived timelines supplement. No timeout is imposed on fetches;
// cancellation comes from the caller's context.
type Loader struct {
	lexiconSource string
	verseSource   string
	cache         storage.CacheStore // optional
	client        *http.Client
	logger        *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCache sets the cache store consulted before fetching the lexicon.
func WithCache(c storage.CacheStore) LoaderOption {
	return func(l *Loader) { l.cache = c }
}

// WithLogger sets a logger for load diagnostics.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// WithHTTPClient replaces the HTTP client used for URL sources.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) { l.client = c }
}

// NewLoader creates a loader for the two source documents.
func NewLoader(lexiconSource, verseSource string, opts ...LoaderOption) *Loader {
	l := &Loader{
		lexiconSource: lexiconSource,
		verseSource:   verseSource,
		client:        http.DefaultClient,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Acquire loads both sources and builds the index. onPriority, when non-nil,
// is invoked as soon as the lexicon is in memory, before the verse index is
// acquired. fromCache reports whether the lexicon came from the cache store.
func (l *Loader) Acquire(ctx context.Context, onPriority func()) (idx *SearchIndex, fromCache bool, err error) {
	lexicon, fromCache, err := l.acquireLexicon(ctx)
	if err != nil {
		return nil, false, err
	}
	if onPriority != nil {
		onPriority()
	}

	doc, err := l.acquireVerseIndex(ctx)
	if err != nil {
		return nil, false, err
	}

	idx, err = Build(lexicon, doc)
	if err != nil {
		return nil, false, err
	}
	return idx, fromCache, nil
}

func (l *Loader) acquireLexicon(ctx context.Context) (*OrderedLexicon, bool, error) {
	if l.cache != nil {
		data, err := l.cache.Get(ctx, storage.KeyLexicon)
		switch {
		case err == nil:
			lexicon, decErr := DecodeLexiconBytes(data)
			if decErr == nil {
				if l.logger != nil {
					l.logger.Debug("lexicon served from cache", zap.Int("entries", lexicon.Len()))
				}
				return lexicon, true, nil
			}
			// A corrupt cache entry falls through to a fresh fetch.
			if l.logger != nil {
				l.logger.Warn("cached lexicon unreadable, refetching", zap.Error(decErr))
			}
		case !errors.Is(err, storage.ErrNotFound):
			if l.logger != nil {
				l.logger.Warn("cache lookup failed, fetching", zap.Error(err))
			}
		}
	}

	data, err := l.fetch(ctx, l.lexiconSource)
	if err != nil {
		return nil, false, &models.DataLoadError{Source: "lexicon", Err: err}
	}
	lexicon, err := DecodeLexiconBytes(data)
	if err != nil {
		return nil, false, &models.DataLoadError{Source: "lexicon", Err: err}
	}
	l.writeBack(ctx, lexicon, data)
	return lexicon, false, nil
}

// writeBack stores the fetched lexicon and its derived timelines supplement.
// Cache write failures are logged, never surfaced: the cache is optional.
func (l *Loader) writeBack(ctx context.Context, lexicon *OrderedLexicon, raw []byte) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Put(ctx, storage.KeyLexicon, raw); err != nil {
		if l.logger != nil {
			l.logger.Warn("lexicon cache write failed", zap.Error(err))
		}
		return
	}
	timelines, err := json.Marshal(lexicon.Timelines())
	if err == nil {
		err = l.cache.Put(ctx, storage.KeyTimelines, timelines)
	}
	if err != nil && l.logger != nil {
		l.logger.Warn("timelines cache write failed", zap.Error(err))
	}
}

// invalidateCache drops both cache entries so the next acquisition fetches.
func (l *Loader) invalidateCache(ctx context.Context) {
	if l.cache == nil {
		return
	}
	for _, key := range []string{storage.KeyLexicon, storage.KeyTimelines} {
		if err := l.cache.Delete(ctx, key); err != nil && l.logger != nil {
			l.logger.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func (l *Loader) acquireVerseIndex(ctx context.Context) (*models.VerseIndexDocument, error) {
	data, err := l.fetch(ctx, l.verseSource)
	if err != nil {
		return nil, &models.DataLoadError{Source: "verse index", Err: err}
	}
	var doc models.VerseIndexDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &models.DataLoadError{Source: "verse index", Err: err}
	}
	return &doc, nil
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: status %d", source, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(source)
}
