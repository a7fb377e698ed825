package index

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/metsehaf/fidel/internal/models"
	"github.com/metsehaf/fidel/internal/storage"
)

func writeSources(t *testing.T) (lexiconPath, versePath string) {
	t.Helper()
	dir := t.TempDir()
	lexiconPath = filepath.Join(dir, "words.json")
	versePath = filepath.Join(dir, "search_index.json")
	if err := os.WriteFile(lexiconPath, []byte(sampleLexiconJSON), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := json.Marshal(sampleVerseDoc())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(versePath, doc, 0644); err != nil {
		t.Fatal(err)
	}
	return lexiconPath, versePath
}

func TestLoader_AcquireFromFiles(t *testing.T) {
	lexiconPath, versePath := writeSources(t)
	loader := NewLoader(lexiconPath, versePath)

	priorityCalled := false
	idx, fromCache, err := loader.Acquire(context.Background(), func() { priorityCalled = true })
	if err != nil {
		t.Fatal(err)
	}
	if fromCache {
		t.Error("fromCache = true without a cache store")
	}
	if !priorityCalled {
		t.Error("onPriority was not invoked")
	}
	if len(idx.Words()) != 3 || len(idx.Verses()) != 3 {
		t.Errorf("unexpected index: %d words, %d verses", len(idx.Words()), len(idx.Verses()))
	}
}

func TestLoader_AcquireFromHTTP(t *testing.T) {
	_, versePath := writeSources(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleLexiconJSON))
	}))
	defer srv.Close()

	loader := NewLoader(srv.URL+"/words.json", versePath)
	idx, _, err := loader.Acquire(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.Words()) != 3 {
		t.Errorf("got %d words, want 3", len(idx.Words()))
	}
}

func TestLoader_CacheFirstAndWriteBack(t *testing.T) {
	ctx := context.Background()
	lexiconPath, versePath := writeSources(t)
	cache, err := storage.NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	// First acquisition fetches and writes back both entries.
	loader := NewLoader(lexiconPath, versePath, WithCache(cache))
	_, fromCache, err := loader.Acquire(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if fromCache {
		t.Error("first acquisition reported fromCache")
	}
	if _, err := cache.Get(ctx, storage.KeyLexicon); err != nil {
		t.Errorf("lexicon not written back: %v", err)
	}
	if _, err := cache.Get(ctx, storage.KeyTimelines); err != nil {
		t.Errorf("timelines supplement not written back: %v", err)
	}

	// Second acquisition serves the lexicon from the cache even if the file
	// is gone.
	if err := os.Remove(lexiconPath); err != nil {
		t.Fatal(err)
	}
	_, fromCache, err = loader.Acquire(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !fromCache {
		t.Error("second acquisition did not use the cache")
	}
}

func TestLoader_CorruptCacheFallsBackToFetch(t *testing.T) {
	ctx := context.Background()
	lexiconPath, versePath := writeSources(t)
	cache, err := storage.NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()
	if err := cache.Put(ctx, storage.KeyLexicon, []byte("not json")); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(lexiconPath, versePath, WithCache(cache))
	idx, fromCache, err := loader.Acquire(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if fromCache {
		t.Error("corrupt cache entry should not count as a cache hit")
	}
	if len(idx.Words()) != 3 {
		t.Errorf("got %d words, want 3", len(idx.Words()))
	}
}

func TestLoader_MissingSourceIsDataLoadError(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(filepath.Join(dir, "absent.json"), filepath.Join(dir, "also-absent.json"))
	_, _, err := loader.Acquire(context.Background(), nil)
	var dle *models.DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("err = %v, want DataLoadError", err)
	}
	if dle.Source != "lexicon" {
		t.Errorf("Source = %q, want lexicon", dle.Source)
	}
}

func TestLoader_HTTPErrorStatus(t *testing.T) {
	_, versePath := writeSources(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	loader := NewLoader(srv.URL+"/words.json", versePath)
	_, _, err := loader.Acquire(context.Background(), nil)
	var dle *models.DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("err = %v, want DataLoadError", err)
	}
}
