// Package integration exercises the full pipeline: chapter pages to verse
// index, cache-backed loading, and the query engine.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/metsehaf/fidel/internal/builder"
	"github.com/metsehaf/fidel/internal/config"
	"github.com/metsehaf/fidel/internal/index"
	"github.com/metsehaf/fidel/internal/models"
	"github.com/metsehaf/fidel/internal/search"
	"github.com/metsehaf/fidel/internal/storage"
)

const chapterPage = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<body>
  <div class="verse">
    <span class="verse-number">1:1</span>
    <div class="original-text geez" dir="ltr">
      <span class="word" onclick="showWordEvolution('ቃለ')">ቃለ</span>
      <span class="word" onclick="showWordEvolution('ሰላም')">ሰላም</span>
    </div>
    <div class="translation">The words of the blessing of Enoch</div>
  </div>
  <div class="verse">
    <span class="verse-number">1:2</span>
    <div class="original-text geez" dir="ltr">
      <span class="word" onclick="showWordEvolution('ሰላም')">ሰላም</span>
    </div>
    <div class="translation">And he spoke of peace to the righteous</div>
  </div>
</body>
</html>`

const lexiconJSON = `{
	"ቃለ": {"definition": "word, speech", "transliteration": "qala"},
	"ሰላም": {"definition": "peace, greeting", "transliteration": "salam", "gematria": 135}
}`

func TestIntegration_Search(t *testing.T) {
	dir := t.TempDir()

	chaptersDir := filepath.Join(dir, "chapters")
	if err := os.MkdirAll(chaptersDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(chaptersDir, "1.html"), []byte(chapterPage), 0o644); err != nil {
		t.Fatal(err)
	}

	versePath := filepath.Join(dir, "data", "search_index.json")
	if _, err := builder.New(chaptersDir, 1, "html", nil).BuildAndSave(versePath); err != nil {
		t.Fatal(err)
	}

	lexPath := filepath.Join(dir, "words.json")
	if err := os.WriteFile(lexPath, []byte(lexiconJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cache, err := storage.NewSQLiteCache(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	var cfg config.Config
	config.ApplyDefaults(&cfg)

	ctx := context.Background()
	loader := index.NewLoader(lexPath, versePath, index.WithCache(cache))
	session := index.NewSession(loader, nil)
	if err := session.Load(ctx); err != nil {
		t.Fatal(err)
	}

	engine := search.NewEngine(session, &cfg, nil)
	defer engine.Close()

	res := engine.Query(ctx, &models.SearchQuery{Query: "peace"})
	if res.Status != models.StatusOK {
		t.Fatalf("status = %q, want ok", res.Status)
	}
	if res.WordMatchCount != 1 || res.WordMatches[0].Word != "ሰላም" {
		t.Errorf("word matches = %+v", res.WordMatches)
	}
	if res.VerseMatchCount != 1 || res.VerseMatches[0].Ref != "1:2" {
		t.Errorf("verse matches = %+v", res.VerseMatches)
	}

	res = engine.Query(ctx, &models.SearchQuery{Query: "ሰላም"})
	if res.WordMatchCount != 1 {
		t.Fatalf("script-native matches = %d, want 1", res.WordMatchCount)
	}
	refs := res.WordMatches[0].VerseRefs
	if len(refs) != 2 || refs[0] != "1:1" || refs[1] != "1:2" {
		t.Errorf("verse refs = %v, want [1:1 1:2]", refs)
	}

	res = engine.Query(ctx, &models.SearchQuery{Query: "135"})
	if len(res.GematriaMatches) != 1 || res.GematriaMatches[0].Word != "ሰላም" {
		t.Errorf("gematria matches = %+v", res.GematriaMatches)
	}

	// A second session restores the lexicon from the cache.
	session2 := index.NewSession(index.NewLoader(lexPath, versePath, index.WithCache(cache)), nil)
	if err := session2.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if session2.State() != index.StateCached {
		t.Errorf("second session state = %q, want cached", session2.State())
	}
}
