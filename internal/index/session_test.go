package index

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSession_Lifecycle(t *testing.T) {
	lexiconPath, versePath := writeSources(t)
	sess := NewSession(NewLoader(lexiconPath, versePath), nil)

	if sess.State() != StateIdle {
		t.Errorf("initial state = %s, want idle", sess.State())
	}
	if idx, loadErr := sess.Index(); idx != nil || loadErr != nil {
		t.Error("expected no index and no error before Load")
	}

	if err := sess.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if sess.State() != StateFullyLoaded {
		t.Errorf("state after load = %s, want fully_loaded", sess.State())
	}
	idx, loadErr := sess.Index()
	if loadErr != nil || idx == nil {
		t.Fatalf("Index() = %v, %v", idx, loadErr)
	}
	gen := sess.Generation()
	if gen == 0 {
		t.Error("generation not advanced by load")
	}

	// Second load is a no-op.
	if err := sess.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if sess.Generation() != gen {
		t.Error("no-op load advanced the generation")
	}
}

func TestSession_FailureDegradesToUnavailable(t *testing.T) {
	dir := t.TempDir()
	sess := NewSession(NewLoader(filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")), nil)

	if err := sess.Load(context.Background()); err == nil {
		t.Fatal("expected load failure")
	}
	if sess.State() != StateFailed {
		t.Errorf("state = %s, want failed", sess.State())
	}
	idx, loadErr := sess.Index()
	if idx != nil || loadErr == nil {
		t.Errorf("Index() after failure = %v, %v; want nil index and an error", idx, loadErr)
	}
}

func TestSession_RetryAfterFailure(t *testing.T) {
	dir := t.TempDir()
	lexiconPath := filepath.Join(dir, "words.json")
	versePath := filepath.Join(dir, "search_index.json")
	sess := NewSession(NewLoader(lexiconPath, versePath), nil)

	if err := sess.Load(context.Background()); err == nil {
		t.Fatal("expected load failure while sources are missing")
	}

	if err := os.WriteFile(lexiconPath, []byte(sampleLexiconJSON), 0644); err != nil {
		t.Fatal(err)
	}
	doc, _ := json.Marshal(sampleVerseDoc())
	if err := os.WriteFile(versePath, doc, 0644); err != nil {
		t.Fatal(err)
	}

	if err := sess.Load(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if sess.State() != StateFullyLoaded {
		t.Errorf("state = %s, want fully_loaded", sess.State())
	}
}

func TestSession_Reload(t *testing.T) {
	lexiconPath, versePath := writeSources(t)
	sess := NewSession(NewLoader(lexiconPath, versePath), nil)
	if err := sess.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	gen := sess.Generation()

	// Shrink the lexicon on disk; Reload must pick it up.
	if err := os.WriteFile(lexiconPath, []byte(`{"ሰላም": {"definition": "peace"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := sess.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if sess.Generation() != gen+1 {
		t.Errorf("generation = %d, want %d", sess.Generation(), gen+1)
	}
	idx, _ := sess.Index()
	if len(idx.Words()) != 1 {
		t.Errorf("reloaded index has %d words, want 1", len(idx.Words()))
	}
}

func TestSession_UniqueIDs(t *testing.T) {
	a := NewSession(NewLoader("", ""), nil)
	b := NewSession(NewLoader("", ""), nil)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("session ids not unique: %q vs %q", a.ID(), b.ID())
	}
}
