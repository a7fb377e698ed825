package search

import (
	"strings"
	"testing"
)

func TestHighlightVerseBasic(t *testing.T) {
	escaped, spans, marked := HighlightVerse("And the angel showed me peace", "angel")
	if escaped != "And the angel showed me peace" {
		t.Errorf("escaped = %q", escaped)
	}
	if len(spans) != 1 {
		t.Fatalf("spans = %v, want one", spans)
	}
	if got := escaped[spans[0].Start:spans[0].End]; got != "angel" {
		t.Errorf("span text = %q, want angel", got)
	}
	if marked != "And the <mark>angel</mark> showed me peace" {
		t.Errorf("marked = %q", marked)
	}
}

func TestHighlightVerseCaseInsensitive(t *testing.T) {
	escaped, spans, _ := HighlightVerse("Blessed be the LORD", "lord")
	if len(spans) != 1 {
		t.Fatalf("spans = %v, want one", spans)
	}
	if got := escaped[spans[0].Start:spans[0].End]; got != "LORD" {
		t.Errorf("span text = %q, want original casing preserved", got)
	}
}

func TestHighlightVerseMultipleOccurrences(t *testing.T) {
	_, spans, marked := HighlightVerse("day after day after day", "day")
	if len(spans) != 3 {
		t.Errorf("spans = %d, want 3", len(spans))
	}
	if got := strings.Count(marked, "<mark>"); got != 3 {
		t.Errorf("marked occurrences = %d, want 3", got)
	}
}

func TestHighlightVerseEscapesSource(t *testing.T) {
	escaped, spans, marked := HighlightVerse(`he said <script> & "left"`, "script")
	if strings.Contains(escaped, "<script>") {
		t.Errorf("escaped carries raw markup: %q", escaped)
	}
	if !strings.Contains(escaped, "&lt;script&gt;") || !strings.Contains(escaped, "&amp;") {
		t.Errorf("escaped = %q, want entity-escaped text", escaped)
	}
	if len(spans) != 1 {
		t.Fatalf("spans = %v, want one", spans)
	}
	if got := escaped[spans[0].Start:spans[0].End]; got != "script" {
		t.Errorf("span text = %q, want script", got)
	}
	if !strings.Contains(marked, "<mark>script</mark>") {
		t.Errorf("marked = %q", marked)
	}
}

func TestHighlightVerseEmptyQuery(t *testing.T) {
	escaped, spans, marked := HighlightVerse("a <b> verse", "")
	if escaped != "a &lt;b&gt; verse" {
		t.Errorf("escaped = %q", escaped)
	}
	if len(spans) != 0 {
		t.Errorf("spans = %v, want none", spans)
	}
	if marked != escaped {
		t.Errorf("marked = %q, want escaped text unchanged", marked)
	}
}

func TestHighlightVerseWideCaseMapping(t *testing.T) {
	// U+023A lowercases to U+2C65, which is one byte wider; offsets must stay
	// in the original text's coordinate space.
	escaped, spans, marked := HighlightVerse("Ⱥ angel", "angel")
	if len(spans) != 1 {
		t.Fatalf("spans = %v, want one", spans)
	}
	if got := escaped[spans[0].Start:spans[0].End]; got != "angel" {
		t.Errorf("span text = %q, want angel", got)
	}
	if !strings.Contains(marked, "<mark>angel</mark>") {
		t.Errorf("marked = %q", marked)
	}
}

func TestHighlightVerseMultiByteUppercase(t *testing.T) {
	// U+0130 is two bytes; a match after it must not shift.
	escaped, spans, _ := HighlightVerse("İ angel", "angel")
	if len(spans) != 1 {
		t.Fatalf("spans = %v, want one", spans)
	}
	if got := escaped[spans[0].Start:spans[0].End]; got != "angel" {
		t.Errorf("span text = %q, want angel", got)
	}
}

func TestHighlightVerseNoOccurrence(t *testing.T) {
	escaped, spans, marked := HighlightVerse("nothing here", "angel")
	if len(spans) != 0 || escaped != "nothing here" || marked != "nothing here" {
		t.Errorf("got (%q, %v, %q)", escaped, spans, marked)
	}
}
