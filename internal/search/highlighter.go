package search

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/metsehaf/fidel/internal/models"
)

// HighlightVerse escapes text for safe embedding and locates every
// case-insensitive occurrence of query in it. The returned spans index into
// the escaped text, and marked wraps each occurrence in <mark> tags. Neither
// output can carry markup from the query or the source text. An empty query
// yields the escaped text with no spans.
func HighlightVerse(text, query string) (escaped string, spans []models.HighlightSpan, marked string) {
	var esc, mk strings.Builder
	pos := 0
	if query != "" {
		for i := 0; i < len(text); {
			n := foldMatchLen(text[i:], query)
			if n < 0 {
				_, size := utf8.DecodeRuneInString(text[i:])
				i += size
				continue
			}

			before := html.EscapeString(text[pos:i])
			esc.WriteString(before)
			mk.WriteString(before)

			seg := html.EscapeString(text[i : i+n])
			spans = append(spans, models.HighlightSpan{Start: esc.Len(), End: esc.Len() + len(seg)})
			esc.WriteString(seg)
			mk.WriteString("<mark>")
			mk.WriteString(seg)
			mk.WriteString("</mark>")

			pos = i + n
			i = pos
		}
	}
	tail := html.EscapeString(text[pos:])
	esc.WriteString(tail)
	mk.WriteString(tail)
	return esc.String(), spans, mk.String()
}

// foldMatchLen returns the byte length of the prefix of s matching query
// case-insensitively, or -1. Comparison is rune by rune, so the returned
// length is always a valid offset into s, even for runes whose case mapping
// changes their encoded width.
func foldMatchLen(s, query string) int {
	n := 0
	for _, qr := range query {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return -1
		}
		if r != qr && unicode.ToLower(r) != unicode.ToLower(qr) {
			return -1
		}
		n += size
	}
	return n
}
