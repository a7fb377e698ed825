// Package cli provides CLI output for fidel.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/metsehaf/fidel/internal/config"
	"github.com/metsehaf/fidel/internal/models"
	"github.com/metsehaf/fidel/pkg/utils"
)

// OutputFormat is the format for query result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact is one line per match, for piping.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteQueryResult writes a query result to w in the given format. display
// controls how definitions are shortened in text output.
func WriteQueryResult(w io.Writer, res *models.QueryResult, format OutputFormat, display *config.DisplayConfig) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case OutputCompact:
		writeCompact(w, res, display)
		return nil
	default:
		writeText(w, res, display)
		return nil
	}
}

func writeText(w io.Writer, res *models.QueryResult, display *config.DisplayConfig) {
	switch res.Status {
	case models.StatusTooShort:
		fmt.Fprintln(w, "Query too short. Keep typing.")
		return
	case models.StatusUnavailable:
		fmt.Fprintln(w, "Search data could not be loaded. Try again later.")
		return
	case models.StatusNoMatch:
		fmt.Fprintf(w, "No results for %q.\n", res.Query)
		if len(res.Suggestions) > 0 {
			fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(res.Suggestions, ", "))
		}
		return
	}

	fmt.Fprintf(w, "\nFound %d results in %dms (%d words, %d verses, %d by letter value)\n\n",
		res.Total, res.QueryTime, res.WordMatchCount, res.VerseMatchCount, len(res.GematriaMatches))
	if res.AutoFuzzy {
		fmt.Fprintln(w, "No exact matches; showing approximate verse matches.")
	}

	if len(res.WordMatches) > 0 {
		fmt.Fprintln(w, "--- Words ---")
		for _, m := range res.WordMatches {
			writeWordMatch(w, m, display)
		}
		if res.WordMatchCount > len(res.WordMatches) {
			fmt.Fprintf(w, "  ... and %d more\n", res.WordMatchCount-len(res.WordMatches))
		}
	}
	if len(res.VerseMatches) > 0 {
		fmt.Fprintln(w, "--- Verses ---")
		for _, m := range res.VerseMatches {
			fmt.Fprintf(w, "  [%s] %s\n", m.Ref, m.Text)
		}
		if res.VerseMatchCount > len(res.VerseMatches) {
			fmt.Fprintf(w, "  ... and %d more\n", res.VerseMatchCount-len(res.VerseMatches))
		}
	}
	if len(res.GematriaMatches) > 0 {
		fmt.Fprintln(w, "--- Letter values ---")
		for _, m := range res.GematriaMatches {
			fmt.Fprintf(w, "  %s = %d (%s)\n", m.Word, m.Entry.Gematria, FormatDefinition(m.Entry.Definition, display))
		}
	}
}

func writeWordMatch(w io.Writer, m *models.WordMatch, display *config.DisplayConfig) {
	def := ""
	if m.Entry != nil {
		def = FormatDefinition(m.Entry.Definition, display)
	}
	fmt.Fprintf(w, "  %s", m.Word)
	if m.Entry != nil && m.Entry.Transliteration != "" {
		fmt.Fprintf(w, " (%s)", m.Entry.Transliteration)
	}
	if def != "" {
		fmt.Fprintf(w, " - %s", def)
	}
	fmt.Fprintf(w, " [%s]", m.MatchedField)
	if len(m.VerseRefs) > 0 {
		fmt.Fprintf(w, " @ %s", strings.Join(m.VerseRefs, ", "))
	}
	fmt.Fprintln(w)
}

func writeCompact(w io.Writer, res *models.QueryResult, display *config.DisplayConfig) {
	for _, m := range res.WordMatches {
		def := ""
		if m.Entry != nil {
			def = FormatDefinition(m.Entry.Definition, display)
		}
		fmt.Fprintf(w, "word\t%s\t%s\n", m.Word, def)
	}
	for _, m := range res.VerseMatches {
		fmt.Fprintf(w, "verse\t%s\t%s\n", m.Ref, m.Text)
	}
	for _, m := range res.GematriaMatches {
		fmt.Fprintf(w, "gematria\t%s\t%d\n", m.Word, m.Entry.Gematria)
	}
}

// FormatDefinition shortens a definition for interlinear display: leading
// particles are dropped, then the text is cut at the configured rune limit.
// A nil display config returns the definition unchanged.
func FormatDefinition(def string, display *config.DisplayConfig) string {
	if display == nil {
		return def
	}
	if display.StripParticlesOrDefault() {
		def = StripParticles(def, display.Particles)
	}
	return utils.TruncateRunes(def, display.DefinitionMaxLen)
}

// StripParticles removes a single leading particle, case-insensitively. The
// particle list carries its trailing space, so "the heaven" becomes "heaven"
// but "theory" is untouched.
func StripParticles(def string, particles []string) string {
	for _, p := range particles {
		if len(def) >= len(p) && strings.EqualFold(def[:len(p)], p) {
			return def[len(p):]
		}
	}
	return def
}
