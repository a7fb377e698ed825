// Package utils provides shared utilities for text and logging.
package utils

// TruncateRunes returns s truncated to maxRunes runes, with "..." appended if
// truncated. Safe for multi-byte text. If maxRunes is 0 or negative, returns
// s unchanged.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}
