package translit

import "strings"

// IsEthiopic reports whether r falls in any of the Ethiopic script ranges.
func IsEthiopic(r rune) bool {
	return (r >= EthiopicLo && r <= EthiopicHi) ||
		(r >= EthiopicSupplementLo && r <= EthiopicSupplementHi) ||
		(r >= EthiopicExtendedLo && r <= EthiopicExtendedHi)
}

// ContainsEthiopic reports whether s holds any Ethiopic character. Queries
// with at least one such character are classified as script-native.
func ContainsEthiopic(s string) bool {
	for _, r := range s {
		if IsEthiopic(r) {
			return true
		}
	}
	return false
}

// Char returns the syllable for one code point: the table entry when mapped,
// the placeholder for unmapped Ethiopic characters, and the character itself
// otherwise.
func Char(r rune) string {
	if s, ok := table[r]; ok {
		return s
	}
	if IsEthiopic(r) {
		return Placeholder
	}
	return string(r)
}

// Word transliterates a word character by character. The function is total:
// spaces, punctuation, and digits pass through unchanged, so the result is
// defined for any input string.
func Word(word string) string {
	var b strings.Builder
	for _, r := range word {
		b.WriteString(Char(r))
	}
	return b.String()
}
