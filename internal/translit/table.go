// Package translit maps Ge'ez (Ethiopic) code points to Latin syllables using
// a fixed consonant-row by vowel-order table, and computes the traditional
// letter values (gematria) of words. All tables are built once at process
// start and never mutated.
package translit

// Ethiopic script ranges, inclusive: the main block, the Supplement, and
// Extended. Only the main block carries syllable-table entries; the other two
// still classify as Ethiopic and transliterate to the placeholder.
const (
	EthiopicLo rune = 0x1200
	EthiopicHi rune = 0x137F

	EthiopicSupplementLo rune = 0x1380
	EthiopicSupplementHi rune = 0x139F

	EthiopicExtendedLo rune = 0x2D80
	EthiopicExtendedHi rune = 0x2DDF
)

// Placeholder marks an Ethiopic character with no table entry.
const Placeholder = "?"

// consonantRow is one row of the Fidel syllabary: the first-order code point
// and the Latin consonant shared by all eight orders of the row.
type consonantRow struct {
	base  rune
	latin string
}

var consonantRows = []consonantRow{
	{0x1200, "h"},   // Hoy
	{0x1208, "l"},   // Lawi
	{0x1210, "hh"},  // Hawt
	{0x1218, "m"},   // May
	{0x1220, "sz"},  // Sawt
	{0x1228, "r"},   // Ris
	{0x1230, "s"},   // Sat
	{0x1238, "sh"},  // Sha
	{0x1240, "q"},   // Qaf
	{0x1248, "qw"},  // Qaf, labialized row
	{0x1250, "qh"},  // Qha
	{0x1258, "qhw"}, // Qha, labialized row
	{0x1260, "b"},   // Bet
	{0x1268, "v"},   // Vav
	{0x1270, "t"},   // Taw
	{0x1278, "ch"},  // Cha
	{0x1280, "x"},   // Harm
	{0x1288, "xw"},  // Harm, labialized row
	{0x1290, "n"},   // Nahas
	{0x1298, "ny"},  // Nya
	{0x12A0, "a"},   // Alf
	{0x12A8, "k"},   // Kaf
	{0x12B0, "kw"},  // Kaf, labialized row
	{0x12B8, "kx"},  // Kxa
	{0x12C0, "kxw"}, // Kxa, labialized row
	{0x12C8, "w"},   // Waw
	{0x12D0, "aa"},  // Ayn
	{0x12D8, "z"},   // Zay
	{0x12E0, "zh"},  // Zha
	{0x12E8, "y"},   // Yaman
	{0x12F0, "d"},   // Dint
	{0x12F8, "dd"},  // Dda
	{0x1300, "j"},   // Ja
	{0x1308, "g"},   // Gaml
	{0x1310, "gw"},  // Gaml, labialized row
	{0x1318, "gg"},  // Gga
	{0x1320, "th"},  // Tayt
	{0x1328, "thh"}, // Thha
	{0x1330, "ph"},  // Payt
	{0x1338, "ts"},  // Saday
	{0x1340, "tz"},  // Dappa
	{0x1348, "f"},   // Af
	{0x1350, "p"},   // Psa
}

// vowelSuffixes are the syllable suffixes for vowel orders 0..6. Order 5
// (sades) is the bare consonant. The eighth slot of each row is the
// labialized form, suffix "wa".
var vowelSuffixes = [7]string{"a", "u", "i", "a", "e", "", "o"}

const labializedSuffix = "wa"

var table = buildTable()

func buildTable() map[rune]string {
	m := make(map[rune]string, len(consonantRows)*8)
	for _, row := range consonantRows {
		for order := 0; order < len(vowelSuffixes); order++ {
			m[row.base+rune(order)] = row.latin + vowelSuffixes[order]
		}
		m[row.base+7] = row.latin + labializedSuffix
	}
	return m
}
