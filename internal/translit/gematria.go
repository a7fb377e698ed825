package translit

// gematriaRow is a contiguous run of code points sharing a letter value. All
// vowel orders of a consonant carry the same value; variant and labialized
// rows share the value of their base row.
type gematriaRow struct {
	start rune
	count int
	value int
}

var gematriaRows = []gematriaRow{
	{0x1200, 7, 1},   // Hoy
	{0x1208, 7, 2},   // Lawi
	{0x1210, 7, 3},   // Hawt
	{0x1218, 7, 4},   // May
	{0x1220, 7, 5},   // Sawt
	{0x1228, 7, 6},   // Ris
	{0x1230, 7, 7},   // Sat
	{0x1238, 7, 7},   // Sha
	{0x1240, 7, 9},   // Qaf
	{0x1248, 5, 9},   // Qaf labialized
	{0x1250, 7, 9},   // Qha
	{0x1258, 5, 9},   // Qha labialized
	{0x1260, 7, 10},  // Bet
	{0x1268, 7, 10},  // Vav
	{0x1270, 7, 20},  // Taw
	{0x1278, 7, 20},  // Cha
	{0x1280, 7, 30},  // Harm
	{0x1288, 5, 30},  // Harm labialized
	{0x1290, 7, 40},  // Nahas
	{0x1298, 7, 40},  // Nya
	{0x12A0, 7, 50},  // Alf
	{0x12A8, 7, 60},  // Kaf
	{0x12B0, 5, 60},  // Kaf labialized
	{0x12B8, 7, 60},  // Kxa
	{0x12C0, 5, 60},  // Kxa labialized
	{0x12C8, 7, 70},  // Waw
	{0x12D0, 7, 80},  // Ayn
	{0x12D8, 7, 90},  // Zay
	{0x12E0, 7, 90},  // Zha
	{0x12E8, 7, 100}, // Yaman
	{0x12F0, 7, 200}, // Dint
	{0x12F8, 7, 200}, // Dda
	{0x1300, 7, 200}, // Ja
	{0x1308, 7, 300}, // Gaml
	{0x1310, 5, 300}, // Gaml labialized
	{0x1318, 7, 300}, // Gga
	{0x1320, 7, 400}, // Tayt
	{0x1328, 7, 400}, // Thha
	{0x1330, 7, 500}, // Payt
	{0x1338, 7, 600}, // Saday
	{0x1340, 7, 700}, // Dappa
	{0x1348, 7, 800}, // Af
	{0x1350, 7, 900}, // Psa
}

var gematriaTable = buildGematriaTable()

func buildGematriaTable() map[rune]int {
	m := make(map[rune]int)
	for _, row := range gematriaRows {
		for i := 0; i < row.count; i++ {
			m[row.start+rune(i)] = row.value
		}
	}
	return m
}

// Value returns the letter value of a single character, 0 when it has none.
func Value(r rune) int {
	return gematriaTable[r]
}

// WordValue sums the letter values of word. Characters without a value
// contribute nothing.
func WordValue(word string) int {
	total := 0
	for _, r := range word {
		total += gematriaTable[r]
	}
	return total
}

// DigitalRoot reduces n to a single digit by repeated digit sums.
func DigitalRoot(n int) int {
	for n > 9 {
		sum := 0
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}
	return n
}
