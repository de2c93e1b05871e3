package plate

// OCR confuses visually similar glyphs; which side of a pair is right
// depends on whether the position expects a letter or a digit, not on
// the glyph alone.
var (
	toLetter = map[byte]byte{
		'0': 'O', 'O': 'O',
		'1': 'I', 'I': 'I',
		'5': 'S', 'S': 'S',
		'8': 'B', 'B': 'B',
		'2': 'Z', 'Z': 'Z',
	}
	toDigit = map[byte]byte{
		'O': '0', '0': '0',
		'I': '1', '1': '1',
		'S': '5', '5': '5',
		'B': '8', '8': '8',
		'Z': '2', '2': '2',
	}
)

// Correct rewrites confusable glyphs in canonical text toward the
// character class each position of g expects. It is deliberately
// conservative: only glyphs in the confusion table are ever touched,
// and a character that cannot be resolved is left for the validator
// to reject. Text whose length does not match the grammar cannot be
// anchored and passes through unchanged.
func Correct(text string, g Grammar) string {
	if len(text) != g.Len() {
		return text
	}

	out := []byte(text)
	for i := range out {
		if g.literal != nil && g.literal[i] != 0 {
			// Literal marker positions are letters; resolve
			// confusables toward the letter form and let the
			// pattern match decide whether the marker is there.
			if r, ok := toLetter[out[i]]; ok {
				out[i] = r
			}
			continue
		}
		var table map[byte]byte
		switch g.layout[i] {
		case classLetter:
			table = toLetter
		case classDigit:
			table = toDigit
		}
		if r, ok := table[out[i]]; ok {
			out[i] = r
		}
	}
	return string(out)
}
