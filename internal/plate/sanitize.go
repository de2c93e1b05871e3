package plate

import "strings"

// Sanitize reduces raw OCR output to canonical plate text: trimmed,
// uppercased, restricted to A-Z and 0-9. It never fails; empty input
// yields empty output.
func Sanitize(raw string) string {
	return sanitize(raw, false)
}

// SanitizeKeepHyphens is the variant for pre-formatted input where
// hyphens are meaningful and should survive sanitization.
func SanitizeKeepHyphens(raw string) string {
	return sanitize(raw, true)
}

func sanitize(raw string, keepHyphens bool) string {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(trimmed))
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case keepHyphens && c == '-':
			b.WriteByte(c)
		}
	}
	return b.String()
}
