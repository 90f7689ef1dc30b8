package textutil

import "strings"

var formattingRuneLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0x206A: "⟪ISS⟫",
	0x206B: "⟪ASS⟫",
	0x206C: "⟪IAFS⟫",
	0x206D: "⟪AAFS⟫",
	0x206E: "⟪NADS⟫",
	0x206F: "⟪NODS⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeSource prepares untrusted multi-line text (cell sources) for the
// terminal. Newlines and tabs survive, carriage returns and the bell/backspace
// family are dropped, any other control character becomes '?', and bidi
// formatting runes are made visible.
func SanitizeSource(text string) string {
	for _, r := range text {
		if requiresSanitization(r) {
			return sanitize(text)
		}
	}
	return text
}

func requiresSanitization(r rune) bool {
	if r == '\t' || r == '\n' {
		return false
	}
	if isFormattingRune(r) {
		return true
	}
	return isControl(r)
}

func sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t', r == '\n':
			b.WriteRune(r)
		case isFormattingRune(r):
			b.WriteString(formattingRuneLabels[r])
		case isDroppedControl(r):
		case isControl(r):
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ReplaceFormattingRunes makes bidi formatting characters visible.
// It returns the rewritten string and whether any replacement occurred.
func ReplaceFormattingRunes(text string) (string, bool) {
	if !HasFormattingRunes(text) {
		return text, false
	}
	var b strings.Builder
	for _, r := range text {
		if label, ok := formattingRuneLabels[r]; ok {
			b.WriteString(label)
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), true
}

// HasFormattingRunes reports whether text contains bidi formatting runes.
func HasFormattingRunes(text string) bool {
	for _, r := range text {
		if isFormattingRune(r) {
			return true
		}
	}
	return false
}

func isFormattingRune(r rune) bool {
	_, ok := formattingRuneLabels[r]
	return ok
}

func isControl(r rune) bool {
	return (r >= 0 && r < 0x20) || r == 0x7f || (r >= 0x80 && r < 0xa0)
}

// isDroppedControl covers the characters a terminal would act on without
// printing anything: BEL, BS, VT, FF and CR.
func isDroppedControl(r rune) bool {
	switch r {
	case 0x07, 0x08, 0x0b, 0x0c, '\r':
		return true
	}
	return false
}
