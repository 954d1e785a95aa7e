package cover

import (
	"strings"
	"unicode"

	"github.com/yyyoichi/stegano_zero/internal/capacity"
)

func whitespaceSlots(cover string) int {
	return capacity.Whitespace(len(strings.Fields(cover)))
}

// embedWhitespace rejoins the words of cover, writing one space for a 0 bit
// and two spaces for a 1 bit into each gap. Gaps past the end of bits get a
// single space.
func embedWhitespace(cover string, bits []bool) (string, error) {
	words := strings.Fields(cover)
	if gaps := capacity.Whitespace(len(words)); len(bits) > gaps {
		return "", insufficient(len(bits), gaps, "gaps")
	}
	var b strings.Builder
	for i, w := range words {
		b.WriteString(w)
		if i == len(words)-1 {
			break
		}
		b.WriteByte(' ')
		if i < len(bits) && bits[i] {
			b.WriteByte(' ')
		}
	}
	return b.String(), nil
}

// gaps returns the whitespace runs that separate words in text. Leading
// and trailing runs are not gaps.
func gaps(text string) []string {
	var (
		out   []string
		start = -1
		word  bool
	)
	for i, r := range text {
		if unicode.IsSpace(r) {
			if word && start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, text[start:i])
			start = -1
		}
		word = true
	}
	return out
}

// extractWhitespace classifies every whitespace run: one rune is 0, two
// runes are 1, any other length is skipped.
func extractWhitespace(text string) []bool {
	var (
		bits []bool
		run  int
	)
	flush := func() {
		switch run {
		case 1:
			bits = append(bits, false)
		case 2:
			bits = append(bits, true)
		}
		run = 0
	}
	for _, r := range text {
		if unicode.IsSpace(r) {
			run++
			continue
		}
		flush()
	}
	flush()
	return bits
}
