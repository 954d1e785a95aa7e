package cover

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/yyyoichi/stegano_zero/fault"
	"github.com/yyyoichi/stegano_zero/internal/capacity"
)

const (
	zeroWidthSpace     = '\u200B' // 00
	zeroWidthNonJoiner = '\u200C' // 01
	zeroWidthJoiner    = '\u200D' // 10
	wordJoiner         = '\u2060' // 11
)

var symbols = [4]rune{zeroWidthSpace, zeroWidthNonJoiner, zeroWidthJoiner, wordJoiner}

func zeroWidthSlots(cover string) int {
	return capacity.ZeroWidth(utf8.RuneCountInString(cover))
}

// embedZeroWidth follows each cover rune with one zero-width symbol
// carrying two bits until bits are exhausted. An odd stream is padded
// with a single 0.
func embedZeroWidth(cover string, bits []bool) (string, error) {
	if strings.ContainsFunc(cover, isSymbol) {
		return "", fault.New(fault.KindUnsupportedCarrierFormat).
			Detail("cover text already contains zero-width characters").
			Build()
	}
	if len(bits)%2 != 0 {
		bits = append(slices.Clone(bits), false)
	}
	need := len(bits) / 2
	if have := zeroWidthSlots(cover); need > have {
		return "", insufficient(need, have, "characters")
	}
	var b strings.Builder
	b.Grow(len(cover) + need*3)
	i := 0
	for _, r := range cover {
		b.WriteRune(r)
		if i < need {
			var sym int
			if bits[2*i] {
				sym |= 2
			}
			if bits[2*i+1] {
				sym |= 1
			}
			b.WriteRune(symbols[sym])
			i++
		}
	}
	return b.String(), nil
}

func isSymbol(r rune) bool {
	return slices.Contains(symbols[:], r)
}

// extractZeroWidth maps every alphabet rune in text back to its two bits,
// ignoring all other runes.
func extractZeroWidth(text string) []bool {
	var bits []bool
	for _, r := range text {
		sym := slices.Index(symbols[:], r)
		if sym < 0 {
			continue
		}
		bits = append(bits, sym&2 != 0, sym&1 != 0)
	}
	return bits
}
