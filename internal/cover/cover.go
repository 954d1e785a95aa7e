// Package cover is the text carrier. Two independent sub-protocols hide
// bits in plain text: the width of inter-word gaps, or zero-width runes
// placed after cover characters.
package cover

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yyyoichi/stegano_zero/fault"
)

var ErrUnknownMethod = errors.New("unknown text method")

// Method selects a text sub-protocol.
type Method int

const (
	// Auto tries Whitespace then ZeroWidth when extracting.
	// Embedding with Auto uses Whitespace.
	Auto Method = iota
	Whitespace
	ZeroWidth
)

func (m Method) String() string {
	switch m {
	case Auto:
		return "auto"
	case Whitespace:
		return "whitespace"
	case ZeroWidth:
		return "zero_width"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod accepts "auto", "whitespace" and "zero_width".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "whitespace":
		return Whitespace, nil
	case "zero_width", "zero-width", "zerowidth":
		return ZeroWidth, nil
	}
	return Auto, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Embed hides bits in cover with method m. Auto embeds with Whitespace.
func Embed(m Method, cover string, bits []bool) (string, error) {
	if strings.TrimSpace(cover) == "" {
		return "", fault.New(fault.KindInsufficientCoverCapacity).
			Detail("cover text is empty").Build()
	}
	if m == ZeroWidth {
		return embedZeroWidth(cover, bits)
	}
	return embedWhitespace(cover, bits)
}

// Extract reads every bit method m can find in text. Auto is not accepted
// here; callers try each concrete method in turn.
func Extract(m Method, text string) []bool {
	if m == ZeroWidth {
		return extractZeroWidth(text)
	}
	return extractWhitespace(text)
}

// Slots returns how many bits cover can carry with method m.
func Slots(m Method, cover string) int {
	if strings.TrimSpace(cover) == "" {
		return 0
	}
	if m == ZeroWidth {
		return zeroWidthSlots(cover) * 2
	}
	return whitespaceSlots(cover)
}

// Changed counts the slots whose text differs between cover and out:
// rewritten gaps for Whitespace, inserted symbols for ZeroWidth.
func Changed(m Method, cover, out string) int {
	if m == ZeroWidth {
		return len(extractZeroWidth(out))/2 - len(extractZeroWidth(cover))/2
	}
	a, b := gaps(cover), gaps(out)
	var n int
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}

func insufficient(need, have int, unit string) error {
	return fault.New(fault.KindInsufficientCoverCapacity).
		Detail("message too long for cover text: need %d %s, have %d", need, unit, have).
		Build()
}
