package frame

import (
	"errors"
	"fmt"

	"github.com/yyyoichi/stegano_zero/fault"
	"github.com/yyyoichi/stegano_zero/internal/bitconv"
	"github.com/yyyoichi/stegano_zero/internal/capacity"
)

// DefaultDelimiter terminates every frame produced by Default.
const DefaultDelimiter = "1111111111111110"

// ErrInvalidDelimiter is returned by NewSentinel for an empty or non-binary pattern.
var ErrInvalidDelimiter = errors.New("invalid delimiter")

var _ Framer = (*Sentinel)(nil)

// Sentinel terminates the message bits with a fixed delimiter pattern.
//
// Unframe stops at the first occurrence of the delimiter at any bit offset.
// A payload whose own bits contain the pattern is therefore cut short; with
// the default delimiter this needs fifteen consecutive one bits, which
// 7-bit ASCII text cannot produce. Use LengthPrefix for arbitrary binary data.
type Sentinel struct {
	delimiter []bool
}

// NewSentinel returns a framer terminated by pattern, a string of '0' and
// '1' characters.
func NewSentinel(pattern string) (*Sentinel, error) {
	bits, ok := bitconv.Parse(pattern)
	if !ok || len(bits) == 0 {
		return nil, fmt.Errorf("%w: %q must be a non-empty string of 0 and 1", ErrInvalidDelimiter, pattern)
	}
	return &Sentinel{delimiter: bits}, nil
}

func (s *Sentinel) Frame(msg []byte) ([]bool, error) {
	if err := checkEmpty(msg); err != nil {
		return nil, err
	}
	bits := bitconv.BytesToBools(msg)
	return append(bits, s.delimiter...), nil
}

func (s *Sentinel) Unframe(bits []bool) ([]byte, error) {
	at := bitconv.Index(bits, s.delimiter)
	if at < 0 {
		return nil, fault.New(fault.KindDelimiterNotFound).
			Detail("no delimiter in %d bits", len(bits)).
			Build()
	}
	if at == 0 {
		return nil, fault.New(fault.KindDelimiterNotFound).
			Detail("empty payload before delimiter").
			Build()
	}
	if at%8 != 0 {
		return nil, fault.New(fault.KindTruncatedPayload).
			Detail("%d payload bits before delimiter is not a multiple of 8", at).
			Build()
	}
	return bitconv.BoolsToBytes(bits[:at]), nil
}

func (s *Sentinel) FramedLen(msgLen int) int {
	return msgLen*8 + len(s.delimiter)
}

// Capacity equals floor(totalBits/8) - 2 for a 16-bit delimiter.
func (s *Sentinel) Capacity(totalBits int) int {
	if len(s.delimiter) == 8*capacity.DelimiterBytes {
		return capacity.Of(totalBits, 1)
	}
	return capacity.Fit(totalBits, s.FramedLen)
}

// Delimiter returns the delimiter as a string of '0' and '1'.
func (s *Sentinel) Delimiter() string {
	b := make([]byte, len(s.delimiter))
	for i, bit := range s.delimiter {
		b[i] = '0'
		if bit {
			b[i] = '1'
		}
	}
	return string(b)
}
