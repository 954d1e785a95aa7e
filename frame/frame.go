// Package frame turns a message into a self-delimiting bitstream and back.
//
// A Framer is the only place that knows where a message ends. Carriers see
// a flat []bool and never inspect it, so framing schemes can be swapped
// without touching image, audio or text code.
package frame

import "github.com/yyyoichi/stegano_zero/fault"

// Framer converts between messages and framed bitstreams.
type Framer interface {
	// Frame expands msg into bits and appends the end-of-message marker.
	// An empty msg fails with fault.ErrEmptyMessage.
	Frame(msg []byte) ([]bool, error)
	// Unframe recovers the message from a bitstream that may continue past
	// the end of the frame. It fails with fault.ErrDelimiterNotFound when no
	// frame is present and fault.ErrTruncatedPayload when one is cut short.
	Unframe(bits []bool) ([]byte, error)
	// FramedLen returns the number of bits Frame produces for msgLen bytes.
	FramedLen(msgLen int) int
	// Capacity returns the largest message length whose frame fits in
	// totalBits.
	Capacity(totalBits int) int
}

// Default returns the sentinel framer with DefaultDelimiter.
func Default() Framer {
	f, _ := NewSentinel(DefaultDelimiter)
	return f
}

func checkEmpty(msg []byte) error {
	if len(msg) == 0 {
		return fault.New(fault.KindEmptyMessage).Detail("message cannot be empty").Build()
	}
	return nil
}
