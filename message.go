package stegano

import (
	"os"

	"github.com/yyyoichi/stegano_zero/fault"
)

// MessageSource names where a message comes from: a literal Text or the
// full contents of File. Exactly one must be set.
type MessageSource struct {
	Text string
	File string
}

// Literal returns a source holding msg.
func Literal(msg string) MessageSource {
	return MessageSource{Text: msg}
}

// FromFile returns a source that reads the file at path.
func FromFile(path string) MessageSource {
	return MessageSource{File: path}
}

// Resolve returns the message bytes. Each byte is one 8-bit code unit, so
// UTF-8 text is carried verbatim.
func (m MessageSource) Resolve() ([]byte, error) {
	if m.Text != "" && m.File != "" {
		return nil, fault.New(fault.KindMessageSourceConflict).
			Detail("cannot specify both a message and a message file").Build()
	}
	var msg []byte
	if m.File != "" {
		b, err := os.ReadFile(m.File)
		if err != nil {
			return nil, fault.Wrap(fault.KindCarrierIO, err, m.File)
		}
		msg = b
	} else {
		msg = []byte(m.Text)
	}
	if len(msg) == 0 {
		return nil, fault.New(fault.KindEmptyMessage).Detail("message cannot be empty").Build()
	}
	return msg, nil
}
