package frame

import (
	"math"

	"github.com/yyyoichi/stegano_zero/fault"
	"github.com/yyyoichi/stegano_zero/internal/bitconv"
	"github.com/yyyoichi/stegano_zero/internal/capacity"
)

const (
	headerMagic = 0x5A3C
	magicBits   = 16
	lengthBits  = 32
	headerBits  = magicBits + lengthBits
)

var _ Framer = LengthPrefix{}

// LengthPrefix frames a message as a 16-bit magic, a 32-bit big-endian byte
// count and the payload. Any byte values are allowed in the payload.
type LengthPrefix struct{}

func (LengthPrefix) Frame(msg []byte) ([]bool, error) {
	if err := checkEmpty(msg); err != nil {
		return nil, err
	}
	if uint64(len(msg)) > math.MaxUint32 {
		return nil, fault.New(fault.KindCapacityExceeded).
			Detail("message of %d bytes exceeds the 32-bit length field", len(msg)).
			Build()
	}
	bits := header(len(msg))
	return append(bits, bitconv.BytesToBools(msg)...), nil
}

func (LengthPrefix) Unframe(bits []bool) ([]byte, error) {
	n, err := parseHeader(bits)
	if err != nil {
		return nil, err
	}
	payload := bits[headerBits:]
	if n*8 > len(payload) {
		return nil, fault.New(fault.KindTruncatedPayload).
			Detail("header declares %d bytes, %d bits remain", n, len(payload)).
			Build()
	}
	return bitconv.BoolsToBytes(payload[:n*8]), nil
}

func (LengthPrefix) FramedLen(msgLen int) int {
	return headerBits + msgLen*8
}

func (l LengthPrefix) Capacity(totalBits int) int {
	return capacity.Fit(totalBits, l.FramedLen)
}

func header(n int) []bool {
	bits := bitconv.UintToBools(headerMagic, magicBits)
	return append(bits, bitconv.UintToBools(uint64(n), lengthBits)...)
}

func parseHeader(bits []bool) (int, error) {
	if len(bits) < headerBits || bitconv.BoolsToUint(bits[:magicBits]) != headerMagic {
		return 0, fault.New(fault.KindDelimiterNotFound).
			Detail("no frame header in %d bits", len(bits)).
			Build()
	}
	n := int(bitconv.BoolsToUint(bits[magicBits:headerBits]))
	if n == 0 {
		return 0, fault.New(fault.KindDelimiterNotFound).Detail("frame header declares no payload").Build()
	}
	return n, nil
}
