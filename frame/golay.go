package frame

import (
	"fmt"
	"math/rand"

	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/golay"
	"github.com/yyyoichi/stegano_zero/fault"
	"github.com/yyyoichi/stegano_zero/internal/bitconv"
	"github.com/yyyoichi/stegano_zero/internal/capacity"
)

var (
	DefaultShuffleSeed int64 = 1234567890
)

var _ Framer = (*Golay)(nil)

// Golay is a length-prefixed frame protected by the extended Golay(24,12)
// code. Up to three flipped bits per 24-bit block are corrected.
//
// The header is encoded on its own so it can be read before the payload
// length is known. Payload bits are deterministically shuffled with seed so
// that a burst of damaged units is spread over many blocks.
type Golay struct {
	seed int64
}

// NewGolay returns a Golay framer whose payload permutation is derived
// from seed. Encoder and decoder must use the same seed.
func NewGolay(seed int64) *Golay {
	return &Golay{seed: seed}
}

func (g *Golay) Frame(msg []byte) ([]bool, error) {
	if err := checkEmpty(msg); err != nil {
		return nil, err
	}
	framed, err := LengthPrefix{}.Frame(msg)
	if err != nil {
		return nil, err
	}
	hdr, err := g.encode(framed[:headerBits], false)
	if err != nil {
		return nil, err
	}
	payload, err := g.encode(framed[headerBits:], true)
	if err != nil {
		return nil, err
	}
	return append(hdr, payload...), nil
}

func (g *Golay) Unframe(bits []bool) ([]byte, error) {
	hl := golay.EncodedBits(headerBits)
	if len(bits) < hl {
		return nil, fault.New(fault.KindDelimiterNotFound).
			Detail("no frame header in %d bits", len(bits)).
			Build()
	}
	hdr, err := g.decode(bits[:hl], headerBits, false)
	if err != nil {
		return nil, err
	}
	n, err := parseHeader(hdr)
	if err != nil {
		return nil, err
	}
	pl := golay.EncodedBits(n * 8)
	if rest := len(bits) - hl; pl > rest {
		return nil, fault.New(fault.KindTruncatedPayload).
			Detail("header declares %d bytes needing %d coded bits, %d bits remain", n, pl, rest).
			Build()
	}
	payload, err := g.decode(bits[hl:hl+pl], n*8, true)
	if err != nil {
		return nil, err
	}
	return bitconv.BoolsToBytes(payload), nil
}

func (g *Golay) FramedLen(msgLen int) int {
	return golay.EncodedBits(headerBits) + golay.EncodedBits(msgLen*8)
}

func (g *Golay) Capacity(totalBits int) int {
	return capacity.Fit(totalBits, g.FramedLen)
}

func (g *Golay) encode(bits []bool, shuffle bool) ([]bool, error) {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range bits {
		w.WriteBool(v)
	}
	var encoded []uint64
	enc := golay.NewEncoder(&encoded)
	if err := enc.Encode(w.Data(), w.Bits()); err != nil {
		return nil, fmt.Errorf("golay encode: %w", err)
	}
	encodedLen := enc.Bits()

	index := g.permutation(encodedLen, shuffle)
	r := bitstream.NewBitReader(encoded, 0, 0)
	out := make([]bool, encodedLen)
	for i := range encodedLen {
		out[i], _ = r.ReadBitAt(index[i])
	}
	return out, nil
}

func (g *Golay) decode(data []bool, size int, shuffle bool) ([]bool, error) {
	// reverse shuffle: create same permutation then apply inverse
	index := g.permutation(len(data), shuffle)
	w := bitstream.NewBitWriter[uint64](0, 0)
	for i := range data {
		w.WriteBitAt(index[i], data[i])
	}

	var decoded []uint64
	dec := golay.NewDecoder(w.Data(), w.Bits())
	if err := dec.Decode(&decoded); err != nil {
		return nil, fault.New(fault.KindTruncatedPayload).
			Detail("golay decode of %d bits", len(data)).
			Cause(err).
			Build()
	}

	r := bitstream.NewBitReader(decoded, 0, 0)
	r.SetBits(size)
	out := make([]bool, size)
	for i := range out {
		out[i], _ = r.ReadBitAt(i)
	}
	return out, nil
}

func (g *Golay) permutation(length int, shuffle bool) []int {
	index := make([]int, length)
	for i := range index {
		index[i] = i
	}
	if !shuffle {
		return index
	}
	rd := rand.New(rand.NewSource(g.seed))
	rd.Shuffle(length, func(i, j int) {
		index[i], index[j] = index[j], index[i]
	})
	return index
}
