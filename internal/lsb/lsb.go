// Package lsb hides one bit in the least significant bit of each carrier unit.
package lsb

import (
	"slices"

	"github.com/yyyoichi/stegano_zero/fault"
)

// Unit is an integer carrier sample. Signed samples are handled through
// their two's-complement bit pattern.
type Unit interface {
	~uint8 | ~uint16 | ~int | ~int8 | ~int16 | ~int32
}

// Set clears bit 0 of u and ORs in bit.
func Set[T Unit](u T, bit bool) T {
	if bit {
		return u | 1
	}
	return u &^ 1
}

// Get reports bit 0 of u.
func Get[T Unit](u T) bool {
	return u&1 == 1
}

// Embed writes bits into the first len(bits) units of a copy of units.
// The input slice is never modified.
func Embed[T Unit](units []T, bits []bool) ([]T, error) {
	if len(bits) > len(units) {
		return nil, fault.New(fault.KindCapacityExceeded).
			Detail("bitstream of %d bits exceeds %d carrier units", len(bits), len(units)).
			Build()
	}
	out := slices.Clone(units)
	for i, bit := range bits {
		out[i] = Set(out[i], bit)
	}
	return out, nil
}

// Extract reads bit 0 of every unit.
func Extract[T Unit](units []T) []bool {
	bits := make([]bool, len(units))
	for i, u := range units {
		bits[i] = Get(u)
	}
	return bits
}

// Changed counts positions whose values differ.
func Changed[T Unit](a, b []T) int {
	var n int
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}
