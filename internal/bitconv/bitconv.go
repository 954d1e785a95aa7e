package bitconv

// BytesToBools expands each byte into 8 bits, most significant bit first.
func BytesToBools(b []byte) []bool {
	bits := make([]bool, 0, len(b)*8)
	for _, bb := range b {
		for i := 7; i >= 0; i-- {
			bits = append(bits, ((bb>>uint(i))&1) == 1)
		}
	}
	return bits
}

// BoolsToBytes packs bits MSB-first. A trailing partial byte is zero padded.
func BoolsToBytes(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// UintToBools writes the low n bits of v, most significant first.
func UintToBools(v uint64, n int) []bool {
	bits := make([]bool, n)
	for i := range n {
		bits[i] = (v>>uint(n-1-i))&1 == 1
	}
	return bits
}

// BoolsToUint reads bits as an unsigned integer, most significant first.
func BoolsToUint(bits []bool) uint64 {
	var v uint64
	for _, bit := range bits {
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v
}

// Parse converts a string of '0' and '1' into bits.
// ok is false if any other character appears.
func Parse(s string) (bits []bool, ok bool) {
	bits = make([]bool, len(s))
	for i := range len(s) {
		switch s[i] {
		case '0':
		case '1':
			bits[i] = true
		default:
			return nil, false
		}
	}
	return bits, true
}

// Index returns the first offset at which pattern occurs in bits, at any
// bit alignment, or -1.
func Index(bits, pattern []bool) int {
	if len(pattern) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(pattern) <= len(bits); i++ {
		for j, p := range pattern {
			if bits[i+j] != p {
				continue outer
			}
		}
		return i
	}
	return -1
}
