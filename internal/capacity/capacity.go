// Package capacity computes how many message bytes a carrier can hold.
package capacity

// DelimiterBytes is the space reserved for the default 16-bit delimiter.
const DelimiterBytes = 2

// Of returns floor(units*bitsPerUnit/8) - DelimiterBytes, clamped at zero.
// Zero means the carrier is unusable.
func Of(units, bitsPerUnit int) int {
	if units <= 0 || bitsPerUnit <= 0 {
		return 0
	}
	return max(units*bitsPerUnit/8-DelimiterBytes, 0)
}

// Whitespace returns the number of 1-bit gap slots between words.
func Whitespace(words int) int {
	return max(words-1, 0)
}

// ZeroWidth returns the number of 2-bit symbol slots in a cover of runes.
func ZeroWidth(runes int) int {
	return max(runes, 0)
}

// Fit returns the largest message length n such that framedLen(n) fits in
// totalBits. framedLen must be non-decreasing.
func Fit(totalBits int, framedLen func(int) int) int {
	if totalBits <= 0 || framedLen(0) > totalBits {
		return 0
	}
	// every frame spends at least 8 bits per byte
	lo, hi := 0, totalBits/8
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if framedLen(mid) <= totalBits {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
