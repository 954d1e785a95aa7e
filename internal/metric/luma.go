package metric

// BT.601 luma weights.
const (
	yr = 0.299
	yg = 0.587
	yb = 0.114
)

// Luma converts interleaved R,G,B units to one luma value per pixel.
// A trailing partial pixel is ignored.
func Luma(rgb []uint8) []float64 {
	y := make([]float64, len(rgb)/3)
	for i := range y {
		r, g, b := float64(rgb[3*i]), float64(rgb[3*i+1]), float64(rgb[3*i+2])
		y[i] = yr*r + yg*g + yb*b
	}
	return y
}

// CompareLuma is Compare over the luma of two RGB unit sequences, which
// tracks perceived change more closely than per-channel distortion.
func CompareLuma(original, modified []uint8) Distortion {
	a, b := Luma(original), Luma(modified)
	n := min(len(a), len(b))
	return compare(a[:n], b[:n], 255)
}
