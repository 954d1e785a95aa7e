// Package metric measures how far an embedded carrier drifted from its source.
package metric

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Sample interface {
	~uint8 | ~int
}

// Distortion summarizes the difference between two unit sequences.
type Distortion struct {
	// MSE is the mean squared error.
	MSE float64
	// MeanAbsDelta is the mean absolute difference per unit.
	MeanAbsDelta float64
	// PSNR in dB, +Inf for identical sequences.
	PSNR float64
}

// Compare computes the distortion of modified against original. peak is the
// full-scale value of a unit (255 for 8-bit channels).
// Sequences of different length are compared over their common prefix.
func Compare[T Sample](original, modified []T, peak float64) Distortion {
	n := min(len(original), len(modified))
	return compare(toFloat(original[:n]), toFloat(modified[:n]), peak)
}

// compare consumes a.
func compare(a, b []float64, peak float64) Distortion {
	n := len(a)
	if n == 0 {
		return Distortion{PSNR: math.Inf(1)}
	}

	d := floats.Distance(a, b, 2)
	mse := d * d / float64(n)

	floats.Sub(a, b)
	for i := range a {
		a[i] = math.Abs(a[i])
	}
	dist := Distortion{
		MSE:          mse,
		MeanAbsDelta: stat.Mean(a, nil),
		PSNR:         math.Inf(1),
	}
	if mse > 0 {
		dist.PSNR = 10 * math.Log10(peak*peak/mse)
	}
	return dist
}

// Peak returns the full-scale value of a sample that is width bytes wide.
func Peak(width int) float64 {
	return math.Exp2(float64(8*width)) - 1
}

func toFloat[T Sample](s []T) []float64 {
	f := make([]float64, len(s))
	for i, v := range s {
		f[i] = float64(v)
	}
	return f
}
