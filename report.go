package stegano

import (
	"fmt"
	"math"
)

// Report describes a completed Encode.
type Report struct {
	Medium Medium
	// Method is "lsb" for images and audio, or the text method used.
	Method string
	// Format is the output container, e.g. "png", "wav" or "txt".
	Format string

	MessageBytes int
	FramedBits   int
	// CarrierUnits is the number of bit slots the carrier offers.
	CarrierUnits int
	// Capacity is the largest message in bytes the carrier could hold.
	Capacity int
	// ChangedUnits counts carrier units whose value differs after embedding.
	// For text it counts gaps whose spacing was rewritten or inserted
	// zero-width runes.
	ChangedUnits int

	// PSNR of the output against the input in dB. +Inf when nothing changed;
	// 0 for text, which has no signal to compare.
	PSNR float64
	// MeanAbsDelta is the mean absolute change per unit. Always 0 for text.
	MeanAbsDelta float64
	// LumaPSNR is PSNR over BT.601 luma; images only.
	LumaPSNR float64
}

func (r *Report) String() string {
	psnr := "n/a"
	switch {
	case math.IsInf(r.PSNR, 1):
		psnr = "inf"
	case r.Medium != MediumText:
		psnr = fmt.Sprintf("%.2f dB", r.PSNR)
	}
	return fmt.Sprintf("%s/%s (%s): %d of %d bytes, %d bits in %d units, %d changed, psnr %s",
		r.Medium, r.Method, r.Format, r.MessageBytes, r.Capacity,
		r.FramedBits, r.CarrierUnits, r.ChangedUnits, psnr)
}

// Result is a message recovered by Decode.
type Result struct {
	Message []byte
	Medium  Medium
	// Method is "lsb" for images and audio, or the text method the message
	// was found with.
	Method string
}

const methodLSB = "lsb"
