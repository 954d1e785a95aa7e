// Package pcm is the audio carrier: it loads interleaved integer samples
// from a WAV container and writes them back with identical parameters.
package pcm

import (
	"io"
	"slices"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/yyyoichi/stegano_zero/fault"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Clip is a decoded PCM stream.
type Clip struct {
	// SampleWidth in bytes: 1 (unsigned), 2 or 4 (signed little-endian).
	SampleWidth int
	FrameRate   int
	Channels    int
	// Samples are interleaved by channel in file order.
	Samples []int
}

// Frames returns the number of sample frames.
func (c *Clip) Frames() int {
	if c.Channels < 1 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// WithSamples returns a clip with c's parameters and a copy of samples.
func (c *Clip) WithSamples(samples []int) *Clip {
	return &Clip{
		SampleWidth: c.SampleWidth,
		FrameRate:   c.FrameRate,
		Channels:    c.Channels,
		Samples:     slices.Clone(samples),
	}
}

// CheckWidth accepts 1, 2 and 4 byte samples.
func CheckWidth(width int) error {
	switch width {
	case 1, 2, 4:
		return nil
	}
	return fault.New(fault.KindUnsupportedSampleWidth).
		Detail("unsupported sample width: %d bytes", width).
		Build()
}

// Decode reads a PCM WAV stream.
func Decode(r io.ReadSeeker) (*Clip, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, fault.New(fault.KindUnsupportedCarrierFormat).
			Detail("not a valid WAV file").Cause(d.Err()).Build()
	}
	if d.WavAudioFormat != formatPCM && d.WavAudioFormat != formatExtensible {
		return nil, fault.New(fault.KindUnsupportedCarrierFormat).
			Detail("WAV format tag %#x is not integer PCM", d.WavAudioFormat).Build()
	}
	if d.BitDepth%8 != 0 {
		return nil, fault.New(fault.KindUnsupportedSampleWidth).
			Detail("unsupported bit depth: %d", d.BitDepth).Build()
	}
	width := int(d.BitDepth) / 8
	if err := CheckWidth(width); err != nil {
		return nil, err
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fault.New(fault.KindCarrierIO).
			Detail("read PCM data").Cause(err).Build()
	}
	return &Clip{
		SampleWidth: width,
		FrameRate:   int(d.SampleRate),
		Channels:    int(d.NumChans),
		Samples:     buf.Data,
	}, nil
}

// Encode writes c as a PCM WAV stream.
func Encode(w io.WriteSeeker, c *Clip) error {
	if err := CheckWidth(c.SampleWidth); err != nil {
		return err
	}
	bitDepth := c.SampleWidth * 8
	e := wav.NewEncoder(w, c.FrameRate, bitDepth, c.Channels, formatPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: c.Channels,
			SampleRate:  c.FrameRate,
		},
		Data:           c.Samples,
		SourceBitDepth: bitDepth,
	}
	if err := e.Write(buf); err != nil {
		return err
	}
	return e.Close()
}
