// Package stegano hides byte messages in the least significant bits of
// images and PCM audio, and in the spacing or zero-width characters of plain
// text.
//
// Every medium shares one framing step. A message is turned into bits,
// terminated by a delimiter (or another frame.Framer), and written one bit
// per carrier unit. Extraction reads every unit back and stops at the first
// delimiter.
package stegano

import (
	"context"
	"image"
	"unicode/utf8"

	"github.com/yyyoichi/stegano_zero/fault"
	"github.com/yyyoichi/stegano_zero/frame"
	"github.com/yyyoichi/stegano_zero/internal/cover"
	"github.com/yyyoichi/stegano_zero/internal/lsb"
	"github.com/yyyoichi/stegano_zero/internal/pcm"
	"github.com/yyyoichi/stegano_zero/internal/raster"
	"go.uber.org/zap"
)

// Audio is a decoded PCM clip with interleaved integer samples.
type Audio = pcm.Clip

// Stegano embeds and extracts messages. It is read-only after New and safe
// for concurrent use.
type Stegano struct {
	framer     frame.Framer
	textMethod TextMethod
	logger     *zap.Logger

	lossy   bool
	quality int
}

// New returns a Stegano configured by opts.
// Without options it frames messages with frame.DefaultDelimiter, hides
// text in whitespace, logs nothing and refuses lossy image output.
func New(opts ...Option) (*Stegano, error) {
	s := new(Stegano)
	if err := s.init(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stegano) init(opts ...Option) error {
	s.framer = frame.Default()
	s.textMethod = TextAuto
	s.logger = zap.NewNop()
	s.quality = 100
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	return nil
}

// Framer returns the framer messages are wrapped with.
func (s *Stegano) Framer() frame.Framer {
	return s.framer
}

// EmbedImage hides msg in the RGB channel LSBs of src and returns a new
// opaque image. src is not modified.
func (s *Stegano) EmbedImage(ctx context.Context, src image.Image, msg []byte) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r := raster.New(src)
	out, err := embedUnits(s.framer, r.Units(), msg)
	if err != nil {
		return nil, err
	}
	return r.Build(out)
}

// ExtractImage reads a message hidden by EmbedImage.
func (s *Stegano) ExtractImage(ctx context.Context, src image.Image) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r := raster.New(src)
	return s.framer.Unframe(lsb.Extract(r.Units()))
}

// EmbedAudio hides msg in the sample LSBs of a and returns a new clip with
// the same parameters.
func (s *Stegano) EmbedAudio(ctx context.Context, a *Audio, msg []byte) (*Audio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := pcm.CheckWidth(a.SampleWidth); err != nil {
		return nil, err
	}
	out, err := embedUnits(s.framer, a.Samples, msg)
	if err != nil {
		return nil, err
	}
	return a.WithSamples(out), nil
}

// ExtractAudio reads a message hidden by EmbedAudio.
func (s *Stegano) ExtractAudio(ctx context.Context, a *Audio) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := pcm.CheckWidth(a.SampleWidth); err != nil {
		return nil, err
	}
	return s.framer.Unframe(lsb.Extract(a.Samples))
}

// EmbedText hides msg in coverText with the configured text method.
//
// TextWhitespace keeps one space for a 0 bit and two for a 1 bit between
// consecutive words. TextZeroWidth inserts one zero-width rune carrying two
// bits after each cover rune and leaves the visible text unchanged.
func (s *Stegano) EmbedText(ctx context.Context, coverText string, msg []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !utf8.ValidString(coverText) {
		return "", fault.New(fault.KindUnsupportedCarrierFormat).
			Detail("cover text is not valid UTF-8").Build()
	}
	bits, err := s.framer.Frame(msg)
	if err != nil {
		return "", err
	}
	return cover.Embed(s.textMethod, coverText, bits)
}

// ExtractText reads a message hidden by EmbedText and reports the method it
// was found with. With TextAuto, whitespace is tried before zero-width.
func (s *Stegano) ExtractText(ctx context.Context, text string) ([]byte, TextMethod, error) {
	if err := ctx.Err(); err != nil {
		return nil, TextAuto, err
	}
	if !utf8.ValidString(text) {
		return nil, TextAuto, fault.New(fault.KindUnsupportedCarrierFormat).
			Detail("text is not valid UTF-8").Build()
	}
	methods := []TextMethod{s.textMethod}
	if s.textMethod == TextAuto {
		methods = []TextMethod{TextWhitespace, TextZeroWidth}
	}
	var err error
	for _, m := range methods {
		var msg []byte
		msg, err = s.framer.Unframe(cover.Extract(m, text))
		if err == nil {
			return msg, m, nil
		}
	}
	return nil, TextAuto, err
}

// embedUnits frames msg and writes it into a copy of units.
func embedUnits[T lsb.Unit](f frame.Framer, units []T, msg []byte) ([]T, error) {
	if err := fitUnits(f, len(units), len(msg)); err != nil {
		return nil, err
	}
	bits, err := f.Frame(msg)
	if err != nil {
		return nil, err
	}
	return lsb.Embed(units, bits)
}

func fitUnits(f frame.Framer, units, msgLen int) error {
	if limit := f.Capacity(units); msgLen > limit {
		return fault.New(fault.KindCapacityExceeded).
			Detail("message of %d bytes exceeds carrier capacity of %d bytes", msgLen, limit).
			Build()
	}
	return nil
}
