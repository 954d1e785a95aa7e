package stegano

import (
	"context"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/yyyoichi/stegano_zero/fault"
	"github.com/yyyoichi/stegano_zero/internal/cover"
	"github.com/yyyoichi/stegano_zero/internal/lsb"
	"github.com/yyyoichi/stegano_zero/internal/metric"
	"github.com/yyyoichi/stegano_zero/internal/pcm"
	"github.com/yyyoichi/stegano_zero/internal/raster"
	"go.uber.org/zap"
)

// Encode hides the message from src in the carrier file in and writes the
// result to out. This is a convenience function that creates a Stegano
// instance and calls its Encode method.
func Encode(ctx context.Context, in, out string, src MessageSource, opts ...Option) (*Report, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Encode(ctx, in, out, src)
}

// Decode recovers a message from the carrier file in. This is a convenience
// function that creates a Stegano instance and calls its Decode method.
func Decode(ctx context.Context, in string, opts ...Option) (*Result, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Decode(ctx, in)
}

// Capacity returns how many message bytes the carrier file in can hold.
// This is a convenience function that creates a Stegano instance and calls
// its Capacity method.
func Capacity(ctx context.Context, in string, opts ...Option) (int, error) {
	s, err := New(opts...)
	if err != nil {
		return 0, err
	}
	return s.Capacity(ctx, in)
}

// Encode hides the message from src in the carrier file in and writes the
// modified carrier to out. The medium is chosen by extension and out must
// be of the same medium as in. The input file is never written; out is
// created through a temporary file in its directory and only appears once
// fully written.
func (s *Stegano) Encode(ctx context.Context, in, out string, src MessageSource) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	msg, err := src.Resolve()
	if err != nil {
		return nil, err
	}
	medium, err := s.pair(in, out)
	if err != nil {
		return nil, err
	}

	var rep *Report
	switch medium {
	case MediumImage:
		rep, err = s.encodeImage(ctx, in, out, msg)
	case MediumAudio:
		rep, err = s.encodeAudio(ctx, in, out, msg)
	case MediumText:
		rep, err = s.encodeText(ctx, in, out, msg)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Debug("message embedded",
		zap.String("in", in),
		zap.String("out", out),
		zap.Stringer("medium", rep.Medium),
		zap.String("method", rep.Method),
		zap.Int("bytes", rep.MessageBytes),
		zap.Int("capacity", rep.Capacity),
		zap.Int("changed", rep.ChangedUnits),
	)
	return rep, nil
}

// Decode recovers a message from the carrier file in. Every carrier unit is
// read and the message ends at the first delimiter.
func (s *Stegano) Decode(ctx context.Context, in string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	medium, err := MediumOf(in)
	if err != nil {
		return nil, err
	}
	res := &Result{Medium: medium, Method: methodLSB}
	switch medium {
	case MediumImage:
		img, _, err := loadImage(in)
		if err != nil {
			return nil, err
		}
		res.Message, err = s.ExtractImage(ctx, img)
		if err != nil {
			return nil, withPath(err, in)
		}
	case MediumAudio:
		clip, err := loadAudio(in)
		if err != nil {
			return nil, err
		}
		res.Message, err = s.ExtractAudio(ctx, clip)
		if err != nil {
			return nil, withPath(err, in)
		}
	case MediumText:
		text, err := loadText(in)
		if err != nil {
			return nil, err
		}
		var m TextMethod
		res.Message, m, err = s.ExtractText(ctx, text)
		if err != nil {
			return nil, withPath(err, in)
		}
		res.Method = m.String()
	}
	s.logger.Debug("message extracted",
		zap.String("in", in),
		zap.Stringer("medium", medium),
		zap.String("method", res.Method),
		zap.Int("bytes", len(res.Message)),
	)
	return res, nil
}

// Capacity returns the largest message in bytes the carrier file in can
// hold with the configured framer. Images are sized from their header
// alone.
func (s *Stegano) Capacity(ctx context.Context, in string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	medium, err := MediumOf(in)
	if err != nil {
		return 0, err
	}
	switch medium {
	case MediumImage:
		f, err := os.Open(in)
		if err != nil {
			return 0, fault.Wrap(fault.KindCarrierIO, err, in)
		}
		defer f.Close()
		cfg, _, err := raster.DecodeConfig(f)
		if err != nil {
			return 0, withPath(err, in)
		}
		return s.framer.Capacity(cfg.Width * cfg.Height * raster.Channels), nil
	case MediumAudio:
		clip, err := loadAudio(in)
		if err != nil {
			return 0, err
		}
		return s.framer.Capacity(len(clip.Samples)), nil
	default:
		text, err := loadText(in)
		if err != nil {
			return 0, err
		}
		return s.framer.Capacity(cover.Slots(s.textMethod, text)), nil
	}
}

// pair resolves the medium shared by in and out.
func (s *Stegano) pair(in, out string) (Medium, error) {
	medium, err := MediumOf(in)
	if err != nil {
		return MediumUnknown, err
	}
	outMedium, err := MediumOf(out)
	if err != nil {
		return MediumUnknown, err
	}
	if medium != outMedium {
		return MediumUnknown, fault.New(fault.KindUnsupportedCarrierFormat).
			Path(out).
			Detail("output must be %s like the input, got %s", medium, outMedium).
			Build()
	}
	if samePath(in, out) {
		return MediumUnknown, fault.New(fault.KindOutputIO).
			Path(out).
			Detail("output would overwrite the input carrier").
			Build()
	}
	if medium == MediumImage {
		f, _ := raster.FormatOf(out)
		if !f.Writable() {
			return MediumUnknown, fault.New(fault.KindUnsupportedCarrierFormat).
				Path(out).
				Detail("cannot write %s images", f).
				Build()
		}
		if !f.Lossless() && !s.lossy {
			return MediumUnknown, fault.New(fault.KindUnsupportedCarrierFormat).
				Path(out).
				Detail("%s output is lossy and would destroy the message; use a lossless format or enable lossy output", f).
				Build()
		}
	}
	return medium, nil
}

func (s *Stegano) encodeImage(ctx context.Context, in, out string, msg []byte) (*Report, error) {
	img, _, err := loadImage(in)
	if err != nil {
		return nil, err
	}
	r := raster.New(img)
	embedded, err := s.EmbedImage(ctx, img, msg)
	if err != nil {
		return nil, withPath(err, in)
	}
	format, _ := raster.FormatOf(out)
	if !format.Lossless() {
		s.logger.Warn("writing lossy image; the message may not survive",
			zap.String("out", out),
			zap.String("format", string(format)),
			zap.Int("quality", s.quality),
		)
	}
	if err := writeAtomic(out, func(w io.Writer) error {
		return raster.Encode(w, embedded, format, s.quality)
	}); err != nil {
		return nil, err
	}

	before := r.Units()
	after := raster.New(embedded).Units()
	dist := metric.Compare(before, after, metric.Peak(1))
	luma := metric.CompareLuma(before, after)
	return &Report{
		Medium:       MediumImage,
		Method:       methodLSB,
		Format:       string(format),
		MessageBytes: len(msg),
		FramedBits:   s.framer.FramedLen(len(msg)),
		CarrierUnits: r.Len(),
		Capacity:     s.framer.Capacity(r.Len()),
		ChangedUnits: lsb.Changed(before, after),
		PSNR:         dist.PSNR,
		MeanAbsDelta: dist.MeanAbsDelta,
		LumaPSNR:     luma.PSNR,
	}, nil
}

func (s *Stegano) encodeAudio(ctx context.Context, in, out string, msg []byte) (*Report, error) {
	clip, err := loadAudio(in)
	if err != nil {
		return nil, err
	}
	embedded, err := s.EmbedAudio(ctx, clip, msg)
	if err != nil {
		return nil, withPath(err, in)
	}
	if err := writeAtomicSeeker(out, func(w io.WriteSeeker) error {
		return pcm.Encode(w, embedded)
	}); err != nil {
		return nil, err
	}

	dist := metric.Compare(clip.Samples, embedded.Samples, metric.Peak(clip.SampleWidth))
	return &Report{
		Medium:       MediumAudio,
		Method:       methodLSB,
		Format:       extFormat(out),
		MessageBytes: len(msg),
		FramedBits:   s.framer.FramedLen(len(msg)),
		CarrierUnits: len(clip.Samples),
		Capacity:     s.framer.Capacity(len(clip.Samples)),
		ChangedUnits: lsb.Changed(clip.Samples, embedded.Samples),
		PSNR:         dist.PSNR,
		MeanAbsDelta: dist.MeanAbsDelta,
	}, nil
}

func (s *Stegano) encodeText(ctx context.Context, in, out string, msg []byte) (*Report, error) {
	text, err := loadText(in)
	if err != nil {
		return nil, err
	}
	embedded, err := s.EmbedText(ctx, text, msg)
	if err != nil {
		return nil, withPath(err, in)
	}
	if err := writeAtomic(out, func(w io.Writer) error {
		_, err := io.WriteString(w, embedded)
		return err
	}); err != nil {
		return nil, err
	}

	method := s.textMethod
	if method == TextAuto {
		method = TextWhitespace
	}
	slots := cover.Slots(method, text)
	return &Report{
		Medium:       MediumText,
		Method:       method.String(),
		Format:       extFormat(out),
		MessageBytes: len(msg),
		FramedBits:   s.framer.FramedLen(len(msg)),
		CarrierUnits: slots,
		Capacity:     s.framer.Capacity(slots),
		ChangedUnits: cover.Changed(method, text, embedded),
	}, nil
}

func loadImage(path string) (image.Image, raster.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fault.Wrap(fault.KindCarrierIO, err, path)
	}
	defer f.Close()
	img, format, err := raster.Decode(f)
	if err != nil {
		return nil, "", withPath(err, path)
	}
	return img, format, nil
}

func loadAudio(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fault.Wrap(fault.KindCarrierIO, err, path)
	}
	defer f.Close()
	clip, err := pcm.Decode(f)
	if err != nil {
		return nil, withPath(err, path)
	}
	return clip, nil
}

func loadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fault.Wrap(fault.KindCarrierIO, err, path)
	}
	if !utf8.Valid(b) {
		return "", fault.New(fault.KindUnsupportedCarrierFormat).
			Path(path).Detail("text is not valid UTF-8").Build()
	}
	return string(b), nil
}

// writeAtomic writes out through a temporary sibling file and renames it
// into place once write and close both succeed.
func writeAtomic(out string, write func(io.Writer) error) error {
	return writeAtomicSeeker(out, func(w io.WriteSeeker) error { return write(w) })
}

func writeAtomicSeeker(out string, write func(io.WriteSeeker) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(out), "."+filepath.Base(out)+".*.tmp")
	if err != nil {
		return fault.Wrap(fault.KindOutputIO, err, out)
	}
	name := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(name)
		return fault.Wrap(fault.KindOutputIO, err, out)
	}
	if err := write(tmp); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fault.Wrap(fault.KindOutputIO, err, out)
	}
	if err := os.Rename(name, out); err != nil {
		os.Remove(name)
		return fault.Wrap(fault.KindOutputIO, err, out)
	}
	return nil
}

// withPath attaches path to a fault error that has none.
func withPath(err error, path string) error {
	if e, ok := err.(*fault.Error); ok && e.Path == "" {
		c := *e
		c.Path = path
		return &c
	}
	return err
}

func samePath(a, b string) bool {
	if a == b {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return false
	}
	if absA == absB {
		return true
	}
	sa, errA := os.Stat(absA)
	sb, errB := os.Stat(absB)
	return errA == nil && errB == nil && os.SameFile(sa, sb)
}

func extFormat(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
