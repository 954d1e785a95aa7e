package stegano

import (
	"errors"

	"github.com/yyyoichi/stegano_zero/frame"
	"go.uber.org/zap"
)

type Option func(*Stegano) error

// WithFramer replaces the sentinel framer. Encoder and decoder must use
// the same framer.
func WithFramer(f frame.Framer) Option {
	return func(s *Stegano) error {
		if f == nil {
			return errors.New("nil framer")
		}
		s.framer = f
		return nil
	}
}

// WithDelimiter terminates messages with pattern, a string of '0' and '1'
// characters, instead of frame.DefaultDelimiter.
func WithDelimiter(pattern string) Option {
	return func(s *Stegano) error {
		f, err := frame.NewSentinel(pattern)
		if err != nil {
			return err
		}
		s.framer = f
		return nil
	}
}

// WithTextMethod selects the text sub-protocol. TextAuto embeds with
// TextWhitespace and tries both methods when extracting.
func WithTextMethod(m TextMethod) Option {
	return func(s *Stegano) error {
		s.textMethod = m
		return nil
	}
}

// WithLogger sets the logger used to report outcomes. The default discards
// everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Stegano) error {
		if l != nil {
			s.logger = l
		}
		return nil
	}
}

// WithLossyOutput allows writing JPEG output at the given quality.
// Quality outside 1..100 is clamped. A lossy re-encode usually destroys
// the embedded bits, so the message may not survive.
func WithLossyOutput(quality int) Option {
	return func(s *Stegano) error {
		s.lossy = true
		s.quality = min(max(quality, 1), 100)
		return nil
	}
}
