package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	stegano "github.com/yyyoichi/stegano_zero"
	"github.com/yyyoichi/stegano_zero/frame"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = `Usage:
  stegano encode -in <carrier> -out <file> (-m <message> | -f <message file>) [options]
  stegano decode -in <carrier> [-o <message file>] [options]
  stegano capacity -in <carrier> [options]

Carriers: png jpg jpeg bmp tif tiff webp (image), wav wave (audio), txt md (text).
`

// config holds the flags shared by every command.
type config struct {
	in         string
	framer     string
	seed       int64
	delimiter  string
	textMethod string
	verbose    bool
}

func (c *config) register(fs *flag.FlagSet) {
	fs.StringVar(&c.in, "in", "", "carrier file")
	fs.StringVar(&c.framer, "framer", "sentinel", "message framing: sentinel, length or golay")
	fs.Int64Var(&c.seed, "seed", frame.DefaultShuffleSeed, "payload shuffle seed for -framer golay")
	fs.StringVar(&c.delimiter, "delimiter", frame.DefaultDelimiter, "delimiter bits for -framer sentinel")
	fs.StringVar(&c.textMethod, "text-method", "auto", "text method: auto, whitespace or zero_width")
	fs.BoolVar(&c.verbose, "v", false, "verbose logging")
}

func (c *config) options(logger *zap.Logger) ([]stegano.Option, error) {
	method, err := stegano.ParseTextMethod(c.textMethod)
	if err != nil {
		return nil, err
	}
	opts := []stegano.Option{
		stegano.WithLogger(logger),
		stegano.WithTextMethod(method),
	}
	switch c.framer {
	case "sentinel":
		opts = append(opts, stegano.WithDelimiter(c.delimiter))
	case "length":
		opts = append(opts, stegano.WithFramer(frame.LengthPrefix{}))
	case "golay":
		opts = append(opts, stegano.WithFramer(frame.NewGolay(c.seed)))
	default:
		return nil, fmt.Errorf("unknown framer %q", c.framer)
	}
	return opts, nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	if err := run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			printError(err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string) error {
	var (
		c      config
		fs     = flag.NewFlagSet(cmd, flag.ContinueOnError)
		out    = fs.String("out", "", "output carrier (encode)")
		msg    = fs.String("m", "", "message text (encode)")
		file   = fs.String("f", "", "message file (encode)")
		save   = fs.String("o", "", "write the decoded message to this file instead of stdout (decode)")
		lossyQ = fs.Int("lossy-quality", 0, "allow lossy jpeg output at this quality, 1-100 (encode)")
	)
	c.register(fs)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	switch cmd {
	case "encode", "decode", "capacity":
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.in == "" {
		fs.Usage()
		return errors.New("-in is required")
	}

	logger := newLogger(c.verbose)
	defer logger.Sync()
	opts, err := c.options(logger)
	if err != nil {
		return err
	}

	switch cmd {
	case "encode":
		if *out == "" {
			return errors.New("-out is required")
		}
		if *lossyQ > 0 {
			opts = append(opts, stegano.WithLossyOutput(*lossyQ))
		}
		rep, err := stegano.Encode(ctx, c.in, *out, stegano.MessageSource{Text: *msg, File: *file}, opts...)
		if err != nil {
			return err
		}
		printReport(*out, rep)
	case "decode":
		res, err := stegano.Decode(ctx, c.in, opts...)
		if err != nil {
			return err
		}
		if *save != "" {
			if err := os.WriteFile(*save, res.Message, 0o644); err != nil {
				return err
			}
			printSaved(*save, res)
			return nil
		}
		printMessage(res)
	case "capacity":
		n, err := stegano.Capacity(ctx, c.in, opts...)
		if err != nil {
			return err
		}
		printCapacity(c.in, n)
	}
	return nil
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.TimeKey = ""
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
