package stegano_test

import (
	"context"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stegano "github.com/yyyoichi/stegano_zero"
	"github.com/yyyoichi/stegano_zero/internal/pcm"
)

func writePNG(t *testing.T, dir string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, "cover.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func writeWAV(t *testing.T, dir string, c *stegano.Audio) string {
	t.Helper()
	path := filepath.Join(dir, "cover.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, pcm.Encode(f, c))
	return path
}

func writeText(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestMediumOf(t *testing.T) {
	test := []struct {
		path string
		want stegano.Medium
	}{
		{"a.png", stegano.MediumImage},
		{"a.JPG", stegano.MediumImage},
		{"a.jpeg", stegano.MediumImage},
		{"a.bmp", stegano.MediumImage},
		{"a.tif", stegano.MediumImage},
		{"a.webp", stegano.MediumImage},
		{"dir/a.wav", stegano.MediumAudio},
		{"a.WAVE", stegano.MediumAudio},
		{"a.txt", stegano.MediumText},
		{"README.md", stegano.MediumText},
	}
	for _, tt := range test {
		got, err := stegano.MediumOf(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	for _, path := range []string{"a.gif", "a.mp3", "noext", "a.png.bak"} {
		_, err := stegano.MediumOf(path)
		assert.ErrorIs(t, err, stegano.ErrUnsupportedCarrierFormat, path)
	}

	_, err := stegano.MediumOf("clip.gif")
	assert.Contains(t, err.Error(), `unsupported file format ".gif"`)
}

func TestMessageSource(t *testing.T) {
	dir := t.TempDir()

	msg, err := stegano.Literal("hi").Resolve()
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), msg)

	path := writeText(t, dir, "msg.bin", "\x00\x01binary")
	msg, err = stegano.FromFile(path).Resolve()
	require.NoError(t, err)
	assert.Equal(t, []byte("\x00\x01binary"), msg)

	_, err = stegano.MessageSource{Text: "a", File: path}.Resolve()
	assert.ErrorIs(t, err, stegano.ErrMessageSourceConflict)

	_, err = stegano.MessageSource{}.Resolve()
	assert.ErrorIs(t, err, stegano.ErrEmptyMessage)

	_, err = stegano.FromFile(writeText(t, dir, "empty.txt", "")).Resolve()
	assert.ErrorIs(t, err, stegano.ErrEmptyMessage)

	_, err = stegano.FromFile(filepath.Join(dir, "missing")).Resolve()
	assert.ErrorIs(t, err, stegano.ErrCarrierIO)
}

func TestEncodeImage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	in := writePNG(t, dir, solid(10, 10))
	original, err := os.ReadFile(in)
	require.NoError(t, err)

	n, err := stegano.Capacity(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 35, n)

	t.Run("round trip", func(t *testing.T) {
		for _, ext := range []string{".png", ".bmp", ".tiff"} {
			out := filepath.Join(dir, "out"+ext)
			msg := strings.Repeat("z", 35)
			rep, err := stegano.Encode(ctx, in, out, stegano.Literal(msg))
			require.NoError(t, err, ext)
			assert.Equal(t, stegano.MediumImage, rep.Medium)
			assert.Equal(t, "lsb", rep.Method)
			assert.Equal(t, 35, rep.MessageBytes)
			assert.Equal(t, 35, rep.Capacity)
			assert.Equal(t, 300, rep.CarrierUnits)
			assert.Equal(t, 35*8+16, rep.FramedBits)
			assert.LessOrEqual(t, rep.ChangedUnits, rep.FramedBits)
			assert.Greater(t, rep.PSNR, 40.0)
			assert.LessOrEqual(t, rep.MeanAbsDelta, 1.0)
			assert.Greater(t, rep.LumaPSNR, 40.0)

			res, err := stegano.Decode(ctx, out)
			require.NoError(t, err, ext)
			assert.Equal(t, msg, string(res.Message))
			assert.Equal(t, stegano.MediumImage, res.Medium)
		}
	})

	t.Run("over capacity leaves nothing behind", func(t *testing.T) {
		sub := t.TempDir()
		out := filepath.Join(sub, "out.png")
		_, err := stegano.Encode(ctx, in, out, stegano.Literal(strings.Repeat("z", 36)))
		assert.ErrorIs(t, err, stegano.ErrCapacityExceeded)
		entries, err := os.ReadDir(sub)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("input untouched", func(t *testing.T) {
		after, err := os.ReadFile(in)
		require.NoError(t, err)
		assert.Equal(t, original, after)
	})

	t.Run("no message", func(t *testing.T) {
		_, err := stegano.Decode(ctx, in)
		assert.ErrorIs(t, err, stegano.ErrDelimiterNotFound)
	})

	t.Run("same path", func(t *testing.T) {
		_, err := stegano.Encode(ctx, in, in, stegano.Literal("a"))
		assert.ErrorIs(t, err, stegano.ErrOutputIO)
		_, err = stegano.Encode(ctx, in, filepath.Join(dir, ".", "cover.png"), stegano.Literal("a"))
		assert.ErrorIs(t, err, stegano.ErrOutputIO)
	})

	t.Run("medium mismatch", func(t *testing.T) {
		_, err := stegano.Encode(ctx, in, filepath.Join(dir, "out.wav"), stegano.Literal("a"))
		assert.ErrorIs(t, err, stegano.ErrUnsupportedCarrierFormat)
	})

	t.Run("lossy output", func(t *testing.T) {
		out := filepath.Join(dir, "out.jpg")
		_, err := stegano.Encode(ctx, in, out, stegano.Literal("a"))
		assert.ErrorIs(t, err, stegano.ErrUnsupportedCarrierFormat)
		assert.NoFileExists(t, out)

		rep, err := stegano.Encode(ctx, in, out, stegano.Literal("a"), stegano.WithLossyOutput(95))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", rep.Format)
		assert.FileExists(t, out)

		_, err = stegano.Encode(ctx, in, filepath.Join(dir, "out.webp"), stegano.Literal("a"), stegano.WithLossyOutput(95))
		assert.ErrorIs(t, err, stegano.ErrUnsupportedCarrierFormat)
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := stegano.Encode(ctx, filepath.Join(dir, "missing.png"), filepath.Join(dir, "o.png"), stegano.Literal("a"))
		assert.ErrorIs(t, err, stegano.ErrCarrierIO)
	})

	t.Run("not an image", func(t *testing.T) {
		bad := writeText(t, dir, "bad.png", "not a png")
		_, err := stegano.Decode(ctx, bad)
		assert.ErrorIs(t, err, stegano.ErrUnsupportedCarrierFormat)
	})

	t.Run("source conflict", func(t *testing.T) {
		_, err := stegano.Encode(ctx, in, filepath.Join(dir, "o.png"), stegano.MessageSource{Text: "a", File: in})
		assert.ErrorIs(t, err, stegano.ErrMessageSourceConflict)
	})
}

func TestEncodeAudio(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	in := writeWAV(t, dir, silence(1000, 1, 2))

	n, err := stegano.Capacity(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 123, n)

	out := filepath.Join(dir, "out.wav")
	rep, err := stegano.Encode(ctx, in, out, stegano.Literal("HELLO"))
	require.NoError(t, err)
	assert.Equal(t, stegano.MediumAudio, rep.Medium)
	assert.Equal(t, "wav", rep.Format)
	assert.Equal(t, 1000, rep.CarrierUnits)
	assert.False(t, math.IsInf(rep.PSNR, 1))

	res, err := stegano.Decode(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", string(res.Message))
	assert.Equal(t, "lsb", res.Method)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	clip, err := pcm.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 2, clip.SampleWidth)
	assert.Equal(t, 1, clip.Channels)
	assert.Equal(t, 8000, clip.FrameRate)
	assert.Equal(t, 1000, clip.Frames())
}

func TestEncodeText(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	coverText := strings.TrimSpace(strings.Repeat("lorem ipsum dolor sit amet ", 10))
	in := writeText(t, dir, "cover.txt", coverText)

	n, err := stegano.Capacity(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = stegano.Capacity(ctx, in, stegano.WithTextMethod(stegano.TextZeroWidth))
	require.NoError(t, err)
	assert.Equal(t, len(coverText)*2/8-2, n)

	test := []struct {
		name   string
		method stegano.TextMethod
		out    string
	}{
		{"whitespace", stegano.TextWhitespace, "ws.txt"},
		{"zero width", stegano.TextZeroWidth, "zw.md"},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.out)
			rep, err := stegano.Encode(ctx, in, out, stegano.Literal("ok"), stegano.WithTextMethod(tt.method))
			require.NoError(t, err)
			assert.Equal(t, stegano.MediumText, rep.Medium)
			assert.Equal(t, tt.method.String(), rep.Method)
			assert.Positive(t, rep.ChangedUnits)
			assert.LessOrEqual(t, rep.ChangedUnits, rep.FramedBits)

			res, err := stegano.Decode(ctx, out)
			require.NoError(t, err)
			assert.Equal(t, "ok", string(res.Message))
			assert.Equal(t, tt.method.String(), res.Method)
		})
	}

	t.Run("cover too short", func(t *testing.T) {
		short := writeText(t, dir, "short.txt", strings.Repeat("word ", 19)+"word")
		_, err := stegano.Encode(ctx, short, filepath.Join(dir, "o.txt"), stegano.Literal("A"))
		assert.ErrorIs(t, err, stegano.ErrInsufficientCoverCapacity)
		assert.NoFileExists(t, filepath.Join(dir, "o.txt"))
	})
}
