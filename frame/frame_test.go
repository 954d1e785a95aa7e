package frame

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/stegano_zero/fault"
	"github.com/yyyoichi/stegano_zero/internal/bitconv"
)

func TestFramerRoundTrip(t *testing.T) {
	framers := []struct {
		name string
		f    Framer
	}{
		{"sentinel", Default()},
		{"length", LengthPrefix{}},
		{"golay", NewGolay(DefaultShuffleSeed)},
	}
	messages := [][]byte{
		[]byte("a"),
		[]byte("HELLO"),
		[]byte("TEST_MARK"),
		[]byte("こんにちはHello"),
		[]byte("The quick brown fox jumps over the lazy dog."),
	}
	for _, ff := range framers {
		t.Run(ff.name, func(t *testing.T) {
			for _, msg := range messages {
				bits, err := ff.f.Frame(msg)
				require.NoError(t, err)
				assert.Len(t, bits, ff.f.FramedLen(len(msg)))

				got, err := ff.f.Unframe(bits)
				require.NoError(t, err)
				assert.Equal(t, msg, got)

				// trailing carrier bits after the frame are ignored
				tail := append(append([]bool{}, bits...), false, true, true, false, true, false, false, true)
				got, err = ff.f.Unframe(tail)
				require.NoError(t, err)
				assert.Equal(t, msg, got)
			}

			_, err := ff.f.Frame(nil)
			assert.True(t, errors.Is(err, fault.ErrEmptyMessage))

			_, err = ff.f.Unframe(make([]bool, 256))
			assert.True(t, errors.Is(err, fault.ErrDelimiterNotFound), "got %v", err)

			_, err = ff.f.Unframe(nil)
			assert.True(t, errors.Is(err, fault.ErrDelimiterNotFound), "got %v", err)
		})
	}
}

func TestFramerCapacity(t *testing.T) {
	framers := []Framer{Default(), LengthPrefix{}, NewGolay(7)}
	for _, f := range framers {
		for _, total := range []int{0, 15, 16, 100, 300, 1000, 4096} {
			n := f.Capacity(total)
			assert.GreaterOrEqual(t, n, 0)
			if n > 0 {
				assert.LessOrEqual(t, f.FramedLen(n), total)
			}
			assert.Greater(t, f.FramedLen(n+1), total)
		}
	}
	assert.Equal(t, 35, Default().Capacity(300))
	assert.Equal(t, 123, Default().Capacity(1000))
}

func TestSentinel(t *testing.T) {
	t.Run("frame layout", func(t *testing.T) {
		bits, err := Default().Frame([]byte("A"))
		require.NoError(t, err)
		want, _ := bitconv.Parse("01000001" + DefaultDelimiter)
		assert.Equal(t, want, bits)
		assert.Len(t, bits, 24)
	})

	t.Run("first occurrence wins", func(t *testing.T) {
		// 0xFF 0xFE spells the delimiter inside the payload
		bits, err := Default().Frame([]byte{'o', 'k', 0xFF, 0xFE, 'x'})
		require.NoError(t, err)
		got, err := Default().Unframe(bits)
		require.NoError(t, err)
		assert.Equal(t, []byte("ok"), got)
	})

	t.Run("truncated payload", func(t *testing.T) {
		bits, _ := bitconv.Parse("0100" + DefaultDelimiter)
		_, err := Default().Unframe(bits)
		assert.True(t, errors.Is(err, fault.ErrTruncatedPayload), "got %v", err)
	})

	t.Run("delimiter at start", func(t *testing.T) {
		bits, _ := bitconv.Parse(DefaultDelimiter + "01000001")
		got, err := Default().Unframe(bits)
		assert.True(t, errors.Is(err, fault.ErrDelimiterNotFound), "got %v", err)
		assert.Nil(t, got)
	})

	t.Run("custom delimiter", func(t *testing.T) {
		s, err := NewSentinel("00000000")
		require.NoError(t, err)
		assert.Equal(t, "00000000", s.Delimiter())
		bits, err := s.Frame([]byte("hi"))
		require.NoError(t, err)
		assert.Len(t, bits, 24)
		got, err := s.Unframe(bits)
		require.NoError(t, err)
		assert.Equal(t, []byte("hi"), got)
		assert.Equal(t, 10, s.Capacity(88))
	})

	t.Run("invalid delimiter", func(t *testing.T) {
		for _, p := range []string{"", "10201", "abc"} {
			_, err := NewSentinel(p)
			assert.True(t, errors.Is(err, ErrInvalidDelimiter), "pattern %q", p)
		}
	})
}

func TestLengthPrefix(t *testing.T) {
	t.Run("binary payload with delimiter pattern", func(t *testing.T) {
		msg := []byte{'o', 'k', 0xFF, 0xFE, 0x00, 'x'}
		bits, err := LengthPrefix{}.Frame(msg)
		require.NoError(t, err)
		got, err := LengthPrefix{}.Unframe(bits)
		require.NoError(t, err)
		assert.Equal(t, msg, got)
	})

	t.Run("truncated", func(t *testing.T) {
		bits, err := LengthPrefix{}.Frame([]byte("HELLO"))
		require.NoError(t, err)
		_, err = LengthPrefix{}.Unframe(bits[:len(bits)-1])
		assert.True(t, errors.Is(err, fault.ErrTruncatedPayload), "got %v", err)
	})

	t.Run("zero length header", func(t *testing.T) {
		_, err := LengthPrefix{}.Unframe(header(0))
		assert.True(t, errors.Is(err, fault.ErrDelimiterNotFound), "got %v", err)
	})
}
