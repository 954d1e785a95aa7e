package stegano

import (
	"path/filepath"
	"strings"

	"github.com/yyyoichi/stegano_zero/fault"
	"github.com/yyyoichi/stegano_zero/internal/cover"
	"github.com/yyyoichi/stegano_zero/internal/raster"
)

// Medium is the kind of carrier a file holds.
type Medium int

const (
	MediumUnknown Medium = iota
	MediumImage
	MediumAudio
	MediumText
)

func (m Medium) String() string {
	switch m {
	case MediumImage:
		return "image"
	case MediumAudio:
		return "audio"
	case MediumText:
		return "text"
	}
	return "unknown"
}

// MediumOf resolves the medium of path from its extension.
// Images: .png .jpg .jpeg .bmp .tif .tiff .webp; audio: .wav .wave;
// text: .txt .md.
func MediumOf(path string) (Medium, error) {
	if _, ok := raster.FormatOf(path); ok {
		return MediumImage, nil
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav", ".wave":
		return MediumAudio, nil
	case ".txt", ".md":
		return MediumText, nil
	default:
		return MediumUnknown, fault.New(fault.KindUnsupportedCarrierFormat).
			Path(path).
			Detail("unsupported file format %q; supported: png, jpeg, bmp, tiff, webp, wav, txt, md", ext).
			Build()
	}
}

// TextMethod selects how bits are hidden in text.
type TextMethod = cover.Method

const (
	TextAuto       = cover.Auto
	TextWhitespace = cover.Whitespace
	TextZeroWidth  = cover.ZeroWidth
)

// ParseTextMethod accepts "auto", "whitespace" and "zero_width".
func ParseTextMethod(s string) (TextMethod, error) {
	return cover.ParseMethod(s)
}
