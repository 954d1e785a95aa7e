// Package raster is the image carrier: it normalizes decoded images to a
// flat RGB unit sequence and writes modified units back to a container.
package raster

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/yyyoichi/stegano_zero/fault"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	_ "golang.org/x/image/webp"
)

// Format is an image container.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	WebP Format = "webp"
)

var extensions = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
	".webp": WebP,
}

// FormatOf returns the container implied by path's extension.
func FormatOf(path string) (Format, bool) {
	f, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Lossless reports whether re-encoding preserves every channel value.
func (f Format) Lossless() bool {
	switch f {
	case PNG, BMP, TIFF:
		return true
	}
	return false
}

// Writable reports whether Encode supports f.
func (f Format) Writable() bool {
	return f != WebP && f != ""
}

// Decode reads any registered container.
func Decode(r io.Reader) (image.Image, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fault.New(fault.KindUnsupportedCarrierFormat).
			Detail("cannot decode image").Cause(err).Build()
	}
	return img, Format(name), nil
}

// DecodeConfig reads only the geometry of an image.
func DecodeConfig(r io.Reader) (image.Config, Format, error) {
	cfg, name, err := image.DecodeConfig(r)
	if err != nil {
		return image.Config{}, "", fault.New(fault.KindUnsupportedCarrierFormat).
			Detail("cannot decode image header").Cause(err).Build()
	}
	return cfg, Format(name), nil
}

// Encode writes img as f. quality only applies to JPEG.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, nil)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	}
	return fault.New(fault.KindUnsupportedCarrierFormat).
		Detail("cannot write %s images", f).Build()
}
