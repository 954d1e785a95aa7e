package raster

import (
	"fmt"
	"image"
	"slices"

	"golang.org/x/image/draw"
)

// Channels is the number of carrier units per pixel: R, G, B.
const Channels = 3

// Raster is an image normalized to 8-bit RGB and flattened row-major,
// pixel-major, channel-minor.
type Raster struct {
	bounds        image.Rectangle
	width, height int
	area          int

	// R,G,B,R,G,B,...
	units []uint8
}

// New normalizes src to 8-bit RGB and flattens it. Alpha is dropped.
func New(src image.Image) Raster {
	var r Raster
	r.bounds = src.Bounds()
	r.width, r.height = r.bounds.Dx(), r.bounds.Dy()
	r.area = r.width * r.height

	// draw converts any color model, including paletted and gray, to
	// non-premultiplied RGBA.
	nrgba := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(nrgba, nrgba.Bounds(), src, r.bounds.Min, draw.Src)

	r.units = make([]uint8, r.area*Channels)
	idx := 0
	for y := range r.height {
		for x := range r.width {
			off := nrgba.PixOffset(x, y)
			copy(r.units[idx:idx+Channels], nrgba.Pix[off:off+Channels])
			idx += Channels
		}
	}
	return r
}

// Units returns a copy of the flattened channel values.
func (r Raster) Units() []uint8 {
	return slices.Clone(r.units)
}

func (r Raster) Len() int {
	return len(r.units)
}

func (r Raster) Width() int { return r.width }

func (r Raster) Height() int { return r.height }

func (r Raster) Bounds() image.Rectangle { return r.bounds }

// Build reshapes units back into an opaque image with the original bounds.
// It is the exact inverse of New's flattening.
func (r Raster) Build(units []uint8) (image.Image, error) {
	if len(units) != len(r.units) {
		return nil, fmt.Errorf("unit count %d does not match %dx%dx%d raster", len(units), r.width, r.height, Channels)
	}
	var dist = image.NewNRGBA(r.bounds)
	idx := 0
	for y := range r.height {
		for x := range r.width {
			off := dist.PixOffset(r.bounds.Min.X+x, r.bounds.Min.Y+y)
			copy(dist.Pix[off:off+Channels], units[idx:idx+Channels])
			dist.Pix[off+3] = 0xff
			idx += Channels
		}
	}
	return dist, nil
}
