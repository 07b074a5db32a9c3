// Package sprite holds the editable raster: a packed RGB24 image plus the
// canvas that owns it, remembers where it came from and reports which
// regions changed so the renderer can re-upload only those.
package sprite

import (
	"fmt"
	"image"
	"image/color"

	"github.com/example/spriteedit/internal/codec"
)

// RGB is one pixel of the image.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color. RGB pixels are always opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 0xFF}.RGBA()
}

// Image is a row-major RGB24 raster. len(Pix) is always Width*Height*3.
type Image struct {
	width, height int
	Pix           []byte
}

// NewImage allocates a black image.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	return &Image{width: width, height: height, Pix: make([]byte, width*height*codec.BytesPerPixel)}, nil
}

// FromPixels wraps an existing RGB24 buffer. The buffer is not copied.
func FromPixels(width, height int, pix []byte) (*Image, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height*codec.BytesPerPixel {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", codec.ErrBadBuffer, width, height, len(pix))
	}
	return &Image{width: width, height: height, Pix: pix}, nil
}

// FromImage copies any image into a new RGB24 image.
func FromImage(src image.Image) (*Image, error) {
	w, h, pix := codec.ToRGB24(src)
	return FromPixels(w, h, pix)
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.height }

// Size returns the image dimensions as a point.
func (m *Image) Size() image.Point { return image.Pt(m.width, m.height) }

// In reports whether (x, y) addresses a pixel of m.
func (m *Image) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (m *Image) PixOffset(x, y int) int {
	return (y*m.width + x) * codec.BytesPerPixel
}

// RGBAt returns the pixel at (x, y). Out of range coordinates return black.
func (m *Image) RGBAt(x, y int) RGB {
	if !m.In(x, y) {
		return RGB{}
	}
	i := m.PixOffset(x, y)
	return RGB{m.Pix[i], m.Pix[i+1], m.Pix[i+2]}
}

// SetRGB writes a pixel. Out of range coordinates are ignored.
func (m *Image) SetRGB(x, y int, c RGB) {
	if !m.In(x, y) {
		return
	}
	i := m.PixOffset(x, y)
	m.Pix[i] = c.R
	m.Pix[i+1] = c.G
	m.Pix[i+2] = c.B
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.width, m.height) }

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	c := m.RGBAt(x, y)
	return color.RGBA{c.R, c.G, c.B, 0xFF}
}

// Opaque reports that every pixel is fully opaque.
func (m *Image) Opaque() bool { return true }

// CopyToRGBA writes the region r of m into dst at the same coordinates.
// Renderers use it to refresh a staging buffer before a texture upload.
func (m *Image) CopyToRGBA(dst *image.RGBA, r image.Rectangle) {
	r = r.Intersect(m.Bounds()).Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := m.PixOffset(r.Min.X, y)
		d := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Pix[d] = m.Pix[src]
			dst.Pix[d+1] = m.Pix[src+1]
			dst.Pix[d+2] = m.Pix[src+2]
			dst.Pix[d+3] = 0xFF
			src += codec.BytesPerPixel
			d += 4
		}
	}
}
