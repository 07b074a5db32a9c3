// Package codec reads and writes raster files as packed RGB24 buffers.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// BytesPerPixel is the size of one RGB24 pixel.
const BytesPerPixel = 3

// Format names an encoder.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

var (
	// ErrUnsupportedFormat is returned when a path's extension has no encoder.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrBadBuffer is returned when a pixel buffer does not match its dimensions.
	ErrBadBuffer = errors.New("pixel buffer does not match dimensions")
)

// Files is the file-system codec. The zero value is ready to use.
type Files struct {
	// JPEGQuality is used for .jpg/.jpeg output. Zero means 95.
	JPEGQuality int
}

// Decode reads the image at path and converts it to RGB24.
func (Files) Decode(path string) (width, height int, pix []byte, err error) {
	return Decode(path)
}

// Encode writes the RGB24 buffer to path using the format implied by its
// extension.
func (f Files) Encode(path string, width, height int, pix []byte) error {
	return f.encode(path, width, height, pix)
}

// Decode reads the image at path and converts it to RGB24.
func Decode(path string) (width, height int, pix []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("close %s: %v", path, cerr)
		}
	}()
	img, _, err := image.Decode(f)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	width, height, pix = ToRGB24(img)
	if width == 0 || height == 0 {
		return 0, 0, nil, fmt.Errorf("decode %s: empty image", path)
	}
	return width, height, pix, nil
}

// Encode writes the RGB24 buffer to path using the format implied by its
// extension.
func Encode(path string, width, height int, pix []byte) error {
	return Files{}.encode(path, width, height, pix)
}

func (f Files) encode(path string, width, height int, pix []byte) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	img, err := FromRGB24(width, height, pix)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := encodeAs(&buf, img, format, f.JPEGQuality); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return writeFile(path, buf.Bytes())
}

// writeFile replaces path with data through a temporary file in the same
// directory, so a failed write leaves the previous contents in place.
func writeFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	name := tmp.Name()
	fail := func(err error) error {
		if cerr := tmp.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) {
			log.Printf("close %s: %v", name, cerr)
		}
		if rerr := os.Remove(name); rerr != nil {
			log.Printf("remove %s: %v", name, rerr)
		}
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		return fail(fmt.Errorf("write %s: %w", path, err))
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(fmt.Errorf("chmod %s: %w", path, err))
	}
	if err := tmp.Close(); err != nil {
		return fail(fmt.Errorf("close %s: %w", path, err))
	}
	if err := os.Rename(name, path); err != nil {
		return fail(fmt.Errorf("rename %s: %w", path, err))
	}
	return nil
}

func encodeAs(w io.Writer, img image.Image, format Format, quality int) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		if quality <= 0 {
			quality = 95
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case FormatGIF:
		return gif.Encode(w, img, nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// FormatOf returns the encoder for path. A path without an extension is
// written as PNG.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%w: .%s", ErrUnsupportedFormat, ext)
}

// Lossless reports whether format round-trips RGB24 pixels exactly.
func (f Format) Lossless() bool {
	switch f {
	case FormatPNG, FormatBMP, FormatTIFF:
		return true
	}
	return false
}

// ToRGB24 flattens img into a packed row-major RGB buffer. Alpha is dropped
// without premultiplying so fully transparent pixels keep their colour.
func ToRGB24(img image.Image) (width, height int, pix []byte) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	pix = make([]byte, width*height*BytesPerPixel)
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
		b = nrgba.Bounds()
	}
	i := 0
	for y := 0; y < height; y++ {
		row := nrgba.Pix[nrgba.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < width; x++ {
			pix[i] = row[x*4]
			pix[i+1] = row[x*4+1]
			pix[i+2] = row[x*4+2]
			i += BytesPerPixel
		}
	}
	return width, height, pix
}

// FromRGB24 wraps pix as an opaque image without copying it.
func FromRGB24(width, height int, pix []byte) (image.Image, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height*BytesPerPixel {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrBadBuffer, width, height, len(pix))
	}
	return &rgbView{pix: pix, w: width, h: height}, nil
}

type rgbView struct {
	pix  []byte
	w, h int
}

func (v *rgbView) ColorModel() color.Model { return color.RGBAModel }

func (v *rgbView) Bounds() image.Rectangle { return image.Rect(0, 0, v.w, v.h) }

func (v *rgbView) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= v.w || y >= v.h {
		return color.RGBA{}
	}
	i := (y*v.w + x) * BytesPerPixel
	return color.RGBA{v.pix[i], v.pix[i+1], v.pix[i+2], 0xFF}
}

// Opaque lets encoders skip the alpha channel.
func (v *rgbView) Opaque() bool { return true }
