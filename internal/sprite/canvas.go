package sprite

import (
	"image"

	"github.com/example/spriteedit/internal/codec"
)

// Codec reads and writes RGB24 buffers. codec.Files is the production
// implementation.
type Codec interface {
	Decode(path string) (width, height int, pix []byte, err error)
	Encode(path string, width, height int, pix []byte) error
}

// DamageFunc is told about every region of the current image that changed
// in place. Replacing the whole image is reported through Generation, not
// through DamageFunc.
type DamageFunc func(r image.Rectangle)

// Canvas owns the image being edited and the file it belongs to. It is not
// safe for concurrent use; the editor touches it from one goroutine only.
type Canvas struct {
	img        *Image
	path       string
	codec      Codec
	onDamage   DamageFunc
	generation uint64
}

// CanvasOption configures a Canvas during creation.
type CanvasOption func(*Canvas)

// WithCodec replaces the file codec.
func WithCodec(c Codec) CanvasOption { return func(cv *Canvas) { cv.codec = c } }

// WithDamageListener registers the dirty-region callback.
func WithDamageListener(fn DamageFunc) CanvasOption {
	return func(cv *Canvas) { cv.onDamage = fn }
}

// WithImage starts the canvas with img already loaded from path.
func WithImage(img *Image, path string) CanvasOption {
	return func(cv *Canvas) {
		cv.img = img
		cv.path = path
		if img != nil {
			cv.generation++
		}
	}
}

// NewCanvas creates an empty canvas.
func NewCanvas(opts ...CanvasOption) *Canvas {
	c := &Canvas{codec: codec.Files{}}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetDamageListener replaces the dirty-region callback.
func (c *Canvas) SetDamageListener(fn DamageFunc) { c.onDamage = fn }

// Load decodes path and replaces the current image with it. On failure the
// current image is left untouched and a *DecodeError is returned.
func (c *Canvas) Load(path string) error {
	w, h, pix, err := c.codec.Decode(path)
	if err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	img, err := FromPixels(w, h, pix)
	if err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	c.Replace(img, path)
	return nil
}

// Save encodes the current image to path. An empty path saves to the file
// the image was loaded from or last saved to.
func (c *Canvas) Save(path string) error {
	if c.img == nil {
		return ErrNoActiveImage
	}
	if path == "" {
		path = c.path
	}
	if path == "" {
		return ErrNoPath
	}
	if err := c.codec.Encode(path, c.img.Width(), c.img.Height(), c.img.Pix); err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	c.path = path
	return nil
}

// Replace swaps in a new image wholesale. path may be empty for images that
// did not come from a file.
func (c *Canvas) Replace(img *Image, path string) {
	c.img = img
	c.path = path
	c.generation++
}

// SetPixel writes col at (x, y) and reports the 1x1 dirty region.
func (c *Canvas) SetPixel(x, y int, col RGB) error {
	if c.img == nil {
		return ErrNoActiveImage
	}
	if !c.img.In(x, y) {
		return ErrOutOfBounds
	}
	c.img.SetRGB(x, y, col)
	if c.onDamage != nil {
		c.onDamage(image.Rect(x, y, x+1, y+1))
	}
	return nil
}

// Pixel returns the colour at (x, y).
func (c *Canvas) Pixel(x, y int) (RGB, error) {
	if c.img == nil {
		return RGB{}, ErrNoActiveImage
	}
	if !c.img.In(x, y) {
		return RGB{}, ErrOutOfBounds
	}
	return c.img.RGBAt(x, y), nil
}

// Image returns the current image or nil.
func (c *Canvas) Image() *Image { return c.img }

// Empty reports whether no image is loaded.
func (c *Canvas) Empty() bool { return c.img == nil }

// Pixels returns the backing RGB24 buffer of the current image.
func (c *Canvas) Pixels() []byte {
	if c.img == nil {
		return nil
	}
	return c.img.Pix
}

// Width returns the current image width or 0.
func (c *Canvas) Width() int {
	if c.img == nil {
		return 0
	}
	return c.img.Width()
}

// Height returns the current image height or 0.
func (c *Canvas) Height() int {
	if c.img == nil {
		return 0
	}
	return c.img.Height()
}

// Size returns the current image dimensions.
func (c *Canvas) Size() image.Point { return image.Pt(c.Width(), c.Height()) }

// Path returns the file the image is associated with.
func (c *Canvas) Path() string { return c.path }

// Generation changes every time the image is replaced wholesale. Renderers
// compare it to decide between a full upload and dirty-region uploads.
func (c *Canvas) Generation() uint64 { return c.generation }
