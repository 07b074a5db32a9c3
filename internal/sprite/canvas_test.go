package sprite

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
)

type fakeCodec struct {
	w, h      int
	pix       []byte
	decodeErr error
	encodeErr error
	encoded   map[string][]byte
}

func (f *fakeCodec) Decode(string) (int, int, []byte, error) {
	if f.decodeErr != nil {
		return 0, 0, nil, f.decodeErr
	}
	pix := make([]byte, len(f.pix))
	copy(pix, f.pix)
	return f.w, f.h, pix, nil
}

func (f *fakeCodec) Encode(path string, _, _ int, pix []byte) error {
	if f.encodeErr != nil {
		return f.encodeErr
	}
	if f.encoded == nil {
		f.encoded = map[string][]byte{}
	}
	f.encoded[path] = append([]byte(nil), pix...)
	return nil
}

func mustImage(t *testing.T, w, h int) *Image {
	t.Helper()
	img, err := NewImage(w, h)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	return img
}

func TestSetPixelWritesOnlyTarget(t *testing.T) {
	img := mustImage(t, 4, 3)
	for i := range img.Pix {
		img.Pix[i] = 0x11
	}
	before := append([]byte(nil), img.Pix...)

	var damage []image.Rectangle
	c := NewCanvas(WithImage(img, ""), WithDamageListener(func(r image.Rectangle) { damage = append(damage, r) }))

	col := RGB{0xAA, 0xBB, 0xCC}
	if err := c.SetPixel(2, 1, col); err != nil {
		t.Fatalf("SetPixel: %v", err)
	}
	got, err := c.Pixel(2, 1)
	if err != nil || got != col {
		t.Fatalf("Pixel = %v, %v; want %v", got, err, col)
	}
	off := 3 * (1*4 + 2)
	for i := range img.Pix {
		if i >= off && i < off+3 {
			continue
		}
		if img.Pix[i] != before[i] {
			t.Fatalf("byte %d changed from %#x to %#x", i, before[i], img.Pix[i])
		}
	}
	if !bytes.Equal(img.Pix[off:off+3], []byte{0xAA, 0xBB, 0xCC}) {
		t.Fatalf("target bytes = %v", img.Pix[off:off+3])
	}
	if len(damage) != 1 || damage[0] != image.Rect(2, 1, 3, 2) {
		t.Fatalf("damage = %v, want single 1x1 rect at (2,1)", damage)
	}
}

func TestSetPixelErrors(t *testing.T) {
	c := NewCanvas()
	if err := c.SetPixel(0, 0, RGB{}); !errors.Is(err, ErrNoActiveImage) {
		t.Fatalf("empty canvas: expected ErrNoActiveImage, got %v", err)
	}
	c.Replace(mustImage(t, 2, 2), "")
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if err := c.SetPixel(p.X, p.Y, RGB{}); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("SetPixel(%v): expected ErrOutOfBounds, got %v", p, err)
		}
		if _, err := c.Pixel(p.X, p.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Pixel(%v): expected ErrOutOfBounds, got %v", p, err)
		}
	}
}

func TestSaveWithoutImage(t *testing.T) {
	c := NewCanvas(WithCodec(&fakeCodec{}))
	if err := c.Save("out.png"); !errors.Is(err, ErrNoActiveImage) {
		t.Fatalf("expected ErrNoActiveImage, got %v", err)
	}
}

func TestSaveDefaultsToRememberedPath(t *testing.T) {
	fc := &fakeCodec{}
	c := NewCanvas(WithCodec(fc), WithImage(mustImage(t, 1, 1), ""))
	if err := c.Save(""); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}
	if err := c.Save("a.png"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := c.SetPixel(0, 0, RGB{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(""); err != nil {
		t.Fatalf("Save to remembered path: %v", err)
	}
	if !bytes.Equal(fc.encoded["a.png"], []byte{1, 2, 3}) {
		t.Fatalf("encoded = %v", fc.encoded["a.png"])
	}
}

func TestLoadFailureKeepsImage(t *testing.T) {
	sentinel := errors.New("corrupt")
	fc := &fakeCodec{decodeErr: sentinel}
	original := mustImage(t, 3, 3)
	c := NewCanvas(WithCodec(fc), WithImage(original, "orig.png"))
	gen := c.Generation()

	err := c.Load("broken.png")
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DecodeError, got %T %v", err, err)
	}
	if !errors.Is(err, sentinel) || derr.Path != "broken.png" {
		t.Fatalf("unexpected error %v", err)
	}
	if c.Image() != original || c.Path() != "orig.png" || c.Generation() != gen {
		t.Fatal("failed load changed canvas state")
	}
}

func TestLoadRejectsMismatchedBuffer(t *testing.T) {
	fc := &fakeCodec{w: 2, h: 2, pix: []byte{1, 2, 3}}
	c := NewCanvas(WithCodec(fc))
	var derr *DecodeError
	if err := c.Load("x.png"); !errors.As(err, &derr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if !c.Empty() {
		t.Fatal("canvas should stay empty")
	}
}

func TestEncodeErrorWrapped(t *testing.T) {
	sentinel := errors.New("disk full")
	c := NewCanvas(WithCodec(&fakeCodec{encodeErr: sentinel}), WithImage(mustImage(t, 1, 1), "a.png"))
	err := c.Save("")
	var eerr *EncodeError
	if !errors.As(err, &eerr) || !errors.Is(err, sentinel) {
		t.Fatalf("expected *EncodeError wrapping sentinel, got %v", err)
	}
	if eerr.Path != "a.png" {
		t.Fatalf("path = %q", eerr.Path)
	}
}

func TestFailedSaveKeepsFileOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprite.gif")
	c := NewCanvas(WithImage(mustImage(t, 4, 4), path))
	if err := c.Save(""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// Too wide for GIF, so the encoder fails.
	c.Replace(mustImage(t, 70000, 1), path)
	err = c.Save("")
	var eerr *EncodeError
	if !errors.As(err, &eerr) {
		t.Fatalf("expected *EncodeError, got %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("saved file lost: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("file changed: %d bytes before, %d after", len(before), len(after))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sprite.png")

	img := mustImage(t, 7, 5)
	for i := range img.Pix {
		img.Pix[i] = byte(i*13 + 1)
	}
	c := NewCanvas(WithImage(img, ""))
	if err := c.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := NewCanvas()
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Width() != 7 || loaded.Height() != 5 {
		t.Fatalf("size = %v", loaded.Size())
	}
	if !bytes.Equal(loaded.Pixels(), img.Pix) {
		t.Fatal("pixels differ after save/load")
	}
	if loaded.Path() != path {
		t.Fatalf("path = %q", loaded.Path())
	}
}

func TestLoadMissingFile(t *testing.T) {
	c := NewCanvas()
	err := c.Load(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestReplaceBumpsGeneration(t *testing.T) {
	c := NewCanvas()
	if c.Generation() != 0 || !c.Empty() {
		t.Fatal("new canvas should be empty at generation 0")
	}
	c.Replace(mustImage(t, 1, 1), "")
	c.Replace(mustImage(t, 1, 1), "")
	if c.Generation() != 2 {
		t.Fatalf("generation = %d, want 2", c.Generation())
	}
}

func TestCopyToRGBA(t *testing.T) {
	img := mustImage(t, 2, 2)
	img.SetRGB(1, 1, RGB{9, 8, 7})
	dst := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.CopyToRGBA(dst, image.Rect(1, 1, 2, 2))
	if got := dst.RGBAAt(1, 1); got.R != 9 || got.G != 8 || got.B != 7 || got.A != 0xFF {
		t.Fatalf("dst pixel = %v", got)
	}
	if got := dst.RGBAAt(0, 0); got.A != 0 {
		t.Fatalf("pixel outside region touched: %v", got)
	}
}
