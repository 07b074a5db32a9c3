package editor

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/spriteedit/internal/dialog"
	"github.com/example/spriteedit/internal/sprite"
	"github.com/example/spriteedit/internal/viewport"
)

type fakeRenderer struct {
	viewport  image.Point
	fullLoads int
	uploadErr error
	regions   []image.Rectangle
	draws     []viewport.Geometry
}

func (r *fakeRenderer) SetViewport(w, h int)      { r.viewport = image.Pt(w, h) }
func (r *fakeRenderer) UploadImage(*sprite.Image) error {
	r.fullLoads++
	return r.uploadErr
}
func (r *fakeRenderer) Draw(g viewport.Geometry)  { r.draws = append(r.draws, g) }
func (r *fakeRenderer) UploadRegion(_ *sprite.Image, rect image.Rectangle) {
	r.regions = append(r.regions, rect)
}

type fakeDialogs struct {
	openPath, savePath string
	err                error
	openDir, saveDir   string
	saveName           string
}

func (d *fakeDialogs) OpenFile(dir string) (string, error) {
	d.openDir = dir
	return d.openPath, d.err
}

func (d *fakeDialogs) SaveFile(dir, name string) (string, error) {
	d.saveDir, d.saveName = dir, name
	return d.savePath, d.err
}

type fakeClipboard struct {
	written image.Image
	read    image.Image
	err     error
}

func (c *fakeClipboard) WriteImage(img image.Image) error {
	if c.err != nil {
		return c.err
	}
	c.written = img
	return nil
}

func (c *fakeClipboard) ReadImage() (image.Image, error) { return c.read, c.err }

type fakeNotifier struct{ opened, saved, copied []string }

func (n *fakeNotifier) Open(p string) { n.opened = append(n.opened, p) }
func (n *fakeNotifier) Save(p string) { n.saved = append(n.saved, p) }
func (n *fakeNotifier) Copy(d string) { n.copied = append(n.copied, d) }

// newTestController returns a controller over a 10x10 image in a 100x100
// window, so each image pixel covers a 10x10 block of window pixels.
func newTestController(t *testing.T, opts ...Option) (*Controller, *State) {
	t.Helper()
	img, err := sprite.NewImage(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	st := NewState(sprite.NewCanvas(sprite.WithImage(img, "")))
	st.Window = image.Pt(100, 100)
	return NewController(st, opts...), st
}

func pixel(t *testing.T, st *State, x, y int) sprite.RGB {
	t.Helper()
	c, err := st.Canvas.Pixel(x, y)
	if err != nil {
		t.Fatalf("Pixel(%d,%d): %v", x, y, err)
	}
	return c
}

func TestLeftClickPaintsPrimary(t *testing.T) {
	c, st := newTestController(t)
	st.Colors.Primary = RGBA{1, 0, 0, 1}

	c.Handle(ButtonPress{Button: ButtonLeft, X: 55, Y: 25})

	if got := pixel(t, st, 5, 2); got != (sprite.RGB{R: 255}) {
		t.Fatalf("pixel = %v, want red", got)
	}
}

func TestRightClickPaintsSecondary(t *testing.T) {
	c, st := newTestController(t)
	st.Colors.Secondary = RGBA{0, 0.5, 1, 1}

	c.Handle(ButtonPress{Button: ButtonRight, X: 5, Y: 95})

	if got := pixel(t, st, 0, 9); got != (sprite.RGB{G: 128, B: 255}) {
		t.Fatalf("pixel = %v", got)
	}
}

func TestClickOutsideImageIsNoop(t *testing.T) {
	c, st := newTestController(t)
	st.Window = image.Pt(200, 100)
	before := append([]byte(nil), st.Canvas.Pixels()...)
	st.Colors.Primary = RGBA{1, 1, 1, 1}

	// The quad is 100 wide and centred, so x=10 is left of it.
	c.Handle(ButtonPress{Button: ButtonLeft, X: 10, Y: 50})
	c.Handle(ButtonPress{Button: ButtonMiddle, X: 100, Y: 50})

	if string(before) != string(st.Canvas.Pixels()) {
		t.Fatal("image changed after a miss")
	}
	if len(c.PendingDamage()) != 0 {
		t.Fatalf("unexpected damage %v", c.PendingDamage())
	}
}

func TestClickWithoutImageIsNoop(t *testing.T) {
	st := NewState(nil)
	c := NewController(st)
	if !c.Handle(ButtonPress{Button: ButtonLeft, X: 400, Y: 300}) {
		t.Fatal("controller stopped")
	}
	if !st.Canvas.Empty() {
		t.Fatal("canvas should still be empty")
	}
}

func TestScrollZoomRequiresModifier(t *testing.T) {
	c, st := newTestController(t)

	c.Handle(Scroll{DY: 1})
	if st.Zoom != 1 {
		t.Fatalf("zoom changed without modifier: %v", st.Zoom)
	}
	c.Handle(Scroll{DY: 1, Modifiers: ModShift})
	if st.Zoom != 1 {
		t.Fatalf("zoom changed with wrong modifier: %v", st.Zoom)
	}
	c.Handle(Scroll{DY: 1, Modifiers: ModControl})
	if math.Abs(st.Zoom-1.1) > 1e-9 {
		t.Fatalf("zoom = %v, want 1.1", st.Zoom)
	}
	c.Handle(Scroll{DY: -1, Modifiers: ModControl | ModShift})
	if math.Abs(st.Zoom-0.99) > 1e-9 {
		t.Fatalf("zoom = %v, want 0.99", st.Zoom)
	}
}

func TestScrollZoomCapped(t *testing.T) {
	c, st := newTestController(t)
	for i := 0; i < 200; i++ {
		c.Handle(Scroll{DY: 1, Modifiers: ModControl})
	}
	if st.Zoom != viewport.MaxZoom {
		t.Fatalf("zoom = %v, want %v", st.Zoom, viewport.MaxZoom)
	}
	c.Handle(Scroll{DY: -1, Modifiers: ModControl})
	if math.Abs(st.Zoom-54) > 1e-9 {
		t.Fatalf("zoom = %v, want 54", st.Zoom)
	}
}

func TestConfiguredZoomModifier(t *testing.T) {
	c, st := newTestController(t)
	st.ZoomModifier = ModAlt
	c.Handle(Scroll{DY: 1, Modifiers: ModControl})
	if st.Zoom != 1 {
		t.Fatalf("zoom = %v", st.Zoom)
	}
	c.Handle(Scroll{DY: 1, Modifiers: ModAlt})
	if st.Zoom == 1 {
		t.Fatal("zoom did not change with configured modifier")
	}
}

func TestRenderUploadsFullThenRegions(t *testing.T) {
	r := &fakeRenderer{}
	c, _ := newTestController(t, WithRenderer(r))

	c.Handle(Resize{Width: 100, Height: 100})
	if r.viewport != image.Pt(100, 100) {
		t.Fatalf("viewport = %v", r.viewport)
	}
	c.Handle(Frame{})
	if r.fullLoads != 1 || len(r.regions) != 0 || len(r.draws) != 1 {
		t.Fatalf("first frame: full=%d regions=%v draws=%d", r.fullLoads, r.regions, len(r.draws))
	}

	c.Handle(ButtonPress{Button: ButtonLeft, X: 15, Y: 15})
	c.Handle(ButtonPress{Button: ButtonLeft, X: 15, Y: 15})
	c.Handle(ButtonPress{Button: ButtonLeft, X: 95, Y: 95})
	c.Handle(Frame{})
	want := []image.Rectangle{image.Rect(1, 1, 2, 2), image.Rect(9, 9, 10, 10)}
	if r.fullLoads != 1 || len(r.regions) != len(want) {
		t.Fatalf("second frame: full=%d regions=%v", r.fullLoads, r.regions)
	}
	for i := range want {
		if r.regions[i] != want[i] {
			t.Fatalf("region %d = %v, want %v", i, r.regions[i], want[i])
		}
	}

	c.Handle(Frame{})
	if len(r.regions) != 2 {
		t.Fatalf("damage uploaded twice: %v", r.regions)
	}

	g := r.draws[len(r.draws)-1]
	if g.Window != image.Pt(100, 100) || g.Image != image.Pt(10, 10) || g.Zoom != 1 {
		t.Fatalf("geometry = %+v", g)
	}
	if g.ScaleX != 1 || g.ScaleY != 1 {
		t.Fatalf("scale = %v,%v", g.ScaleX, g.ScaleY)
	}
}

func TestRenderRetriesFailedUpload(t *testing.T) {
	r := &fakeRenderer{uploadErr: errors.New("out of texture memory")}
	c, _ := newTestController(t, WithRenderer(r))
	c.Handle(Frame{})
	c.Handle(Frame{})
	if r.fullLoads != 2 || len(r.regions) != 0 {
		t.Fatalf("after failures: full=%d regions=%v", r.fullLoads, r.regions)
	}

	r.uploadErr = nil
	c.Handle(Frame{})
	c.Handle(ButtonPress{Button: ButtonLeft, X: 15, Y: 15})
	c.Handle(Frame{})
	if r.fullLoads != 3 || len(r.regions) != 1 {
		t.Fatalf("after recovery: full=%d regions=%v", r.fullLoads, r.regions)
	}
}

func TestRenderFullUploadAfterReplace(t *testing.T) {
	r := &fakeRenderer{}
	clip := &fakeClipboard{read: image.NewRGBA(image.Rect(0, 0, 3, 2))}
	c, st := newTestController(t, WithRenderer(r), WithClipboard(clip))
	c.Handle(Frame{})
	c.Handle(ButtonPress{Button: ButtonLeft, X: 50, Y: 50})
	c.Handle(PasteImage{})
	c.Handle(Frame{})
	if r.fullLoads != 2 || len(r.regions) != 0 {
		t.Fatalf("full=%d regions=%v", r.fullLoads, r.regions)
	}
	if st.Canvas.Size() != image.Pt(3, 2) || st.Canvas.Path() != "" {
		t.Fatalf("pasted canvas = %v %q", st.Canvas.Size(), st.Canvas.Path())
	}
}

func TestDamageCollapsesWhenLarge(t *testing.T) {
	c, st := newTestController(t)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if err := st.Canvas.SetPixel(x, y, sprite.RGB{}); err != nil {
				t.Fatal(err)
			}
		}
	}
	d := c.PendingDamage()
	if len(d) > maxDamage {
		t.Fatalf("damage list grew to %d", len(d))
	}
	var u image.Rectangle
	for _, r := range d {
		u = u.Union(r)
	}
	if u != image.Rect(0, 0, 10, 10) {
		t.Fatalf("damage union = %v", u)
	}
}

func TestOpenAndSaveThroughDialogs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.png")
	d := &fakeDialogs{savePath: path, openPath: path}
	n := &fakeNotifier{}
	var titles []string
	c, st := newTestController(t, WithDialogs(d), WithNotifier(n), WithTitleListener(func(s string) { titles = append(titles, s) }))
	st.OpenDir = "/start"
	st.Colors.Primary = RGBA{0, 1, 0, 1}
	c.Handle(ButtonPress{Button: ButtonLeft, X: 5, Y: 5})

	c.Handle(SaveRequest{})
	if d.saveDir != "/start" || d.saveName != "sprite.png" {
		t.Fatalf("save dialog dir=%q name=%q", d.saveDir, d.saveName)
	}
	if st.Canvas.Path() != path || len(n.saved) != 1 {
		t.Fatalf("path=%q saved=%v", st.Canvas.Path(), n.saved)
	}

	st.Canvas.Replace(mustBlank(t), "")
	c.Handle(OpenRequest{})
	if d.openDir != "/start" {
		t.Fatalf("open dialog dir = %q", d.openDir)
	}
	if got := pixel(t, st, 0, 0); got != (sprite.RGB{G: 255}) {
		t.Fatalf("reopened pixel = %v", got)
	}
	if len(n.opened) != 1 || n.opened[0] != path {
		t.Fatalf("opened = %v", n.opened)
	}
	if len(titles) == 0 || titles[len(titles)-1] != "SpriteEdit - hero.png" {
		t.Fatalf("titles = %v", titles)
	}

	c.Handle(SaveAsRequest{})
	if d.saveDir != dir || d.saveName != "hero.png" {
		t.Fatalf("save-as dialog dir=%q name=%q", d.saveDir, d.saveName)
	}
}

func TestCancelledDialogKeepsState(t *testing.T) {
	d := &fakeDialogs{err: dialog.ErrCancelled}
	c, st := newTestController(t, WithDialogs(d))
	img := st.Canvas.Image()
	c.Handle(OpenRequest{})
	c.Handle(SaveAsRequest{})
	if st.Canvas.Image() != img || st.Canvas.Path() != "" {
		t.Fatal("cancelled dialogs changed state")
	}
}

func TestFailedOpenKeepsImage(t *testing.T) {
	c, st := newTestController(t)
	img := st.Canvas.Image()
	err := c.Open(filepath.Join(t.TempDir(), "missing.png"))
	var derr *sprite.DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if !c.Handle(OpenFile{Path: "/does/not/exist.png"}) {
		t.Fatal("controller stopped after failed open")
	}
	if st.Canvas.Image() != img {
		t.Fatal("failed open replaced the image")
	}
}

func TestSaveWithoutImage(t *testing.T) {
	c := NewController(NewState(nil), WithDialogs(&fakeDialogs{savePath: "x.png"}))
	if err := c.saveCurrent(); !errors.Is(err, sprite.ErrNoActiveImage) {
		t.Fatalf("expected ErrNoActiveImage, got %v", err)
	}
	if err := c.Save("x.png"); !errors.Is(err, sprite.ErrNoActiveImage) {
		t.Fatalf("expected ErrNoActiveImage, got %v", err)
	}
}

func TestCopyImage(t *testing.T) {
	clip := &fakeClipboard{}
	n := &fakeNotifier{}
	c, st := newTestController(t, WithClipboard(clip), WithNotifier(n))
	c.Handle(CopyImage{})
	if clip.written != image.Image(st.Canvas.Image()) {
		t.Fatal("clipboard did not receive the canvas image")
	}
	if len(n.copied) != 1 || n.copied[0] != "10x10 image" {
		t.Fatalf("copied = %v", n.copied)
	}

	clip.err = errors.New("no display")
	if err := c.copyImage(); err == nil {
		t.Fatal("expected clipboard error")
	}
}

func TestImportScreen(t *testing.T) {
	grab := image.NewRGBA(image.Rect(0, 0, 4, 4))
	grab.Set(3, 3, color.RGBA{1, 2, 3, 255})
	var gotCtx context.Context
	c, st := newTestController(t, WithScreenSource(func(ctx context.Context) (image.Image, error) {
		gotCtx = ctx
		return grab, nil
	}))
	c.Handle(ImportScreen{})
	if gotCtx == nil {
		t.Fatal("screen source not called")
	}
	if got := pixel(t, st, 3, 3); got != (sprite.RGB{R: 1, G: 2, B: 3}) {
		t.Fatalf("imported pixel = %v", got)
	}
}

func TestSetColor(t *testing.T) {
	c, st := newTestController(t)
	c.Handle(SetColor{Slot: SlotSecondary, Color: RGBA{0.2, 0.4, 0.6, 1}})
	if st.Colors.Secondary != (RGBA{0.2, 0.4, 0.6, 1}) {
		t.Fatalf("secondary = %v", st.Colors.Secondary)
	}
	if st.Colors.Primary != DefaultActiveColor().Primary {
		t.Fatal("primary changed")
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	c, st := newTestController(t)
	events := make(chan Event, 4)
	events <- Scroll{DY: 1, Modifiers: ModControl}
	events <- Quit{}
	events <- Scroll{DY: 1, Modifiers: ModControl}
	if err := c.Run(context.Background(), events); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if math.Abs(st.Zoom-1.1) > 1e-9 {
		t.Fatalf("zoom = %v, events after quit were handled", st.Zoom)
	}
	if c.Handle(Frame{}) {
		t.Fatal("Handle should report stopped after Quit")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	c, _ := newTestController(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, make(chan Event)) }()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunStopsOnClose(t *testing.T) {
	c, _ := newTestController(t)
	events := make(chan Event)
	close(events)
	if err := c.Run(context.Background(), events); err != nil {
		t.Fatalf("Run = %v", err)
	}
}

func mustBlank(t *testing.T) *sprite.Image {
	t.Helper()
	img, err := sprite.NewImage(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	return img
}
