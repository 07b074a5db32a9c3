package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"path/filepath"

	"github.com/example/spriteedit/internal/dialog"
	"github.com/example/spriteedit/internal/sprite"
	"github.com/example/spriteedit/internal/viewport"
)

// maxDamage is how many separate dirty rectangles are kept before they are
// merged into their union.
const maxDamage = 64

// Renderer draws the sprite as a scaled quad. Implementations own a texture
// that mirrors the canvas.
type Renderer interface {
	SetViewport(width, height int)
	// UploadImage replaces the whole texture. On error the controller
	// retries on the next frame.
	UploadImage(img *sprite.Image) error
	UploadRegion(img *sprite.Image, r image.Rectangle)
	Draw(g viewport.Geometry)
}

// Dialogs asks the user for file paths. Both methods return
// dialog.ErrCancelled when the user backs out.
type Dialogs interface {
	OpenFile(dir string) (string, error)
	SaveFile(dir, name string) (string, error)
}

// Clipboard exchanges images with other applications.
type Clipboard interface {
	WriteImage(img image.Image) error
	ReadImage() (image.Image, error)
}

// Notifier announces completed operations to the desktop.
type Notifier interface {
	Open(path string)
	Save(path string)
	Copy(detail string)
}

// ScreenSource grabs the screen for ImportScreen.
type ScreenSource func(ctx context.Context) (image.Image, error)

// Controller applies events to a State.
type Controller struct {
	st       *State
	renderer Renderer
	dialogs  Dialogs
	clip     Clipboard
	notifier Notifier
	screen   ScreenSource
	onTitle  func(string)

	ctx         context.Context
	damage      []image.Rectangle
	uploadedGen uint64
	quit        bool
}

// Option configures a Controller during creation.
type Option func(*Controller)

// WithRenderer sets the renderer driven by Frame events.
func WithRenderer(r Renderer) Option { return func(c *Controller) { c.renderer = r } }

// WithDialogs sets the file dialog used by OpenRequest and SaveAsRequest.
func WithDialogs(d Dialogs) Option { return func(c *Controller) { c.dialogs = d } }

// WithClipboard enables CopyImage and PasteImage.
func WithClipboard(cb Clipboard) Option { return func(c *Controller) { c.clip = cb } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n Notifier) Option { return func(c *Controller) { c.notifier = n } }

// WithScreenSource enables ImportScreen.
func WithScreenSource(fn ScreenSource) Option { return func(c *Controller) { c.screen = fn } }

// WithTitleListener is called with a new window title whenever the file
// changes.
func WithTitleListener(fn func(string)) Option { return func(c *Controller) { c.onTitle = fn } }

// NewController attaches a controller to st. The canvas damage listener is
// taken over by the controller.
func NewController(st *State, opts ...Option) *Controller {
	c := &Controller{st: st, ctx: context.Background()}
	for _, o := range opts {
		o(c)
	}
	st.Canvas.SetDamageListener(c.addDamage)
	return c
}

// State returns the state the controller edits.
func (c *Controller) State() *State { return c.st }

// Title returns the window title for the current file.
func (c *Controller) Title() string {
	if p := c.st.Canvas.Path(); p != "" {
		return "SpriteEdit - " + filepath.Base(p)
	}
	return "SpriteEdit"
}

// Run handles events until Quit, until events is closed or until ctx is
// done.
func (c *Controller) Run(ctx context.Context, events <-chan Event) error {
	c.ctx = ctx
	defer func() { c.ctx = context.Background() }()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !c.Handle(ev) {
				return nil
			}
		}
	}
}

// Handle applies one event. It returns false once Quit has been handled.
// Errors are logged; none of them stop the editor.
func (c *Controller) Handle(ev Event) bool {
	if c.quit {
		return false
	}
	switch e := ev.(type) {
	case ButtonPress:
		if err := c.paint(e); err != nil {
			log.Printf("paint: %v", err)
		}
	case Scroll:
		c.scroll(e)
	case Resize:
		c.resize(e.Width, e.Height)
	case Frame:
		c.Render()
	case OpenRequest:
		c.report("open", c.openDialog())
	case OpenFile:
		c.report("open", c.Open(e.Path))
	case SaveRequest:
		c.report("save", c.saveCurrent())
	case SaveAsRequest:
		c.report("save", c.saveDialog())
	case SaveFile:
		c.report("save", c.Save(e.Path))
	case SetColor:
		c.st.Colors.Set(e.Slot, e.Color)
	case CopyImage:
		c.report("copy", c.copyImage())
	case PasteImage:
		c.report("paste", c.pasteImage())
	case ImportScreen:
		c.report("import", c.importScreen())
	case Quit:
		c.quit = true
		return false
	default:
		log.Printf("editor: unhandled event %T", ev)
	}
	return true
}

func (c *Controller) report(op string, err error) {
	if err == nil || errors.Is(err, dialog.ErrCancelled) {
		return
	}
	log.Printf("%s: %v", op, err)
}

func (c *Controller) paint(e ButtonPress) error {
	col, ok := c.st.ColorFor(e.Button)
	if !ok || c.st.Canvas.Empty() {
		return nil
	}
	p, hit := c.st.Geometry().Hit(e.X, e.Y)
	if !hit {
		return nil
	}
	return c.st.Canvas.SetPixel(p.X, p.Y, col.ToRGB())
}

func (c *Controller) scroll(e Scroll) {
	if e.Modifiers&c.st.ZoomModifier == 0 {
		return
	}
	c.st.Zoom = viewport.ApplyScroll(c.st.Zoom, e.DY)
}

func (c *Controller) resize(w, h int) {
	c.st.Window = image.Pt(w, h)
	if c.renderer != nil {
		c.renderer.SetViewport(w, h)
	}
}

// Open loads path into the canvas. On failure the current image stays.
func (c *Controller) Open(path string) error {
	if err := c.st.Canvas.Load(path); err != nil {
		return err
	}
	log.Printf("opened %s (%dx%d)", path, c.st.Canvas.Width(), c.st.Canvas.Height())
	c.titleChanged()
	if c.notifier != nil {
		c.notifier.Open(path)
	}
	return nil
}

// Save writes the canvas to path, or to its current path when path is
// empty.
func (c *Controller) Save(path string) error {
	if err := c.st.Canvas.Save(path); err != nil {
		return err
	}
	saved := c.st.Canvas.Path()
	log.Printf("saved %s", saved)
	c.titleChanged()
	if c.notifier != nil {
		c.notifier.Save(saved)
	}
	return nil
}

func (c *Controller) openDialog() error {
	if c.dialogs == nil {
		return errors.New("no file dialog available")
	}
	path, err := c.dialogs.OpenFile(c.dialogDir())
	if err != nil {
		return err
	}
	return c.Open(path)
}

func (c *Controller) saveCurrent() error {
	if c.st.Canvas.Empty() {
		return sprite.ErrNoActiveImage
	}
	if c.st.Canvas.Path() == "" {
		return c.saveDialog()
	}
	return c.Save("")
}

func (c *Controller) saveDialog() error {
	if c.st.Canvas.Empty() {
		return sprite.ErrNoActiveImage
	}
	if c.dialogs == nil {
		return errors.New("no file dialog available")
	}
	name := "sprite.png"
	if p := c.st.Canvas.Path(); p != "" {
		name = filepath.Base(p)
	}
	path, err := c.dialogs.SaveFile(c.dialogDir(), name)
	if err != nil {
		return err
	}
	return c.Save(path)
}

func (c *Controller) dialogDir() string {
	if p := c.st.Canvas.Path(); p != "" {
		return filepath.Dir(p)
	}
	return c.st.OpenDir
}

func (c *Controller) copyImage() error {
	img := c.st.Canvas.Image()
	if img == nil {
		return sprite.ErrNoActiveImage
	}
	if c.clip == nil {
		return errors.New("clipboard unavailable")
	}
	if err := c.clip.WriteImage(img); err != nil {
		return err
	}
	log.Print("image copied to clipboard")
	if c.notifier != nil {
		c.notifier.Copy(fmt.Sprintf("%dx%d image", img.Width(), img.Height()))
	}
	return nil
}

func (c *Controller) pasteImage() error {
	if c.clip == nil {
		return errors.New("clipboard unavailable")
	}
	src, err := c.clip.ReadImage()
	if err != nil {
		return err
	}
	return c.replace(src)
}

func (c *Controller) importScreen() error {
	if c.screen == nil {
		return errors.New("screen capture unavailable")
	}
	src, err := c.screen(c.ctx)
	if err != nil {
		return err
	}
	return c.replace(src)
}

func (c *Controller) replace(src image.Image) error {
	img, err := sprite.FromImage(src)
	if err != nil {
		return err
	}
	c.st.Canvas.Replace(img, "")
	log.Printf("new %dx%d image", img.Width(), img.Height())
	c.titleChanged()
	return nil
}

func (c *Controller) titleChanged() {
	if c.onTitle != nil {
		c.onTitle(c.Title())
	}
}

func (c *Controller) addDamage(r image.Rectangle) {
	for _, d := range c.damage {
		if r.In(d) {
			return
		}
	}
	if len(c.damage) >= maxDamage {
		u := r
		for _, d := range c.damage {
			u = u.Union(d)
		}
		c.damage = append(c.damage[:0], u)
		return
	}
	c.damage = append(c.damage, r)
}

// PendingDamage returns the dirty rectangles not yet uploaded.
func (c *Controller) PendingDamage() []image.Rectangle {
	out := make([]image.Rectangle, len(c.damage))
	copy(out, c.damage)
	return out
}

// Render uploads whatever changed since the last frame and draws.
func (c *Controller) Render() {
	if c.renderer == nil {
		c.damage = c.damage[:0]
		return
	}
	if img := c.st.Canvas.Image(); img != nil {
		if gen := c.st.Canvas.Generation(); gen != c.uploadedGen {
			if err := c.renderer.UploadImage(img); err != nil {
				log.Printf("upload: %v", err)
			} else {
				c.uploadedGen = gen
			}
		} else {
			for _, r := range c.damage {
				c.renderer.UploadRegion(img, r)
			}
		}
	}
	c.damage = c.damage[:0]
	c.renderer.Draw(c.st.Geometry())
}
