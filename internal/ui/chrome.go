package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/spriteedit/internal/editor"
	"github.com/example/spriteedit/internal/theme"
)

// chrome is the menu bar and colour panel drawn over the sprite. It only
// turns clicks into editor events; the editor state stays with the
// controller.
type chrome struct {
	theme    *theme.Theme
	window   image.Point
	menuOpen bool
	hover    int
	editing  editor.Slot
	dragging int
}

func newChrome(t *theme.Theme, window image.Point) *chrome {
	if t == nil {
		t = theme.Default()
	}
	return &chrome{theme: t, window: window, hover: -1, dragging: -1}
}

func (c *chrome) layout() layout {
	return newLayout(c.window, c.menuOpen, len(editor.Palette()))
}

func (c *chrome) closeMenu() bool {
	if !c.menuOpen {
		return false
	}
	c.menuOpen = false
	c.hover = -1
	return true
}

// mouse handles e if it lands on the chrome. consumed is false when the
// event belongs to the sprite area.
func (c *chrome) mouse(e mouse.Event, colors editor.ActiveColor) (events []editor.Event, consumed, redraw bool) {
	l := c.layout()
	p := image.Pt(int(e.X), int(e.Y))

	if c.dragging >= 0 {
		switch e.Direction {
		case mouse.DirRelease:
			c.dragging = -1
			return nil, true, false
		case mouse.DirNone:
			return []editor.Event{c.setChannel(colors, c.dragging, l.channelValue(c.dragging, p.X))}, true, true
		}
	}

	h := l.hit(p)
	if e.Button.IsWheel() {
		return nil, h.kind != hitNone, false
	}
	if e.Direction == mouse.DirNone {
		hover := -1
		if h.kind == hitMenuItem {
			hover = h.index
		}
		if hover != c.hover {
			c.hover = hover
			redraw = true
		}
		return nil, h.kind != hitNone, redraw
	}
	if e.Direction != mouse.DirPress {
		return nil, h.kind != hitNone, false
	}

	switch h.kind {
	case hitNone:
		if c.closeMenu() {
			return nil, true, true
		}
		return nil, false, false
	case hitMenuTitle:
		c.menuOpen = !c.menuOpen
		c.hover = -1
		return nil, true, true
	case hitMenuItem:
		c.closeMenu()
		return []editor.Event{fileMenu[h.index].event}, true, true
	case hitSwatch:
		c.closeMenu()
		c.editing = editor.Slot(h.index)
		return nil, true, true
	case hitPalette:
		c.closeMenu()
		slot := editor.SlotPrimary
		if e.Button == mouse.ButtonRight {
			slot = editor.SlotSecondary
		}
		return []editor.Event{editor.SetColor{Slot: slot, Color: editor.RGBAFromColor(editor.Palette()[h.index].Color)}}, true, true
	case hitChannel:
		c.closeMenu()
		c.dragging = h.index
		return []editor.Event{c.setChannel(colors, h.index, l.channelValue(h.index, p.X))}, true, true
	}
	return nil, true, c.closeMenu()
}

func (c *chrome) setChannel(colors editor.ActiveColor, channel int, v float32) editor.Event {
	col := colors.Get(c.editing)
	switch channel {
	case 0:
		col.R = v
	case 1:
		col.G = v
	case 2:
		col.B = v
	}
	return editor.SetColor{Slot: c.editing, Color: col}
}

// draw paints the chrome into dst and returns the regions it covers.
func (c *chrome) draw(dst *image.RGBA, colors editor.ActiveColor, status string) []image.Rectangle {
	l := c.layout()
	t := c.theme

	fill(dst, l.menuBar, t.MenuBackground)
	fill(dst, image.Rect(0, menuHeight-1, l.window.X, menuHeight), t.MenuBorder)
	titleText := t.MenuText
	if c.menuOpen {
		fill(dst, l.fileTitle, t.MenuHover)
		titleText = t.MenuHoverText
	}
	drawText(dst, "File", l.fileTitle.Min.X+menuPad, baseline(l.fileTitle), titleText)
	if status != "" {
		x := l.panel.Min.X - menuPad - textWidth(status)
		if x > l.fileTitle.Max.X+menuPad {
			drawText(dst, status, x, baseline(l.menuBar), t.MenuText)
		}
	}

	fill(dst, l.panel, t.PanelBackground)
	outline(dst, l.panel, t.PanelBorder)
	for i, r := range l.swatches {
		fill(dst, r, colors.Get(editor.Slot(i)))
		border := t.SwatchBorder
		if editor.Slot(i) == c.editing {
			border = t.SwatchSelected
		}
		outline(dst, r, border)
		outline(dst, r.Inset(1), border)
	}
	for i, r := range l.palette {
		fill(dst, r, editor.Palette()[i].Color)
		outline(dst, r, t.SwatchBorder)
	}
	col := colors.Get(c.editing)
	values := [3]float32{col.R, col.G, col.B}
	tints := [3]color.RGBA{{R: 220, A: 255}, {G: 200, A: 255}, {R: 40, G: 90, B: 255, A: 255}}
	for i, r := range l.channels {
		drawText(dst, string("RGB"[i]), r.Min.X-channelLabel, baseline(r), t.PanelText)
		fill(dst, r, t.ChannelTrack)
		filled := r
		filled.Max.X = r.Min.X + int(values[i]*float32(r.Dx())+0.5)
		fill(dst, filled, tints[i])
		outline(dst, r, t.PanelBorder)
	}
	label := fmt.Sprintf("%s %s", c.editing, editor.FormatColor(col))
	drawText(dst, label, l.hexLine.Min.X, baseline(l.hexLine), t.PanelText)

	if c.menuOpen {
		fill(dst, l.menu, t.MenuBackground)
		outline(dst, l.menu, t.MenuBorder)
		for i, r := range l.items {
			item := fileMenu[i]
			text := t.MenuText
			if i == c.hover {
				fill(dst, r.Inset(1), t.MenuHover)
				text = t.MenuHoverText
			}
			drawText(dst, item.label, r.Min.X+menuPad, baseline(r), text)
			if item.keys != "" {
				drawText(dst, item.keys, r.Max.X-menuPad-textWidth(item.keys), baseline(r), text)
			}
		}
	}
	return l.opaque()
}

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func outline(dst draw.Image, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fill(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// baseline centres one line of text vertically in r.
func baseline(r image.Rectangle) int {
	m := face.Metrics()
	h := (m.Ascent + m.Descent).Ceil()
	return r.Min.Y + (r.Dy()-h)/2 + m.Ascent.Ceil()
}

func drawText(dst draw.Image, s string, x, y int, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face, Dot: fixed.P(x, y)}
	d.DrawString(s)
}
