package ui

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/mobile/event/key"

	"github.com/example/spriteedit/internal/editor"
)

const (
	menuHeight     = 20
	menuItemHeight = 20
	menuWidth      = 200
	menuPad        = 8

	panelWidth    = 160
	panelPad      = 8
	swatchSize    = 32
	cellSize      = 18
	cellInset     = 2
	channelLabel  = 12
	channelHeight = 14
	channelGap    = 4
	textHeight    = 13
)

var face = basicfont.Face7x13

// menuItem is one entry of the File menu. Items with a zero Code have no
// keyboard shortcut.
type menuItem struct {
	label     string
	keys      string
	code      key.Code
	modifiers key.Modifiers
	event     editor.Event
}

var fileMenu = []menuItem{
	{label: "Open...", keys: "Ctrl+O", code: key.CodeO, modifiers: key.ModControl, event: editor.OpenRequest{}},
	{label: "Save", keys: "Ctrl+S", code: key.CodeS, modifiers: key.ModControl, event: editor.SaveRequest{}},
	{label: "Save As...", keys: "Ctrl+Shift+S", code: key.CodeS, modifiers: key.ModControl | key.ModShift, event: editor.SaveAsRequest{}},
	{label: "Copy", keys: "Ctrl+C", code: key.CodeC, modifiers: key.ModControl, event: editor.CopyImage{}},
	{label: "Paste", keys: "Ctrl+V", code: key.CodeV, modifiers: key.ModControl, event: editor.PasteImage{}},
	{label: "Import screen", event: editor.ImportScreen{}},
	{label: "Quit", keys: "Ctrl+Q", code: key.CodeQ, modifiers: key.ModControl, event: editor.Quit{}},
}

type hitKind int

const (
	hitNone hitKind = iota
	hitMenuBar
	hitMenuTitle
	hitMenuItem
	hitPanel
	hitSwatch
	hitPalette
	hitChannel
)

// hit is the chrome element under a point. index selects the menu item,
// swatch slot, palette entry or channel.
type hit struct {
	kind  hitKind
	index int
}

// layout positions the chrome for one window size. The sprite quad covers
// the whole window; the chrome is drawn on top of it.
type layout struct {
	window    image.Point
	menuBar   image.Rectangle
	fileTitle image.Rectangle
	menu      image.Rectangle
	items     []image.Rectangle
	panel     image.Rectangle
	swatches  [2]image.Rectangle
	palette   []image.Rectangle
	channels  [3]image.Rectangle
	hexLine   image.Rectangle
}

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

func newLayout(window image.Point, menuOpen bool, paletteLen int) layout {
	l := layout{window: window}
	l.menuBar = image.Rect(0, 0, window.X, menuHeight)
	l.fileTitle = image.Rect(0, 0, textWidth("File")+2*menuPad, menuHeight)
	if menuOpen {
		l.menu = image.Rect(0, menuHeight, menuWidth, menuHeight+len(fileMenu)*menuItemHeight)
		for i := range fileMenu {
			y := menuHeight + i*menuItemHeight
			l.items = append(l.items, image.Rect(0, y, menuWidth, y+menuItemHeight))
		}
	}

	left := window.X - panelWidth
	x0 := left + panelPad
	y := menuHeight + panelPad
	l.swatches[editor.SlotPrimary] = image.Rect(x0, y, x0+swatchSize, y+swatchSize)
	x1 := x0 + swatchSize + panelPad
	l.swatches[editor.SlotSecondary] = image.Rect(x1, y, x1+swatchSize, y+swatchSize)
	y += swatchSize + panelPad

	cols := (panelWidth - 2*panelPad) / cellSize
	for i := 0; i < paletteLen; i++ {
		cx := x0 + (i%cols)*cellSize
		cy := y + (i/cols)*cellSize
		l.palette = append(l.palette, image.Rect(cx, cy, cx+cellSize-cellInset, cy+cellSize-cellInset))
	}
	y += (paletteLen + cols - 1) / cols * cellSize
	y += panelPad

	for i := range l.channels {
		l.channels[i] = image.Rect(x0+channelLabel, y, window.X-panelPad, y+channelHeight)
		y += channelHeight + channelGap
	}
	l.hexLine = image.Rect(x0, y, window.X-panelPad, y+textHeight)
	y += textHeight + panelPad
	l.panel = image.Rect(left, menuHeight, window.X, y)
	return l
}

func (l layout) hit(p image.Point) hit {
	for i, r := range l.items {
		if p.In(r) {
			return hit{kind: hitMenuItem, index: i}
		}
	}
	if p.In(l.fileTitle) {
		return hit{kind: hitMenuTitle}
	}
	if p.In(l.menuBar) {
		return hit{kind: hitMenuBar}
	}
	if !p.In(l.panel) {
		return hit{}
	}
	for i, r := range l.swatches {
		if p.In(r) {
			return hit{kind: hitSwatch, index: i}
		}
	}
	for i, r := range l.palette {
		if p.In(r) {
			return hit{kind: hitPalette, index: i}
		}
	}
	for i, r := range l.channels {
		if p.In(r) {
			return hit{kind: hitChannel, index: i}
		}
	}
	return hit{kind: hitPanel}
}

// channelValue maps an x position onto channel i as a value in [0, 1].
func (l layout) channelValue(i, x int) float32 {
	r := l.channels[i]
	span := r.Dx() - 1
	if span <= 0 {
		return 0
	}
	v := float32(x-r.Min.X) / float32(span)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// opaque returns the chrome regions that cover the sprite.
func (l layout) opaque() []image.Rectangle {
	rects := []image.Rectangle{l.menuBar, l.panel}
	if !l.menu.Empty() {
		rects = append(rects, l.menu)
	}
	return rects
}
