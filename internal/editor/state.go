// Package editor turns abstract input events into edits on a sprite.Canvas
// and drives a Renderer once per frame.
package editor

import (
	"image"

	"github.com/example/spriteedit/internal/sprite"
	"github.com/example/spriteedit/internal/viewport"
)

// DefaultWindowSize is the initial framebuffer size.
var DefaultWindowSize = image.Pt(800, 600)

// State is everything the editor knows. It is owned by the goroutine that
// runs the Controller.
type State struct {
	Canvas       *sprite.Canvas
	Zoom         float64
	Colors       ActiveColor
	Window       image.Point
	ZoomModifier Modifier
	// OpenDir is where file dialogs start when no image is open.
	OpenDir string
}

// NewState returns a state with an empty canvas, default zoom and colours.
func NewState(canvas *sprite.Canvas) *State {
	if canvas == nil {
		canvas = sprite.NewCanvas()
	}
	return &State{
		Canvas:       canvas,
		Zoom:         viewport.DefaultZoom,
		Colors:       DefaultActiveColor(),
		Window:       DefaultWindowSize,
		ZoomModifier: ModControl,
	}
}

// Geometry returns the display transform for the current frame.
func (s *State) Geometry() viewport.Geometry {
	return viewport.NewGeometry(s.Window, s.Canvas.Size(), s.Zoom)
}

// ColorFor returns the colour painted by button b.
func (s *State) ColorFor(b Button) (RGBA, bool) {
	switch b {
	case ButtonLeft:
		return s.Colors.Primary, true
	case ButtonRight:
		return s.Colors.Secondary, true
	}
	return RGBA{}, false
}
