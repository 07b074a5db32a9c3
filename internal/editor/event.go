package editor

import (
	"fmt"
	"strings"
)

// Event is an input delivered to the Controller. Window backends translate
// their native events into these values.
type Event interface{}

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Modifier is a bitmask of held modifier keys.
type Modifier uint32

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModMeta
)

// ParseModifier accepts control, ctrl, shift, alt or meta/super.
func ParseModifier(s string) (Modifier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "control", "ctrl", "":
		return ModControl, nil
	case "shift":
		return ModShift, nil
	case "alt":
		return ModAlt, nil
	case "meta", "super", "cmd":
		return ModMeta, nil
	}
	return 0, fmt.Errorf("unknown modifier %q", s)
}

func (m Modifier) String() string {
	var parts []string
	if m&ModControl != 0 {
		parts = append(parts, "control")
	}
	if m&ModShift != 0 {
		parts = append(parts, "shift")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if m&ModMeta != 0 {
		parts = append(parts, "meta")
	}
	return strings.Join(parts, "+")
}

// Scroll is a wheel step. Positive DY scrolls up.
type Scroll struct {
	DX, DY    float64
	Modifiers Modifier
}

// ButtonPress is a pointer press at window coordinates X, Y.
type ButtonPress struct {
	Button Button
	X, Y   float64
}

// Resize reports a new framebuffer size.
type Resize struct {
	Width, Height int
}

// Frame asks the controller to render.
type Frame struct{}

// OpenRequest shows the open dialog.
type OpenRequest struct{}

// SaveRequest saves to the current path, asking for one if there is none.
type SaveRequest struct{}

// SaveAsRequest always asks for a path.
type SaveAsRequest struct{}

// OpenFile opens Path without a dialog.
type OpenFile struct{ Path string }

// SaveFile saves to Path without a dialog.
type SaveFile struct{ Path string }

// SetColor replaces one of the active colours.
type SetColor struct {
	Slot  Slot
	Color RGBA
}

// CopyImage puts the image on the clipboard.
type CopyImage struct{}

// PasteImage replaces the image with the clipboard contents.
type PasteImage struct{}

// ImportScreen replaces the image with a screen grab.
type ImportScreen struct{}

// Quit stops Run.
type Quit struct{}
