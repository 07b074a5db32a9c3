package ui

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/spriteedit/internal/editor"
)

const shortcutMask = key.ModShift | key.ModControl | key.ModAlt | key.ModMeta

type keyShortcut struct {
	Code      key.Code
	Modifiers key.Modifiers
}

var keyboardAction = func() map[keyShortcut]editor.Event {
	m := map[keyShortcut]editor.Event{}
	for _, item := range fileMenu {
		if item.code != key.CodeUnknown {
			m[keyShortcut{Code: item.code, Modifiers: item.modifiers}] = item.event
		}
	}
	return m
}()

func modifiers(m key.Modifiers) editor.Modifier {
	var out editor.Modifier
	if m&key.ModShift != 0 {
		out |= editor.ModShift
	}
	if m&key.ModControl != 0 {
		out |= editor.ModControl
	}
	if m&key.ModAlt != 0 {
		out |= editor.ModAlt
	}
	if m&key.ModMeta != 0 {
		out |= editor.ModMeta
	}
	return out
}

func button(b mouse.Button) editor.Button {
	switch b {
	case mouse.ButtonLeft:
		return editor.ButtonLeft
	case mouse.ButtonRight:
		return editor.ButtonRight
	case mouse.ButtonMiddle:
		return editor.ButtonMiddle
	}
	return editor.ButtonNone
}

// translateMouse converts a mouse event over the sprite area. Wheel steps
// become Scroll events and presses become ButtonPress events; motion and
// releases are dropped.
func translateMouse(e mouse.Event) (editor.Event, bool) {
	if e.Button.IsWheel() {
		if e.Direction == mouse.DirRelease {
			return nil, false
		}
		s := editor.Scroll{Modifiers: modifiers(e.Modifiers)}
		switch e.Button {
		case mouse.ButtonWheelUp:
			s.DY = 1
		case mouse.ButtonWheelDown:
			s.DY = -1
		case mouse.ButtonWheelLeft:
			s.DX = -1
		case mouse.ButtonWheelRight:
			s.DX = 1
		}
		return s, true
	}
	if e.Direction != mouse.DirPress {
		return nil, false
	}
	b := button(e.Button)
	if b == editor.ButtonNone {
		return nil, false
	}
	return editor.ButtonPress{Button: b, X: float64(e.X), Y: float64(e.Y)}, true
}

// translateKey maps menu shortcuts to their events.
func translateKey(e key.Event) (editor.Event, bool) {
	if e.Direction != key.DirPress {
		return nil, false
	}
	ev, ok := keyboardAction[keyShortcut{Code: e.Code, Modifiers: e.Modifiers & shortcutMask}]
	return ev, ok
}
