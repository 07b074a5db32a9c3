// Package ui is the shiny window for the editor: it owns the native event
// loop, forwards input to an editor.Controller and draws the sprite as a
// texture with the menu bar and colour panel on top.
package ui

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/spriteedit/internal/editor"
	"github.com/example/spriteedit/internal/theme"
)

// stopEvent is sent to the window when the context is cancelled.
type stopEvent struct{}

// App runs one editor window.
type App struct {
	st         *editor.State
	theme      *theme.Theme
	file       string
	editorOpts []editor.Option
}

// Option configures an App.
type Option func(*App)

// WithTheme sets the chrome colours.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.theme = t } }

// WithFile opens path once the window is up.
func WithFile(path string) Option { return func(a *App) { a.file = path } }

// WithEditorOptions passes collaborators such as dialogs and the clipboard
// to the controller.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(a *App) { a.editorOpts = append(a.editorOpts, opts...) }
}

// New returns an App editing st.
func New(st *editor.State, opts ...Option) *App {
	a := &App{st: st, theme: theme.Default()}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run opens the window and blocks until it is closed, Quit is chosen or ctx
// is cancelled. It must be called from the main goroutine.
func (a *App) Run(ctx context.Context) error {
	var err error
	driver.Main(func(s screen.Screen) {
		err = a.Main(ctx, s)
	})
	return err
}

// Main drives the editor on an existing screen.
func (a *App) Main(ctx context.Context, s screen.Screen) error {
	win := a.st.Window
	if win.X <= 0 || win.Y <= 0 {
		win = editor.DefaultWindowSize
	}
	// shiny cannot retitle a window, so the menu bar shows the current file.
	title := "SpriteEdit"
	if a.file != "" {
		title += " - " + filepath.Base(a.file)
	}
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: win.X, Height: win.Y, Title: title})
	if err != nil {
		return fmt.Errorf("new window: %w", err)
	}
	defer w.Release()

	r := newTextureRenderer(s, w, a.theme.Background, win)
	defer r.Release()
	sess := a.newSession(r, win)
	r.decorate = sess.decorate
	sess.open(a.file)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			w.Send(stopEvent{})
		case <-done:
		}
	}()

	for {
		switch e := w.NextEvent().(type) {
		case stopEvent:
			return ctx.Err()
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}
		case size.Event:
			sess.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			sess.ctrl.Handle(editor.Frame{})
		case mouse.Event, key.Event:
			redraw, quit := sess.input(e)
			if quit {
				return nil
			}
			if redraw {
				w.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

// session routes native input through the chrome to the controller. Both
// backends feed it x/mobile events from their own loop.
type session struct {
	st   *editor.State
	ctrl *editor.Controller
	ch   *chrome
}

func (a *App) newSession(r editor.Renderer, window image.Point, extra ...editor.Option) *session {
	opts := append([]editor.Option{editor.WithRenderer(r)}, a.editorOpts...)
	opts = append(opts, extra...)
	s := &session{
		st:   a.st,
		ctrl: editor.NewController(a.st, opts...),
		ch:   newChrome(a.theme, window),
	}
	s.ctrl.Handle(editor.Resize{Width: window.X, Height: window.Y})
	return s
}

func (s *session) open(path string) {
	if path != "" {
		s.ctrl.Handle(editor.OpenFile{Path: path})
	}
}

func (s *session) resize(width, height int) {
	s.ch.window = image.Pt(width, height)
	s.ctrl.Handle(editor.Resize{Width: width, Height: height})
}

func (s *session) decorate(dst *image.RGBA) []image.Rectangle {
	return s.ch.draw(dst, s.st.Colors, status(s.ctrl, s.st))
}

// input handles one mouse or key event. It reports whether the window
// needs repainting and whether the editor has quit.
func (s *session) input(e interface{}) (redraw, quit bool) {
	switch e := e.(type) {
	case mouse.Event:
		events, consumed, redraw := s.ch.mouse(e, s.st.Colors)
		for _, ev := range events {
			if !s.ctrl.Handle(ev) {
				return false, true
			}
		}
		if !consumed {
			if ev, ok := translateMouse(e); ok {
				s.ctrl.Handle(ev)
				redraw = true
			}
		}
		return redraw, false
	case key.Event:
		if e.Direction == key.DirPress && e.Code == key.CodeEscape && s.ch.closeMenu() {
			return true, false
		}
		if ev, ok := translateKey(e); ok {
			s.ch.closeMenu()
			if !s.ctrl.Handle(ev) {
				return false, true
			}
			return true, false
		}
	}
	return false, false
}

// status is the text shown on the right of the menu bar.
func status(ctrl *editor.Controller, st *editor.State) string {
	s := ctrl.Title()
	if !st.Canvas.Empty() {
		s = fmt.Sprintf("%s  %dx%d  %.0f%%", s, st.Canvas.Width(), st.Canvas.Height(), st.Zoom*100)
	}
	return s
}
