package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/spriteedit/internal/capture"
	"github.com/example/spriteedit/internal/clipboard"
	"github.com/example/spriteedit/internal/config"
	"github.com/example/spriteedit/internal/dialog"
	"github.com/example/spriteedit/internal/editor"
	"github.com/example/spriteedit/internal/ui"
)

// captureScreen is swapped in tests.
var captureScreen = capture.Screen

type editCmd struct {
	File         string  `arg:"" optional:"" type:"path" help:"Image to open."`
	Zoom         float64 `help:"Initial zoom factor."`
	Primary      string  `help:"Left button colour: hex, palette or SVG name."`
	Secondary    string  `help:"Right button colour: hex, palette or SVG name."`
	ZoomModifier string  `help:"Modifier held while scrolling to zoom (control, shift, alt, meta)."`
	Backend      string  `help:"Window backend (shiny or gl)."`
}

func (c *editCmd) Validate() error {
	if c.Zoom < 0 {
		return fmt.Errorf("zoom must be positive: %v", c.Zoom)
	}
	switch c.Backend {
	case "", config.BackendShiny, config.BackendGL:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}

// state builds the initial editor state from flags layered over cfg.
func (c *editCmd) state(cfg *config.Config) (*editor.State, error) {
	st := editor.NewState(nil)
	st.OpenDir = cfg.OpenDir
	st.Zoom = cfg.Zoom
	if c.Zoom > 0 {
		st.Zoom = c.Zoom
	}

	modName := cfg.ZoomModifier
	if c.ZoomModifier != "" {
		modName = c.ZoomModifier
	}
	mod, err := editor.ParseModifier(modName)
	if err != nil {
		return nil, err
	}
	st.ZoomModifier = mod

	for _, slot := range []struct {
		slot     editor.Slot
		flag     string
		fallback string
	}{
		{editor.SlotPrimary, c.Primary, cfg.Colors.Primary},
		{editor.SlotSecondary, c.Secondary, cfg.Colors.Secondary},
	} {
		name := slot.flag
		if name == "" {
			name = slot.fallback
		}
		if name == "" {
			continue
		}
		col, err := editor.ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("%s colour: %w", slot.slot, err)
		}
		st.Colors.Set(slot.slot, col)
	}
	return st, nil
}

func (c *editCmd) backend(cfg *config.Config) string {
	if c.Backend != "" {
		return c.Backend
	}
	return cfg.Backend
}

func (c *editCmd) Run(r *root) error {
	st, err := c.state(r.config)
	if err != nil {
		return err
	}
	app := ui.New(st,
		ui.WithTheme(r.theme),
		ui.WithFile(c.File),
		ui.WithEditorOptions(
			editor.WithDialogs(dialog.New()),
			editor.WithClipboard(clipboard.System{}),
			editor.WithNotifier(r.notifier),
			editor.WithScreenSource(screenSource),
		),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if c.backend(r.config) == config.BackendGL {
		return app.RunGL(ctx)
	}
	return app.Run(ctx)
}

func screenSource(ctx context.Context) (image.Image, error) {
	img, err := captureScreen(ctx, capture.Options{})
	if err != nil {
		return nil, err
	}
	return img, nil
}
