// Package capture grabs the desktop so it can be imported as a new sprite.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strconv"
	"strings"
)

var errNoMonitors = errors.New("no monitors available")

// Options selects what part of the screen is grabbed.
type Options struct {
	// Monitor is a selector understood by FindMonitor. Empty means the whole
	// screen.
	Monitor string
	// Region, when non-empty, crops the grab to these global coordinates.
	Region image.Rectangle
	// Interactive lets the portal show its own picker. Only the portal path
	// supports it.
	Interactive bool
	// IncludeCursor asks the portal to embed the pointer.
	IncludeCursor bool
}

// MonitorInfo describes an individual monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// Swapped in tests.
var (
	x11ScreenshotFn    = x11Screenshot
	portalScreenshotFn = portalScreenshot
	listMonitorsFn     = ListMonitors
	onWaylandFn        = runningOnWayland
)

// Screen grabs the screen. On X11 the root window is read directly; on
// Wayland, for interactive grabs, or when the direct read fails, the XDG
// screenshot portal is used.
func Screen(ctx context.Context, opts Options) (*image.RGBA, error) {
	img, err := grab(ctx, opts)
	if err != nil {
		return nil, err
	}
	rect := opts.Region
	if opts.Monitor != "" {
		monitors, err := listMonitorsFn()
		if err != nil {
			return nil, fmt.Errorf("capture monitor %q: %w", opts.Monitor, err)
		}
		mon, err := FindMonitor(monitors, opts.Monitor)
		if err != nil {
			return nil, err
		}
		if rect.Empty() {
			rect = mon.Rect
		} else {
			rect = rect.Intersect(mon.Rect)
		}
	}
	if rect.Empty() {
		return img, nil
	}
	return cropToRect(img, rect)
}

func grab(ctx context.Context, opts Options) (*image.RGBA, error) {
	if opts.Interactive || onWaylandFn() {
		return portalScreenshotFn(ctx, opts)
	}
	img, directErr := x11ScreenshotFn()
	if directErr == nil {
		return img, nil
	}
	img, err := portalScreenshotFn(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("screen capture: %v; portal fallback failed: %w", directErr, err)
	}
	return img, nil
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}

// FindMonitor resolves a selector: "primary", an index (optionally with a
// leading #) or part of the output name.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	lower := strings.ToLower(strings.TrimSpace(selector))
	if lower == "" {
		return monitors[0], nil
	}
	if lower == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(lower, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}
