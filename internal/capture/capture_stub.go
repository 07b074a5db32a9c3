//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"context"
	"fmt"
	"image"
)

func x11Screenshot() (*image.RGBA, error) {
	return nil, fmt.Errorf("X11 capture is not supported on this platform")
}

func portalScreenshot(context.Context, Options) (*image.RGBA, error) {
	return nil, fmt.Errorf("portal screenshot is not supported on this platform")
}

// ListMonitors is not supported on this platform.
func ListMonitors() ([]MonitorInfo, error) {
	return nil, fmt.Errorf("monitor listing is not supported on this platform")
}

func runningOnWayland() bool { return false }
