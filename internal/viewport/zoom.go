package viewport

const (
	// DefaultZoom is the zoom factor used when nothing else is configured.
	DefaultZoom = 1.0
	// MaxZoom caps repeated zoom-in steps.
	MaxZoom = 60.0
	// ZoomInFactor is applied per scroll-up step.
	ZoomInFactor = 1.1
	// ZoomOutFactor is applied per scroll-down step.
	ZoomOutFactor = 0.9
)

// ApplyScroll returns zoom adjusted by one scroll step in the direction of
// dy. Only the upper bound is enforced; a zero dy leaves zoom unchanged.
func ApplyScroll(zoom, dy float64) float64 {
	switch {
	case dy > 0:
		zoom *= ZoomInFactor
	case dy < 0:
		zoom *= ZoomOutFactor
	default:
		return zoom
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	return zoom
}
