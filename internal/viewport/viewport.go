// Package viewport maps between window pixels and image pixels for the
// textured quad that displays the sprite.
//
// The quad spans clip space [-1, 1] on both axes before scaling. The fit
// scale keeps the quad square relative to the window's shorter side and then
// shrinks the image's shorter side so the picture keeps its own aspect ratio.
// The user zoom factor multiplies on top of that.
package viewport

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

// ComputeFitScale returns the per-axis clip-space scale that preserves both
// the window and the image aspect ratios. Non-positive dimensions yield a
// zero scale, which makes the quad invisible and every hit test miss.
func ComputeFitScale(winW, winH, imgW, imgH int) (sx, sy float64) {
	if winW <= 0 || winH <= 0 || imgW <= 0 || imgH <= 0 {
		return 0, 0
	}
	winMajor := float64(max(winW, winH))
	// The shorter window side compresses the opposite axis of the quad.
	winX := float64(winH) / winMajor
	winY := float64(winW) / winMajor

	imgMajor := float64(max(imgW, imgH))
	imgX := float64(imgW) / imgMajor
	imgY := float64(imgH) / imgMajor

	return winX * imgX, winY * imgY
}

// CursorToImagePixel resolves a cursor position in window coordinates to the
// image pixel under it. ok is false when the cursor is outside the displayed
// image. The bounds are exclusive at width and height.
func CursorToImagePixel(cx, cy float64, winW, winH int, sx, sy, zoom float64, imgW, imgH int) (x, y int, ok bool) {
	left, top, areaW, areaH := displayArea(winW, winH, sx, sy, zoom)
	if areaW <= 0 || areaH <= 0 || imgW <= 0 || imgH <= 0 {
		return 0, 0, false
	}
	if cx < left || cx > left+areaW || cy < top || cy > top+areaH {
		return 0, 0, false
	}
	x = int(math.Floor((cx - left) / areaW * float64(imgW)))
	y = int(math.Floor((cy - top) / areaH * float64(imgH)))
	if x < 0 || y < 0 || x >= imgW || y >= imgH {
		return 0, 0, false
	}
	return x, y, true
}

func displayArea(winW, winH int, sx, sy, zoom float64) (left, top, areaW, areaH float64) {
	areaW = float64(winW) * sx * zoom
	areaH = float64(winH) * sy * zoom
	left = (float64(winW) - areaW) / 2
	top = (float64(winH) - areaH) / 2
	return left, top, areaW, areaH
}

// Geometry is the per-frame view of the quad. It is derived, never stored
// between frames.
type Geometry struct {
	Window image.Point
	Image  image.Point
	ScaleX float64
	ScaleY float64
	Zoom   float64
}

// NewGeometry computes the fit scale for the given window and image sizes.
func NewGeometry(window, img image.Point, zoom float64) Geometry {
	sx, sy := ComputeFitScale(window.X, window.Y, img.X, img.Y)
	return Geometry{Window: window, Image: img, ScaleX: sx, ScaleY: sy, Zoom: zoom}
}

// ClipScale returns the scale applied to the unit quad in clip space.
func (g Geometry) ClipScale() (sx, sy float64) {
	return g.ScaleX * g.Zoom, g.ScaleY * g.Zoom
}

// Area returns the displayed image rectangle in window pixels as floats:
// left, top, width and height.
func (g Geometry) Area() (left, top, w, h float64) {
	return displayArea(g.Window.X, g.Window.Y, g.ScaleX, g.ScaleY, g.Zoom)
}

// Bounds returns Area rounded outwards to whole window pixels.
func (g Geometry) Bounds() image.Rectangle {
	left, top, w, h := g.Area()
	return image.Rect(
		int(math.Floor(left)), int(math.Floor(top)),
		int(math.Ceil(left+w)), int(math.Ceil(top+h)),
	)
}

// Aff3 returns the transform from texture pixel space to window pixel space.
func (g Geometry) Aff3() f64.Aff3 {
	left, top, w, h := g.Area()
	if g.Image.X <= 0 || g.Image.Y <= 0 {
		return f64.Aff3{}
	}
	return f64.Aff3{
		w / float64(g.Image.X), 0, left,
		0, h / float64(g.Image.Y), top,
	}
}

// Visible reports whether the quad covers any window pixels.
func (g Geometry) Visible() bool {
	_, _, w, h := g.Area()
	return w > 0 && h > 0 && g.Image.X > 0 && g.Image.Y > 0
}

// Hit maps a cursor position to an image pixel.
func (g Geometry) Hit(cx, cy float64) (image.Point, bool) {
	x, y, ok := CursorToImagePixel(cx, cy, g.Window.X, g.Window.Y, g.ScaleX, g.ScaleY, g.Zoom, g.Image.X, g.Image.Y)
	return image.Pt(x, y), ok
}
