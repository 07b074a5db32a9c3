// Package render produces software renditions of a sprite: the window view
// the editor shows and enlarged copies for export.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/spriteedit/internal/viewport"
)

// Frame draws img as the editor window would show it: a background fill
// with the image quad centred, fitted and zoomed per g. Pixels are never
// smoothed.
func Frame(img image.Image, g viewport.Geometry, background color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, g.Window.X, g.Window.Y))
	Into(dst, img, g, background)
	return dst
}

// Into is Frame drawing onto an existing buffer.
func Into(dst draw.Image, img image.Image, g viewport.Geometry, background color.Color) {
	if background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	}
	if img == nil || !g.Visible() {
		return
	}
	xdraw.NearestNeighbor.Transform(dst, g.Aff3(), img, img.Bounds(), xdraw.Src, nil)
}

// Upscale enlarges img by an integer factor with nearest-neighbour
// sampling. Factors below one are treated as one.
func Upscale(img image.Image, factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// FitFactor returns the largest integer factor that keeps img within max.
// It never returns less than one.
func FitFactor(img image.Point, max image.Point) int {
	if img.X <= 0 || img.Y <= 0 {
		return 1
	}
	f := max.X / img.X
	if fy := max.Y / img.Y; fy < f {
		f = fy
	}
	if f < 1 {
		return 1
	}
	return f
}

// Grid draws one pixel lines between image pixels of a frame rendered with
// g. Nothing is drawn when a pixel is smaller than minCell window pixels.
func Grid(dst draw.Image, g viewport.Geometry, c color.Color, minCell float64) {
	left, top, w, h := g.Area()
	if !g.Visible() {
		return
	}
	cellW := w / float64(g.Image.X)
	cellH := h / float64(g.Image.Y)
	if cellW < minCell || cellH < minCell {
		return
	}
	bounds := g.Bounds().Intersect(dst.Bounds())
	src := image.NewUniform(c)
	for i := 1; i < g.Image.X; i++ {
		x := int(left + float64(i)*cellW)
		line := image.Rect(x, bounds.Min.Y, x+1, bounds.Max.Y).Intersect(bounds)
		draw.Draw(dst, line, src, image.Point{}, draw.Over)
	}
	for j := 1; j < g.Image.Y; j++ {
		y := int(top + float64(j)*cellH)
		line := image.Rect(bounds.Min.X, y, bounds.Max.X, y+1).Intersect(bounds)
		draw.Draw(dst, line, src, image.Point{}, draw.Over)
	}
}
