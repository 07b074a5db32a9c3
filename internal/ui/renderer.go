package ui

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/spriteedit/internal/sprite"
	"github.com/example/spriteedit/internal/viewport"
)

// textureRenderer keeps a texture that mirrors the canvas and draws it
// through the window's affine draw, so zooming never resamples on the CPU.
type textureRenderer struct {
	s          screen.Screen
	w          screen.Window
	background color.Color
	window     image.Point

	staging screen.Buffer
	tex     screen.Texture
	overlay screen.Buffer

	// decorate paints the chrome and returns the regions to upload.
	decorate func(dst *image.RGBA) []image.Rectangle
}

func newTextureRenderer(s screen.Screen, w screen.Window, background color.Color, window image.Point) *textureRenderer {
	return &textureRenderer{s: s, w: w, background: background, window: window}
}

func (r *textureRenderer) SetViewport(width, height int) {
	r.window = image.Pt(width, height)
	if r.overlay != nil && r.overlay.Size() != r.window {
		r.overlay.Release()
		r.overlay = nil
	}
}

func (r *textureRenderer) UploadImage(img *sprite.Image) error {
	size := img.Size()
	if r.tex == nil || r.tex.Size() != size {
		r.releaseTexture()
		b, err := r.s.NewBuffer(size)
		if err != nil {
			return fmt.Errorf("new buffer: %w", err)
		}
		t, err := r.s.NewTexture(size)
		if err != nil {
			b.Release()
			return fmt.Errorf("new texture: %w", err)
		}
		r.staging, r.tex = b, t
	}
	img.CopyToRGBA(r.staging.RGBA(), img.Bounds())
	r.tex.Upload(image.Point{}, r.staging, r.staging.Bounds())
	return nil
}

func (r *textureRenderer) UploadRegion(img *sprite.Image, rect image.Rectangle) {
	if r.tex == nil || r.tex.Size() != img.Size() {
		if err := r.UploadImage(img); err != nil {
			log.Printf("upload: %v", err)
		}
		return
	}
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return
	}
	img.CopyToRGBA(r.staging.RGBA(), rect)
	r.tex.Upload(rect.Min, r.staging, rect)
}

func (r *textureRenderer) Draw(g viewport.Geometry) {
	r.w.Fill(image.Rectangle{Max: r.window}, r.background, screen.Src)
	if r.tex != nil && g.Visible() {
		r.w.Draw(g.Aff3(), r.tex, r.tex.Bounds(), screen.Src, nil)
	}
	if r.decorate != nil && r.window.X > 0 && r.window.Y > 0 {
		if r.overlay == nil {
			b, err := r.s.NewBuffer(r.window)
			if err != nil {
				log.Printf("new buffer: %v", err)
			} else {
				r.overlay = b
			}
		}
		if r.overlay != nil {
			for _, rect := range r.decorate(r.overlay.RGBA()) {
				rect = rect.Intersect(r.overlay.Bounds())
				if !rect.Empty() {
					r.w.Upload(rect.Min, r.overlay, rect)
				}
			}
		}
	}
	r.w.Publish()
}

func (r *textureRenderer) releaseTexture() {
	if r.tex != nil {
		r.tex.Release()
		r.tex = nil
	}
	if r.staging != nil {
		r.staging.Release()
		r.staging = nil
	}
}

func (r *textureRenderer) Release() {
	r.releaseTexture()
	if r.overlay != nil {
		r.overlay.Release()
		r.overlay = nil
	}
}
