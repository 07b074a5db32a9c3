package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/spriteedit/internal/codec"
	"github.com/example/spriteedit/internal/editor"
	"github.com/example/spriteedit/internal/render"
	"github.com/example/spriteedit/internal/sprite"
	"github.com/example/spriteedit/internal/viewport"
)

type paintCmd struct {
	File   string `arg:"" type:"existingfile" help:"Image to edit."`
	X      int    `arg:"" help:"Pixel column."`
	Y      int    `arg:"" help:"Pixel row."`
	Color  string `arg:"" help:"Colour: hex, palette or SVG name."`
	Output  string `short:"o" type:"path" help:"Write here instead of overwriting FILE."`
	Quality int    `help:"JPEG quality (1-100); zero uses the default."`
}

func (c *paintCmd) Run(r *root) error {
	col, err := editor.ParseColor(c.Color)
	if err != nil {
		return err
	}
	canvas := sprite.NewCanvas(sprite.WithCodec(codec.Files{JPEGQuality: c.Quality}))
	if err := canvas.Load(c.File); err != nil {
		return err
	}
	if err := canvas.SetPixel(c.X, c.Y, col.ToRGB()); err != nil {
		return fmt.Errorf("paint %d,%d: %w", c.X, c.Y, err)
	}
	if err := canvas.Save(c.Output); err != nil {
		return err
	}
	if f, err := codec.FormatOf(canvas.Path()); err == nil && !f.Lossless() {
		fmt.Fprintf(os.Stderr, "warning: %s is lossy; neighbouring pixels may change\n", f)
	}
	fmt.Fprintf(r.stdout, "painted %d,%d %s in %s\n", c.X, c.Y, editor.FormatColor(col), canvas.Path())
	return nil
}

type infoCmd struct {
	File string `arg:"" type:"existingfile" help:"Image to inspect."`
}

func (c *infoCmd) Run(r *root) error {
	canvas := sprite.NewCanvas()
	if err := canvas.Load(c.File); err != nil {
		return err
	}
	format := "unknown"
	if f, err := codec.FormatOf(c.File); err == nil {
		format = string(f) + " (lossy)"
		if f.Lossless() {
			format = string(f) + " (lossless)"
		}
	}
	fmt.Fprintf(r.stdout, "%s: %dx%d %s\n", filepath.Base(c.File), canvas.Width(), canvas.Height(), format)
	return nil
}

type exportCmd struct {
	File   string `arg:"" type:"existingfile" help:"Image to enlarge."`
	Output string `short:"o" required:"" type:"path" help:"Destination file; the extension picks the format."`
	Scale  int    `help:"Integer enlargement factor. Zero picks the largest that fits --max."`
	Max     string `default:"1024x1024" help:"Bounding box used when --scale is zero."`
	Quality int    `help:"JPEG quality (1-100); zero uses the default."`
}

func (c *exportCmd) Run(r *root) error {
	canvas := sprite.NewCanvas()
	if err := canvas.Load(c.File); err != nil {
		return err
	}
	factor := c.Scale
	if factor <= 0 {
		max, err := parseSize(c.Max)
		if err != nil {
			return err
		}
		factor = render.FitFactor(canvas.Size(), max)
	}
	out, err := saveImage(render.Upscale(canvas.Image(), factor), c.Output, c.Quality)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.stdout, "exported %s at %dx\n", out, factor)
	return nil
}

type previewCmd struct {
	File   string  `arg:"" type:"existingfile" help:"Image to render."`
	Output string  `short:"o" required:"" type:"path" help:"Destination file."`
	Size   string  `default:"800x600" help:"Window size to simulate."`
	Zoom   float64 `default:"1" help:"Zoom factor."`
	Grid    bool    `help:"Draw pixel grid lines when cells are large enough."`
	Quality int     `help:"JPEG quality (1-100); zero uses the default."`
}

func (c *previewCmd) Run(r *root) error {
	canvas := sprite.NewCanvas()
	if err := canvas.Load(c.File); err != nil {
		return err
	}
	size, err := parseSize(c.Size)
	if err != nil {
		return err
	}
	g := viewport.NewGeometry(size, canvas.Size(), c.Zoom)
	frame := render.Frame(canvas.Image(), g, r.theme.Background)
	if c.Grid {
		render.Grid(frame, g, r.theme.PanelBorder, 4)
	}
	out, err := saveImage(frame, c.Output, c.Quality)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.stdout, "rendered %s\n", out)
	return nil
}

// saveImage writes img through a canvas so it gets the same encoding and
// error wrapping as the editor.
func saveImage(img image.Image, path string, quality int) (string, error) {
	s, err := sprite.FromImage(img)
	if err != nil {
		return "", err
	}
	canvas := sprite.NewCanvas(sprite.WithImage(s, ""), sprite.WithCodec(codec.Files{JPEGQuality: quality}))
	if err := canvas.Save(path); err != nil {
		return "", err
	}
	return canvas.Path(), nil
}

// parseSize reads WIDTHxHEIGHT.
func parseSize(s string) (image.Point, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return image.Point{}, fmt.Errorf("size %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return image.Point{}, fmt.Errorf("size %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return image.Point{}, fmt.Errorf("size %q must be positive", s)
	}
	return image.Pt(width, height), nil
}
