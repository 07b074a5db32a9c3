package main

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/example/spriteedit/internal/capture"
)

type grabCmd struct {
	Output      string `arg:"" type:"path" help:"Destination file; the extension picks the format."`
	Monitor     string `help:"Monitor index, name or 'primary'."`
	Region      string `help:"Crop to X,Y,WIDTH,HEIGHT in screen coordinates."`
	Interactive bool   `help:"Let the desktop portal show its own picker."`
	Cursor      bool   `help:"Include the pointer when the portal supports it."`
}

func (c *grabCmd) Run(r *root) error {
	opts := capture.Options{
		Monitor:       c.Monitor,
		Interactive:   c.Interactive,
		IncludeCursor: c.Cursor,
	}
	if c.Region != "" {
		rect, err := parseRegion(c.Region)
		if err != nil {
			return err
		}
		opts.Region = rect
	}
	img, err := captureScreen(context.Background(), opts)
	if err != nil {
		return fmt.Errorf("failed to capture screen: %w", err)
	}
	out, err := saveImage(img, c.Output, 0)
	if err != nil {
		return err
	}
	b := img.Bounds()
	fmt.Fprintf(r.stdout, "captured %dx%d to %s\n", b.Dx(), b.Dy(), out)
	return nil
}

// parseRegion reads X,Y,WIDTH,HEIGHT.
func parseRegion(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("region %q: want X,Y,WIDTH,HEIGHT", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("region %q must have a positive size", s)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}
