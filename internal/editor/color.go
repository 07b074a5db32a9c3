package editor

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/spriteedit/internal/sprite"
)

// RGBA is a colour with float components in [0, 1], the form the colour
// picker edits.
type RGBA struct {
	R, G, B, A float32
}

// ToRGB converts to 8-bit channels, rounding to nearest and clamping.
func (c RGBA) ToRGB() sprite.RGB {
	return sprite.RGB{R: unitToByte(c.R), G: unitToByte(c.G), B: unitToByte(c.B)}
}

// RGBA implements color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{unitToByte(c.R), unitToByte(c.G), unitToByte(c.B), unitToByte(c.A)}.RGBA()
}

// RGBAFromColor converts any colour to float components.
func RGBAFromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

func unitToByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Slot selects which of the two active colours an edit targets.
type Slot int

const (
	SlotPrimary Slot = iota
	SlotSecondary
)

func (s Slot) String() string {
	if s == SlotSecondary {
		return "secondary"
	}
	return "primary"
}

// ActiveColor holds the colours painted by the left and right buttons.
type ActiveColor struct {
	Primary   RGBA
	Secondary RGBA
}

// DefaultActiveColor returns black on the left button and white on the
// right.
func DefaultActiveColor() ActiveColor {
	return ActiveColor{
		Primary:   RGBA{0, 0, 0, 1},
		Secondary: RGBA{1, 1, 1, 1},
	}
}

// Get returns the colour in slot s.
func (a ActiveColor) Get(s Slot) RGBA {
	if s == SlotSecondary {
		return a.Secondary
	}
	return a.Primary
}

// Set replaces the colour in slot s.
func (a *ActiveColor) Set(s Slot, c RGBA) {
	if s == SlotSecondary {
		a.Secondary = c
		return
	}
	a.Primary = c
}

// PaletteColor is a named swatch shown in the picker.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var palette = []PaletteColor{
	{"Black", color.RGBA{0, 0, 0, 255}},
	{"White", color.RGBA{255, 255, 255, 255}},
	{"Red", color.RGBA{255, 0, 0, 255}},
	{"Lime", color.RGBA{0, 255, 0, 255}},
	{"Blue", color.RGBA{0, 0, 255, 255}},
	{"Yellow", color.RGBA{255, 255, 0, 255}},
	{"Cyan", color.RGBA{0, 255, 255, 255}},
	{"Magenta", color.RGBA{255, 0, 255, 255}},
	{"Maroon", color.RGBA{128, 0, 0, 255}},
	{"Green", color.RGBA{0, 128, 0, 255}},
	{"Navy", color.RGBA{0, 0, 128, 255}},
	{"Olive", color.RGBA{128, 128, 0, 255}},
	{"Teal", color.RGBA{0, 128, 128, 255}},
	{"Purple", color.RGBA{128, 0, 128, 255}},
	{"Silver", color.RGBA{192, 192, 192, 255}},
	{"Gray", color.RGBA{128, 128, 128, 255}},
}

// Palette returns a copy of the picker swatches.
func Palette() []PaletteColor {
	out := make([]PaletteColor, len(palette))
	copy(out, palette)
	return out
}

// ParseColor accepts #RGB, #RRGGBB, #RRGGBBAA, a palette name or an SVG
// colour name.
func ParseColor(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGBA{}, fmt.Errorf("empty colour")
	}
	if strings.HasPrefix(s, "#") {
		c, err := parseHex(s[1:])
		if err != nil {
			return RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		return RGBAFromColor(c), nil
	}
	for _, p := range palette {
		if strings.EqualFold(p.Name, s) {
			return RGBAFromColor(p.Color), nil
		}
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGBAFromColor(c), nil
	}
	return RGBA{}, fmt.Errorf("unknown colour %q", s)
}

// FormatColor renders c as #RRGGBB.
func FormatColor(c RGBA) string {
	rgb := c.ToRGB()
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

func parseHex(h string) (color.NRGBA, error) {
	switch len(h) {
	case 3:
		v, err := strconv.ParseUint(h, 16, 16)
		if err != nil {
			return color.NRGBA{}, err
		}
		r := uint8(v>>8) & 0xF
		g := uint8(v>>4) & 0xF
		b := uint8(v) & 0xF
		return color.NRGBA{r * 17, g * 17, b * 17, 255}, nil
	case 6, 8:
		v, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		if len(h) == 6 {
			v = v<<8 | 0xFF
		}
		return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
	}
	return color.NRGBA{}, fmt.Errorf("want 3, 6 or 8 hex digits, got %d", len(h))
}
