// Package theme describes the colours of the editor chrome: the backdrop
// behind the sprite, the menu bar and the colour picker panel.
package theme

import (
	"image/color"
)

// Theme defines the colour palette for the editor UI.
type Theme struct {
	Name string

	// Backdrop behind the sprite quad.
	Background color.RGBA

	// Menu bar
	MenuBackground color.RGBA
	MenuText       color.RGBA
	MenuHover      color.RGBA
	MenuHoverText  color.RGBA
	MenuBorder     color.RGBA

	// Colour picker panel
	PanelBackground color.RGBA
	PanelText       color.RGBA
	PanelBorder     color.RGBA
	SwatchBorder    color.RGBA
	SwatchSelected  color.RGBA
	ChannelTrack    color.RGBA
}

// Default returns the built-in dark theme. The backdrop is the 20% grey the
// editor has always cleared to.
func Default() *Theme {
	return &Theme{
		Name:            "Default",
		Background:      color.RGBA{51, 51, 51, 255},
		MenuBackground:  color.RGBA{36, 36, 36, 255},
		MenuText:        color.RGBA{220, 220, 220, 255},
		MenuHover:       color.RGBA{66, 150, 250, 255},
		MenuHoverText:   color.RGBA{255, 255, 255, 255},
		MenuBorder:      color.RGBA{80, 80, 80, 255},
		PanelBackground: color.RGBA{30, 30, 30, 240},
		PanelText:       color.RGBA{220, 220, 220, 255},
		PanelBorder:     color.RGBA{90, 90, 90, 255},
		SwatchBorder:    color.RGBA{0, 0, 0, 255},
		SwatchSelected:  color.RGBA{255, 255, 255, 255},
		ChannelTrack:    color.RGBA{60, 60, 60, 255},
	}
}
