// Package config reads and writes the editor's RC-format settings file.
package config

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/example/spriteedit/internal/theme"
)

// Backend names.
const (
	BackendShiny = "shiny"
	BackendGL    = "gl"
)

// Notify holds notification settings.
type Notify struct {
	Open bool
	Save bool
	Copy bool
}

// Colors holds the initial picker colours as written by the user: hex,
// palette name or SVG colour name.
type Colors struct {
	Primary   string
	Secondary string
}

// Config holds the application configuration.
type Config struct {
	Theme        string
	OpenDir      string
	Zoom         float64
	ZoomModifier string
	Backend      string
	Colors       Colors
	Notify       Notify
	Themes       map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Theme:        "", // empty so CLI and environment can fill it in
		Zoom:         1,
		ZoomModifier: "control",
		Backend:      BackendShiny,
		Colors: Colors{
			Primary:   "#000000",
			Secondary: "#FFFFFF",
		},
		Notify: Notify{Save: true},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.OpenDir != "" {
		fmt.Fprintf(&sb, "open_dir = %s\n", c.OpenDir)
	}
	fmt.Fprintf(&sb, "zoom = %s\n", strconv.FormatFloat(c.Zoom, 'g', -1, 64))
	fmt.Fprintf(&sb, "zoom_modifier = %s\n", c.ZoomModifier)
	fmt.Fprintf(&sb, "backend = %s\n", c.Backend)
	sb.WriteString("\n")

	sb.WriteString("[colors]\n")
	fmt.Fprintf(&sb, "primary = %s\n", c.Colors.Primary)
	fmt.Fprintf(&sb, "secondary = %s\n", c.Colors.Secondary)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "open = %v\n", c.Notify.Open)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		t.Fields(func(field string, col color.RGBA) {
			fmt.Fprintf(&sb, "%s: %s\n", field, theme.FormatColor(col))
		})
		sb.WriteString("\n")
	}

	return sb.String()
}
