package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/spriteedit/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := strings.TrimPrefix(currentSection, "theme.")
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		key, value, ok := splitKeyValue(line, currentTheme != nil)
		if !ok {
			continue
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.SetField(currentTheme, key, value)
		case currentSection == "colors":
			err = setColorsField(&cfg.Colors, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			section := currentSection
			if section == "" {
				section = "root"
			}
			return nil, fmt.Errorf("line %d [%s]: %w", lineNo, section, err)
		}
	}

	return cfg, scanner.Err()
}

// splitKeyValue accepts "key = value" and "key: value". Theme sections
// prefer ':' because colour values contain no colons but do contain '#'.
func splitKeyValue(line string, preferColon bool) (key, value string, ok bool) {
	seps := []string{"=", ":"}
	if preferColon {
		seps = []string{":", "="}
	}
	for _, sep := range seps {
		if k, v, found := strings.Cut(line, sep); found {
			key = strings.TrimSpace(k)
			value = strings.TrimSpace(v)
			if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
				value = value[1 : len(value)-1]
			}
			return key, value, true
		}
	}
	return "", "", false
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "open_dir":
		cfg.OpenDir = value
	case "zoom":
		z, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid zoom: %w", err)
		}
		if z <= 0 {
			return fmt.Errorf("zoom must be positive, got %v", z)
		}
		cfg.Zoom = z
	case "zoom_modifier":
		cfg.ZoomModifier = strings.ToLower(value)
	case "backend":
		switch strings.ToLower(value) {
		case BackendShiny, BackendGL:
			cfg.Backend = strings.ToLower(value)
		default:
			return fmt.Errorf("unknown backend %q", value)
		}
	}
	return nil
}

func setColorsField(c *Colors, key, value string) error {
	switch strings.ToLower(key) {
	case "primary":
		c.Primary = value
	case "secondary":
		c.Secondary = value
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "open":
		n.Open = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}
