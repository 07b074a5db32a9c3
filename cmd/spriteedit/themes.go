package main

import (
	"fmt"

	"github.com/example/spriteedit/internal/theme"
)

type themesCmd struct{}

func (c *themesCmd) Run(r *root) error {
	loader := theme.NewLoader()
	loader.Custom = r.config.Themes
	for _, name := range loader.Names() {
		fmt.Fprintln(r.stdout, name)
	}
	return nil
}
