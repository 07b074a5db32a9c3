package main

import (
	"fmt"

	"github.com/example/spriteedit/internal/ui"
)

type versionCmd struct{}

func (v *versionCmd) Run(r *root) error {
	fmt.Fprintf(r.stdout, "%s version %s\n", r.program, version)
	if commit != "" {
		fmt.Fprintf(r.stdout, "commit %s built %s\n", commit, date)
	}
	backends := "shiny"
	if ui.GLAvailable {
		backends += ", gl"
	}
	fmt.Fprintf(r.stdout, "backends: %s\n", backends)
	return nil
}
