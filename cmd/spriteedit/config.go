package main

import (
	"fmt"
	"os"

	"github.com/example/spriteedit/internal/config"
)

type configCmd struct {
	Print configPrintCmd `cmd:"" help:"Print the effective configuration."`
	Save  configSaveCmd  `cmd:"" help:"Write the effective configuration to the config file."`
}

type configPrintCmd struct{}

func (c *configPrintCmd) Run(r *root) error {
	fmt.Fprint(r.stdout, r.config.String())
	return nil
}

type configSaveCmd struct{}

func (c *configSaveCmd) Run(r *root) error {
	path, err := config.NewLoader(version, r.configPath).Save(r.config)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}
