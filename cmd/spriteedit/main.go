// Command spriteedit is a minimal pixel editor: one image, two colours and
// a zoomable canvas.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/example/spriteedit/internal/config"
	"github.com/example/spriteedit/internal/notify"
	"github.com/example/spriteedit/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type cli struct {
	ConfigPath string `name:"config" help:"Path to the config file." type:"path" placeholder:"PATH" env:"SPRITEEDIT_CONFIG"`
	Theme      string `help:"Colour theme name or theme file." env:"SPRITEEDIT_THEME"`

	Edit    editCmd    `cmd:"" default:"withargs" help:"Open the editor window."`
	Paint   paintCmd   `cmd:"" help:"Set one pixel without opening a window."`
	Info    infoCmd    `cmd:"" help:"Print image size and format."`
	Export  exportCmd  `cmd:"" help:"Write a nearest-neighbour enlargement."`
	Preview previewCmd `cmd:"" help:"Render the editor view of an image to a file."`
	Grab    grabCmd    `cmd:"" help:"Capture the screen into a new image file."`
	Themes  themesCmd  `cmd:"" help:"List the themes --theme accepts."`
	Config  configCmd  `cmd:"" help:"Show or save the configuration."`
	Version versionCmd `cmd:"" help:"Print the version."`
}

// root carries what every command needs once flags are parsed.
type root struct {
	program    string
	stdout     io.Writer
	configPath string
	config     *config.Config
	notifier   *notify.Notifier
	theme      *theme.Theme
}

func newRoot(stdout io.Writer, configPath, themeName string) *root {
	if configPath == "" {
		configPath = configPathOverride
	}
	loader := config.NewLoader(version, configPath)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		program:    "spriteedit",
		stdout:     stdout,
		configPath: configPath,
		config:     cfg,
		notifier:   notify.New(notify.LoadPreferences()),
	}
	r.notifier.Enable(notify.EventOpen, cfg.Notify.Open)
	r.notifier.Enable(notify.EventSave, cfg.Notify.Save)
	r.notifier.Enable(notify.EventCopy, cfg.Notify.Copy)

	// Precedence: CLI > Env (both via kong) > Config > Default
	if themeName == "" {
		themeName = cfg.Theme
	}
	r.theme = resolveTheme(cfg, themeName)
	return r
}

func resolveTheme(cfg *config.Config, name string) *theme.Theme {
	loader := theme.NewLoader()
	loader.Custom = cfg.Themes
	t, err := loader.Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

func run(args []string, stdout io.Writer) error {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("spriteedit"),
		kong.Description("A minimal sprite editor."),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kctx.Run(newRoot(stdout, c.ConfigPath, c.Theme))
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
