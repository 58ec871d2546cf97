package config

import (
	"flag"
	"fmt"
	"io"
)

// Parse builds the configuration for a command line: Default, then the file
// named by -config, then any other flags that were given. Only flags present
// in args override file values. Validation runs once, after the overrides.
func Parse(name string, args []string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		path      = fs.String("config", "", "TOML config file")
		assets    = fs.String("assets", "", "asset directory")
		model     = fs.String("model", "", "glTF or GLB model attached to the sun")
		debugUI   = fs.Bool("debug-ui", false, "show the debug overlay")
		resizable = fs.Bool("resizable", true, "follow window resizes")
		width     = fs.Int("width", 0, "window width")
		height    = fs.Int("height", 0, "window height")
		logLevel  = fs.String("log-level", "", "log level: debug, info, warn or error")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("%w: unexpected arguments %q", ErrInvalid, fs.Args())
	}

	cfg := Default()
	if *path != "" {
		if err := decodeFile(*path, &cfg); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "assets":
			cfg.Assets.Dir = *assets
		case "model":
			cfg.Assets.Model = *model
		case "debug-ui":
			cfg.Debug.UI = *debugUI
		case "resizable":
			cfg.Window.Resizable = *resizable
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})

	return cfg, cfg.Validate()
}
