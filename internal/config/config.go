// Package config loads tracelet.toml:
//
//	[trace]
//	fidelity = "full"   # or "reduced"
//	indent = 2
//
//	[colors]
//	func = "red"
//	func_called = "yellow"
//	ret = "magenta"
//	name = "green"
//	const = "cyan"
//
// Every key is optional; absent keys keep their defaults.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"tracelet/internal/instrument"
)

// DefaultFile is the file name looked up next to the script when no
// explicit --config is given.
const DefaultFile = "tracelet.toml"

type fileConfig struct {
	Trace struct {
		Fidelity string `toml:"fidelity"`
		Indent   int    `toml:"indent"`
	} `toml:"trace"`
	Colors map[string]string `toml:"colors"`
}

// Load parses path and applies it on top of opts.
func Load(path string, opts instrument.Options) (instrument.Options, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return opts, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if meta.IsDefined("trace", "fidelity") {
		fidelity, err := instrument.ParseFidelity(cfg.Trace.Fidelity)
		if err != nil {
			return opts, fmt.Errorf("%s: %w", path, err)
		}
		opts.Fidelity = fidelity
	}
	if meta.IsDefined("trace", "indent") {
		opts.IndentWidth = cfg.Trace.Indent
	}

	if len(cfg.Colors) > 0 && opts.Styles == (instrument.Styles{}) {
		opts.Styles = instrument.DefaultStyles()
	}
	for key, name := range cfg.Colors {
		c, ok := instrument.ColorByName(name)
		if !ok {
			return opts, fmt.Errorf("%s: unknown color %q for %q", path, name, key)
		}
		switch key {
		case "func":
			opts.Styles.Func = c
		case "func_called":
			opts.Styles.FuncCalled = c
		case "ret":
			opts.Styles.Return = c
		case "name":
			opts.Styles.Name = c
		case "const":
			opts.Styles.Const = c
		default:
			return opts, fmt.Errorf("%s: unknown color key %q", path, key)
		}
	}
	return opts, nil
}
