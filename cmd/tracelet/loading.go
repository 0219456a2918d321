package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tracelet/internal/ast"
	"tracelet/internal/config"
	"tracelet/internal/diag"
	"tracelet/internal/instrument"
	"tracelet/internal/lexer"
	"tracelet/internal/parser"
	"tracelet/internal/source"
)

var errParseFailed = errors.New("script has syntax errors")

// loadResult bundles what every command needs after the front end ran.
type loadResult struct {
	Prog    *ast.Program
	FileSet *source.FileSet
	File    source.FileID
}

// loadScript lexes and parses a script, rendering any diagnostics to
// stderr.
func loadScript(cmd *cobra.Command, path string) (*loadResult, error) {
	maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	rep := diag.NewBagReporter(maxDiags)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: rep})
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lx, b, parser.Options{MaxErrors: uint(maxDiags), Reporter: rep})

	if res.Bag.Len() > 0 {
		diag.RenderBag(os.Stderr, res.Bag, fs)
	}
	if res.Bag.HasErrors() {
		return nil, errParseFailed
	}
	return &loadResult{Prog: res.Program, FileSet: fs, File: fileID}, nil
}

// instrumentOptions assembles instrumentation options from the config
// file (explicit --config, or tracelet.toml next to the script) and the
// command's flag overrides.
func instrumentOptions(cmd *cobra.Command, scriptPath string) (instrument.Options, error) {
	opts := instrument.DefaultOptions()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return opts, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath == "" {
		implicit := filepath.Join(filepath.Dir(scriptPath), config.DefaultFile)
		if _, statErr := os.Stat(implicit); statErr == nil {
			configPath = implicit
		}
	}
	if configPath != "" {
		opts, err = config.Load(configPath, opts)
		if err != nil {
			return opts, err
		}
	}

	if cmd.Flags().Changed("fidelity") {
		raw, err := cmd.Flags().GetString("fidelity")
		if err != nil {
			return opts, fmt.Errorf("failed to get fidelity flag: %w", err)
		}
		fidelity, err := instrument.ParseFidelity(raw)
		if err != nil {
			return opts, err
		}
		opts.Fidelity = fidelity
	}
	if cmd.Flags().Changed("indent") {
		indent, err := cmd.Flags().GetInt("indent")
		if err != nil {
			return opts, fmt.Errorf("failed to get indent flag: %w", err)
		}
		opts.IndentWidth = indent
	}
	return opts, nil
}

// instrumentScript runs the rewrite, rendering a rewrite error as a
// diagnostic.
func instrumentScript(res *loadResult, opts instrument.Options) error {
	if err := instrument.Instrument(res.Prog, opts); err != nil {
		var rwErr *instrument.Error
		if errors.As(err, &rwErr) {
			diag.Render(os.Stderr, rwErr.Diagnostic(), res.FileSet)
			return errors.New("instrumentation failed")
		}
		return err
	}
	return nil
}

// addInstrumentFlags registers the flags shared by run, show, and build.
func addInstrumentFlags(cmd *cobra.Command) {
	cmd.Flags().String("fidelity", "full", "trace fidelity (full|reduced)")
	cmd.Flags().Int("indent", 2, "spaces per call depth level")
	cmd.Flags().String("config", "", "path to tracelet.toml")
}
