package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tracelet/internal/ast"
	"tracelet/internal/bundle"
	"tracelet/internal/diag"
	"tracelet/internal/interp"
	"tracelet/internal/printer"
	"tracelet/internal/source"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <script> [args...]",
	Short: "Instrument a script and execute it",
	Long:  `Run rewrites the script with trace statements and executes it; the trace goes to stderr. A pre-instrumented ` + bundle.Ext + ` bundle runs as-is.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExecution,
}

func init() {
	addInstrumentFlags(runCmd)
	runCmd.Flags().Bool("show", false, "print the instrumented source to stderr before running")
}

func runExecution(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]
	scriptArgs := args[1:]

	var prog *ast.Program
	var fs *source.FileSet

	if strings.HasSuffix(scriptPath, bundle.Ext) {
		loaded, err := bundle.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("failed to load bundle: %w", err)
		}
		prog = loaded
	} else {
		res, err := loadScript(cmd, scriptPath)
		if err != nil {
			return err
		}
		opts, err := instrumentOptions(cmd, scriptPath)
		if err != nil {
			return err
		}
		if err := instrumentScript(res, opts); err != nil {
			return err
		}
		prog = res.Prog
		fs = res.FileSet
	}

	show, err := cmd.Flags().GetBool("show")
	if err != nil {
		return fmt.Errorf("failed to get show flag: %w", err)
	}
	if show {
		fmt.Fprint(os.Stderr, printer.Print(prog, printer.Options{}))
	}

	if err := interp.Run(prog, scriptPath, scriptArgs, interp.Options{}); err != nil {
		var rtErr *interp.RuntimeError
		if errors.As(err, &rtErr) {
			if fs != nil {
				diag.Render(os.Stderr, rtErr.Diagnostic(), fs)
			} else {
				// Bundles carry no sources; print the backtrace without
				// positions.
				fmt.Fprint(os.Stderr, rtErr.FormatBacktrace(fs))
			}
			return errors.New("script failed")
		}
		return err
	}
	return nil
}
