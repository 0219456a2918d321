package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tracelet/internal/bundle"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] <script>",
	Short: "Instrument a script and serialize it to a bundle",
	Long:  `Build rewrites the script once and writes the result as a ` + bundle.Ext + ` bundle that run executes without re-instrumenting.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	addInstrumentFlags(buildCmd)
	buildCmd.Flags().StringP("output", "o", "", "output path (default: script name with "+bundle.Ext+")")
}

func runBuild(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]

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

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	if output == "" {
		output = defaultBundleName(scriptPath)
	}
	if err := bundle.WriteFile(output, res.Prog); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
	return nil
}

func defaultBundleName(scriptPath string) string {
	if i := strings.LastIndexByte(scriptPath, '.'); i > 0 && !strings.ContainsRune(scriptPath[i:], '/') {
		return scriptPath[:i] + bundle.Ext
	}
	return scriptPath + bundle.Ext
}
