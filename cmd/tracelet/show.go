package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tracelet/internal/printer"
)

var showCmd = &cobra.Command{
	Use:   "show [flags] <script>",
	Short: "Print the instrumented source without running it",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	addInstrumentFlags(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	res, err := loadScript(cmd, args[0])
	if err != nil {
		return err
	}
	opts, err := instrumentOptions(cmd, args[0])
	if err != nil {
		return err
	}
	if err := instrumentScript(res, opts); err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, printer.Print(res.Prog, printer.Options{}))
	return nil
}
