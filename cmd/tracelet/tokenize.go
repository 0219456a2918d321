package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tracelet/internal/diag"
	"tracelet/internal/lexer"
	"tracelet/internal/source"
	"tracelet/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <script>",
	Short: "Break a script into its tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	rep := diag.NewBagReporter(maxDiags)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: rep})

	for {
		tok := lx.Next()
		start, _ := fs.Resolve(tok.Span)
		if tok.Text != "" && tok.Kind != token.Newline {
			fmt.Fprintf(os.Stdout, "%d:%d\t%s\t%q\n", start.Line, start.Col, tok.Kind, tok.Text)
		} else {
			fmt.Fprintf(os.Stdout, "%d:%d\t%s\n", start.Line, start.Col, tok.Kind)
		}
		if tok.Kind == token.EOF {
			break
		}
	}

	if rep.Bag.Len() > 0 {
		diag.RenderBag(os.Stderr, rep.Bag, fs)
		if rep.Bag.HasErrors() {
			return fmt.Errorf("tokenization failed")
		}
	}
	return nil
}
