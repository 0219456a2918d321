package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tracelet/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	posColor  = color.New(color.Bold)
)

func sevColor(sev Severity) *color.Color {
	switch sev {
	case SevWarning:
		return warnColor
	case SevInfo:
		return infoColor
	default:
		return errColor
	}
}

// Render writes one diagnostic in the form
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	    <source line>
//	    ^~~~
//
// followed by its notes in the same shape.
func Render(w io.Writer, d Diagnostic, fs *source.FileSet) {
	renderOne(w, sevColor(d.Severity), d.Severity.String(), d.Code.ID(), d.Primary, d.Message, fs)
	for _, n := range d.Notes {
		renderOne(w, infoColor, "NOTE", "", n.Span, n.Msg, fs)
	}
}

// RenderBag writes every diagnostic in the bag.
func RenderBag(w io.Writer, bag *Bag, fs *source.FileSet) {
	for _, d := range bag.Items() {
		Render(w, d, fs)
	}
}

func renderOne(w io.Writer, c *color.Color, sev, code string, sp source.Span, msg string, fs *source.FileSet) {
	head := sev
	if code != "" {
		head = sev + " " + code
	}
	if fs == nil {
		fmt.Fprintf(w, "%s: %s\n", c.Sprint(head), msg)
		return
	}
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	fmt.Fprintf(w, "%s: %s: %s\n",
		posColor.Sprintf("%s:%d:%d", f.Path, start.Line, start.Col),
		c.Sprint(head), msg)

	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)

	// Underline the span portion that falls on the first line.
	width := int(sp.Len())
	if width < 1 {
		width = 1
	}
	if rest := len(line) - int(start.Col-1); width > rest {
		width = rest
	}
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", int(start.Col-1)), c.Sprint(marker))
}
