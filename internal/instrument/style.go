package instrument

import (
	"github.com/fatih/color"
)

// Styles maps the five trace categories to their colors. The partition
// is fixed; the concrete colors are presentation and can be overridden
// from configuration. Disabling color entirely goes through
// color.NoColor, as everywhere else.
type Styles struct {
	// Func colors call-site callee names and assignment echoes.
	Func *color.Color
	// FuncCalled colors the function name on entry lines.
	FuncCalled *color.Color
	// Return colors exit lines and the return keyword.
	Return *color.Color
	// Name colors identifier reads.
	Name *color.Color
	// Const colors literal constants.
	Const *color.Color
}

// DefaultStyles matches the traditional palette: red call sites, yellow
// entries, magenta returns, green names, cyan constants.
func DefaultStyles() Styles {
	return Styles{
		Func:       color.New(color.FgRed),
		FuncCalled: color.New(color.FgYellow),
		Return:     color.New(color.FgMagenta),
		Name:       color.New(color.FgGreen),
		Const:      color.New(color.FgCyan),
	}
}

// ColorByName resolves a config color name; ok is false for unknown
// names.
func ColorByName(name string) (*color.Color, bool) {
	switch name {
	case "black":
		return color.New(color.FgBlack), true
	case "red":
		return color.New(color.FgRed), true
	case "green":
		return color.New(color.FgGreen), true
	case "yellow":
		return color.New(color.FgYellow), true
	case "blue":
		return color.New(color.FgBlue), true
	case "magenta":
		return color.New(color.FgMagenta), true
	case "cyan":
		return color.New(color.FgCyan), true
	case "white":
		return color.New(color.FgWhite), true
	}
	return nil, false
}
