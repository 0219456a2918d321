package instrument

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Fidelity selects how much detail the instrumentation includes.
type Fidelity uint8

const (
	// FidelityFull traces return values and renders call arguments
	// recursively.
	FidelityFull Fidelity = iota
	// FidelityReduced skips exit trace lines and renders every call
	// argument list as an ellipsis.
	FidelityReduced
)

func (f Fidelity) String() string {
	if f == FidelityReduced {
		return "reduced"
	}
	return "full"
}

// ParseFidelity maps a flag or config value to a Fidelity.
func ParseFidelity(s string) (Fidelity, error) {
	switch s {
	case "full", "":
		return FidelityFull, nil
	case "reduced":
		return FidelityReduced, nil
	}
	return FidelityFull, fmt.Errorf("unknown fidelity %q (want full or reduced)", s)
}

// Entry/exit markers sit one level to the left of the block they
// bracket, so their width must not exceed the indent step.
const (
	entryPrefix = "> "
	exitPrefix  = "< "
)

// Options configures one instrumentation run.
type Options struct {
	Fidelity    Fidelity
	IndentWidth int // spaces per depth level; default 2
	Styles      Styles
}

// DefaultOptions returns full fidelity with the default palette.
func DefaultOptions() Options {
	return Options{
		Fidelity:    FidelityFull,
		IndentWidth: 2,
		Styles:      DefaultStyles(),
	}
}

// validate fills defaults and rejects impossible configurations. It is
// called once per run; prefix checks do not repeat per statement.
func (o *Options) validate() error {
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	if o.IndentWidth < 1 {
		return &Error{Code: ErrConfig, Msg: fmt.Sprintf("indent width %d is below 1", o.IndentWidth)}
	}
	for _, prefix := range []string{entryPrefix, exitPrefix} {
		if w := runewidth.StringWidth(prefix); w > o.IndentWidth {
			return &Error{Code: ErrConfig, Msg: fmt.Sprintf(
				"prefix %q is wider (%d) than the indent width %d", prefix, w, o.IndentWidth)}
		}
	}
	if o.Styles == (Styles{}) {
		o.Styles = DefaultStyles()
	}
	return nil
}
