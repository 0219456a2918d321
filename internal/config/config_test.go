package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"tracelet/internal/config"
	"tracelet/internal/instrument"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesTraceSection(t *testing.T) {
	path := writeConfig(t, "[trace]\nfidelity = \"reduced\"\nindent = 4\n")

	opts, err := config.Load(path, instrument.DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if opts.Fidelity != instrument.FidelityReduced {
		t.Fatalf("fidelity = %v", opts.Fidelity)
	}
	if opts.IndentWidth != 4 {
		t.Fatalf("indent = %d", opts.IndentWidth)
	}
}

func TestLoadKeepsDefaultsForAbsentKeys(t *testing.T) {
	path := writeConfig(t, "[trace]\nindent = 3\n")

	opts, err := config.Load(path, instrument.DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if opts.Fidelity != instrument.FidelityFull {
		t.Fatalf("fidelity changed: %v", opts.Fidelity)
	}
	if opts.IndentWidth != 3 {
		t.Fatalf("indent = %d", opts.IndentWidth)
	}
}

func TestLoadColorOverrides(t *testing.T) {
	path := writeConfig(t, "[colors]\nfunc = \"blue\"\nret = \"white\"\n")

	opts, err := config.Load(path, instrument.Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if opts.Styles.Func == nil || opts.Styles.Return == nil {
		t.Fatalf("overridden styles are nil")
	}
	// Untouched categories keep their defaults rather than going nil.
	if opts.Styles.Name == nil || opts.Styles.Const == nil || opts.Styles.FuncCalled == nil {
		t.Fatalf("default styles were dropped")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad fidelity", "[trace]\nfidelity = \"verbose\"\n"},
		{"bad color name", "[colors]\nfunc = \"mauve\"\n"},
		{"bad color key", "[colors]\nbackground = \"red\"\n"},
		{"bad syntax", "[trace\n"},
	}
	for _, tt := range tests {
		path := writeConfig(t, tt.content)
		if _, err := config.Load(path, instrument.DefaultOptions()); err == nil {
			t.Fatalf("%s: expected an error", tt.name)
		}
	}
}
