package main

import (
	"bytes"
	"errors"
	"flag"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/mandelterm/internal/config"
	"github.com/dshills/mandelterm/internal/renderer/backend"
)

func TestParseFlags_OnlyExplicitOverrides(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := parseFlags([]string{"-c", "m.toml", "-width", "100", "-no-wait", "-output", "ansi"}, &stderr)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if opts.configPath != "m.toml" {
		t.Errorf("expected config path m.toml, got %q", opts.configPath)
	}
	want := map[string]any{
		"render.width":      100,
		"render.waitForKey": false,
		"output.mode":       "ansi",
	}
	if !reflect.DeepEqual(opts.overrides, want) {
		t.Errorf("expected overrides %v, got %v", want, opts.overrides)
	}
}

func TestParseFlags_NoFlags(t *testing.T) {
	opts, err := parseFlags(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if len(opts.overrides) != 0 {
		t.Errorf("expected no overrides, got %v", opts.overrides)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	var stderr bytes.Buffer
	if _, err := parseFlags([]string{"extra"}, &stderr); err == nil {
		t.Error("expected error for positional arguments")
	}
	if !strings.Contains(stderr.String(), "Usage: mandelterm") {
		t.Errorf("expected usage text, got %q", stderr.String())
	}

	if _, err := parseFlags([]string{"-h"}, &bytes.Buffer{}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
	if _, err := parseFlags([]string{"-width", "wide"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for non-numeric width")
	}
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("MANDELTERM_WIDTH", "50")
	t.Setenv("MANDELTERM_HEIGHT", "20")

	opts, err := parseFlags([]string{"-width", "30"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Render.Width != 30 || cfg.Render.Height != 20 {
		t.Errorf("expected 30x20, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		mode  string
		isTTY bool
		want  string
	}{
		{config.OutputAuto, true, config.OutputTerminal},
		{config.OutputAuto, false, config.OutputANSI},
		{config.OutputANSI, true, config.OutputANSI},
		{config.OutputTerminal, false, config.OutputTerminal},
	}
	for _, tt := range tests {
		if got := resolveMode(tt.mode, tt.isTTY); got != tt.want {
			t.Errorf("resolveMode(%q, %v) = %q, expected %q", tt.mode, tt.isTTY, got, tt.want)
		}
	}
}

func TestNewBackend_StreamSize(t *testing.T) {
	cfg := config.Default()
	cfg.Render.OriginX, cfg.Render.OriginY = 2, 1

	b, err := newBackend(cfg, config.OutputANSI, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("newBackend: %v", err)
	}
	if _, ok := b.(*backend.Stream); !ok {
		t.Fatalf("expected *backend.Stream, got %T", b)
	}
	if w, h := b.Size(); w != 82 || h != 40 {
		t.Errorf("expected 82x40, got %dx%d", w, h)
	}
}

func TestNewLogger_TerminalWithoutFileIsSilent(t *testing.T) {
	cfg := config.Default()
	l, closeLog, err := newLogger(cfg, config.OutputTerminal)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	defer closeLog()
	// Must not write to the terminal.
	l.Error("hidden")
}
