// Package main is the entry point for mandelterm, a terminal Mandelbrot
// viewer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/mandelterm/internal/app"
	"github.com/dshills/mandelterm/internal/config"
	"github.com/dshills/mandelterm/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// cliOptions holds parsed command line flags.
type cliOptions struct {
	configPath  string
	showVersion bool

	// overrides holds settings for flags that were given explicitly.
	overrides map[string]any
}

func run(args []string) int {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Printf("mandelterm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	mode := resolveMode(cfg.Output.Mode, term.IsTerminal(int(os.Stdout.Fd())))
	if mode == config.OutputANSI {
		// A stream has no input to wait on.
		cfg.Render.WaitForKey = false
	}

	logger, closeLog, err := newLogger(cfg, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	application, err := app.New(app.Options{Config: cfg, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	b, err := newBackend(cfg, mode, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(b); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil && !errors.Is(err, app.ErrQuit) {
		logger.Error("run failed: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if s, ok := b.(*backend.Stream); ok && s.Err() != nil {
		fmt.Fprintf(os.Stderr, "Error: writing output: %v\n", s.Err())
		return 1
	}
	return 0
}

// parseFlags parses args. Only flags present on the command line become
// overrides, so unset flags never mask file or environment settings.
func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("mandelterm", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	width := fs.Int("width", 80, "Grid width in cells")
	height := fs.Int("height", 39, "Grid height in cells")
	originX := fs.Int("x", 0, "Column of the top-left cell")
	originY := fs.Int("y", 0, "Row of the top-left cell")
	fit := fs.Bool("fit", false, "Size the grid to the terminal")
	preview := fs.Bool("palette", false, "Draw the palette instead of the set")
	noWait := fs.Bool("no-wait", false, "Exit right after drawing")
	output := fs.String("output", config.OutputAuto, "Output mode (auto, terminal, ansi)")
	logLevel := fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := fs.String("log-file", "", "Write logs to this file")
	watch := fs.Bool("watch", false, "Redraw when the config file changes")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "mandelterm - draw the Mandelbrot set in the terminal\n\n")
		fmt.Fprintf(stderr, "Usage: mandelterm [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  mandelterm                  Draw an 80x39 picture and wait for a key\n")
		fmt.Fprintf(stderr, "  mandelterm -fit             Fill the terminal\n")
		fmt.Fprintf(stderr, "  mandelterm -output ansi     Write coloured text to stdout\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %v", fs.Args())
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return opts, err
	}

	values := map[string]func() (string, any){
		"width":     func() (string, any) { return "render.width", *width },
		"height":    func() (string, any) { return "render.height", *height },
		"x":         func() (string, any) { return "render.originX", *originX },
		"y":         func() (string, any) { return "render.originY", *originY },
		"fit":       func() (string, any) { return "render.fit", *fit },
		"palette":   func() (string, any) { return "render.palettePreview", *preview },
		"no-wait":   func() (string, any) { return "render.waitForKey", !*noWait },
		"output":    func() (string, any) { return "output.mode", *output },
		"log-level": func() (string, any) { return "logging.level", *logLevel },
		"log-file":  func() (string, any) { return "logging.file", *logFile },
		"watch":     func() (string, any) { return "watch", *watch },
	}

	opts.overrides = make(map[string]any)
	fs.Visit(func(f *flag.Flag) {
		if get, ok := values[f.Name]; ok {
			path, v := get()
			opts.overrides[path] = v
		}
	})
	return opts, nil
}

// loadConfig merges defaults, the config file, the environment and flags.
func loadConfig(opts cliOptions) (*config.Config, error) {
	loadOpts := []config.Option{config.WithFile(opts.configPath)}
	for path, v := range opts.overrides {
		loadOpts = append(loadOpts, config.WithOverride(path, v))
	}
	return config.Load(loadOpts...)
}

// resolveMode turns auto into terminal or ansi.
func resolveMode(mode string, isTTY bool) string {
	if mode != config.OutputAuto {
		return mode
	}
	if isTTY {
		return config.OutputTerminal
	}
	return config.OutputANSI
}

// newLogger returns the logger for cfg. A terminal owns the screen, so
// without a log file logging is off; a stream logs to stderr.
func newLogger(cfg *config.Config, mode string) (*app.Logger, func(), error) {
	level := app.ParseLogLevel(cfg.Logging.Level)

	if cfg.Logging.File != "" {
		l, f, err := app.OpenLogFile(cfg.Logging.File, level)
		if err != nil {
			return nil, nil, err
		}
		return l, func() { _ = f.Close() }, nil
	}

	if mode == config.OutputANSI {
		lc := app.DefaultLoggerConfig()
		lc.Level = level
		return app.NewLogger(lc), func() {}, nil
	}
	return app.NewNullLogger(), func() {}, nil
}

// newBackend creates the surface for mode. A terminal is double-buffered so
// repaints only send changed cells; a stream is sized to hold the grid at
// its origin.
func newBackend(cfg *config.Config, mode string, out io.Writer) (backend.Backend, error) {
	if mode == config.OutputTerminal {
		t, err := backend.NewTerminal()
		if err != nil {
			return nil, err
		}
		return backend.NewBufferedBackend(t), nil
	}
	r := cfg.Render
	return backend.NewStream(out, r.OriginX+r.Width, r.OriginY+r.Height), nil
}
