package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/mandelterm/internal/config/loader"
)

// Output modes.
const (
	// OutputAuto picks terminal when stdout is a tty and ansi otherwise.
	OutputAuto = "auto"
	// OutputTerminal draws on a full-screen terminal.
	OutputTerminal = "terminal"
	// OutputANSI writes SGR-coloured rows to stdout.
	OutputANSI = "ansi"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "MANDELTERM_"

// RenderConfig controls the picture.
type RenderConfig struct {
	// Width and Height are the grid size in cells.
	Width  int
	Height int

	// OriginX and OriginY are the column and row of the top-left cell.
	OriginX int
	OriginY int

	// Fit sizes the grid to the surface instead of Width and Height.
	Fit bool

	// WaitForKey keeps the picture up until a key is pressed.
	WaitForKey bool

	// PalettePreview draws the palette swatch instead of the set.
	PalettePreview bool
}

// OutputConfig selects the display surface.
type OutputConfig struct {
	Mode string
}

// LoggingConfig controls the application logger.
type LoggingConfig struct {
	Level string
	// File is the log destination. Empty disables logging on a terminal.
	File string
}

// Config holds the merged settings.
type Config struct {
	Render  RenderConfig
	Output  OutputConfig
	Logging LoggingConfig

	// Watch redraws when the config file changes.
	Watch bool

	path string
	opts []Option
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:      80,
			Height:     39,
			WaitForKey: true,
		},
		Output:  OutputConfig{Mode: OutputAuto},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Path returns the config file the settings were loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

type loadOptions struct {
	path      string
	fs        loader.FileSystem
	env       bool
	lookup    func(string) (string, bool)
	overrides map[string]any
}

// Option configures Load.
type Option func(*loadOptions)

// WithFile loads settings from path. The format follows the extension.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.path = path
	}
}

// WithFS reads config files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnv enables or disables environment variables.
func WithEnv(enable bool) Option {
	return func(o *loadOptions) {
		o.env = enable
	}
}

// WithEnvLookup reads environment variables through lookup.
func WithEnvLookup(lookup func(string) (string, bool)) Option {
	return func(o *loadOptions) {
		o.env = true
		o.lookup = lookup
	}
}

// WithOverride sets path to value above every other source.
func WithOverride(path string, value any) Option {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]any)
		}
		o.overrides[path] = value
	}
}

// Load builds a Config from defaults, the config file, the environment
// and overrides, in that order, then validates it.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{
		fs:  loader.DefaultFS(),
		env: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := Default()
	c.path = o.path
	c.opts = opts

	if o.path != "" {
		fl, err := loader.ForPath(o.fs, o.path)
		if err != nil {
			return nil, err
		}
		data, err := fl.Load()
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, o.path)
		}
		if err := c.apply(o.path, loader.Flatten(data)); err != nil {
			return nil, err
		}
	}

	if o.env {
		var el *loader.EnvLoader
		if o.lookup != nil {
			el = loader.NewEnvLoaderWithLookup(EnvPrefix, o.lookup)
		} else {
			el = loader.NewEnvLoader(EnvPrefix)
		}
		data, err := el.Load()
		if err != nil {
			return nil, err
		}
		if err := c.apply("env", loader.Flatten(data)); err != nil {
			return nil, err
		}
	}

	if err := c.apply("flags", o.overrides); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload loads the settings again with the options of the Load that built c.
func (c *Config) Reload() (*Config, error) {
	return Load(c.opts...)
}

// Validate checks every setting against its allowed range.
func (c *Config) Validate() error {
	var errs []error

	if !c.Render.Fit {
		if c.Render.Width <= 0 {
			errs = append(errs, outOfRange("render.width", c.Render.Width, "must be positive"))
		}
		if c.Render.Height <= 0 {
			errs = append(errs, outOfRange("render.height", c.Render.Height, "must be positive"))
		}
	}
	if c.Render.OriginX < 0 {
		errs = append(errs, outOfRange("render.originX", c.Render.OriginX, "must not be negative"))
	}
	if c.Render.OriginY < 0 {
		errs = append(errs, outOfRange("render.originY", c.Render.OriginY, "must not be negative"))
	}

	switch c.Output.Mode {
	case OutputAuto, OutputTerminal, OutputANSI:
	default:
		errs = append(errs, &ValidationError{
			Path:    "output.mode",
			Message: "must be one of auto, terminal, ansi",
			Value:   c.Output.Mode,
			Code:    ErrCodeInvalidEnum,
		})
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Logging.Level,
			Code:    ErrCodeInvalidEnum,
		})
	}

	return errors.Join(errs...)
}

func outOfRange(path string, v int, msg string) *ValidationError {
	return &ValidationError{
		Path:    path,
		Message: msg,
		Value:   v,
		Code:    ErrCodeOutOfRange,
	}
}
