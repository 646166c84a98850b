package config

import (
	"math"
	"sort"
)

// setter assigns a raw value to one field of a Config.
type setter func(c *Config, v any) bool

// settings maps every setting path to its setter.
var settings = map[string]setter{
	"render.width":          intField(func(c *Config) *int { return &c.Render.Width }),
	"render.height":         intField(func(c *Config) *int { return &c.Render.Height }),
	"render.originX":        intField(func(c *Config) *int { return &c.Render.OriginX }),
	"render.originY":        intField(func(c *Config) *int { return &c.Render.OriginY }),
	"render.fit":            boolField(func(c *Config) *bool { return &c.Render.Fit }),
	"render.waitForKey":     boolField(func(c *Config) *bool { return &c.Render.WaitForKey }),
	"render.palettePreview": boolField(func(c *Config) *bool { return &c.Render.PalettePreview }),
	"output.mode":           stringField(func(c *Config) *string { return &c.Output.Mode }),
	"logging.level":         stringField(func(c *Config) *string { return &c.Logging.Level }),
	"logging.file":          stringField(func(c *Config) *string { return &c.Logging.File }),
	"watch":                 boolField(func(c *Config) *bool { return &c.Watch }),
}

// Settings returns every known setting path in sorted order.
func Settings() []string {
	paths := make([]string, 0, len(settings))
	for p := range settings {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// apply sets each path in values. Paths are applied in sorted order so the
// reported error is stable.
func (c *Config) apply(source string, values map[string]any) error {
	paths := make([]string, 0, len(values))
	for p := range values {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		v := values[p]
		set, ok := settings[p]
		if !ok {
			return &ValidationError{
				Path:    p,
				Source:  source,
				Message: "unknown setting",
				Value:   v,
				Code:    ErrCodeUnknownSetting,
			}
		}
		if !set(c, v) {
			return &ValidationError{
				Path:    p,
				Source:  source,
				Message: "wrong type",
				Value:   v,
				Code:    ErrCodeTypeMismatch,
			}
		}
	}
	return nil
}

func intField(field func(*Config) *int) setter {
	return func(c *Config, v any) bool {
		n, ok := toInt(v)
		if ok {
			*field(c) = n
		}
		return ok
	}
}

func boolField(field func(*Config) *bool) setter {
	return func(c *Config, v any) bool {
		b, ok := v.(bool)
		if ok {
			*field(c) = b
		}
		return ok
	}
}

func stringField(field func(*Config) *string) setter {
	return func(c *Config, v any) bool {
		s, ok := v.(string)
		if ok {
			*field(c) = s
		}
		return ok
	}
}

// toInt accepts the integer types produced by the TOML, YAML and env
// loaders, and floats with no fractional part.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
