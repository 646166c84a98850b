// Package config loads and validates mandelterm settings.
//
// Settings come from four sources, each overriding the one before:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← MANDELTERM_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← .toml, .yaml or .yml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Every source is reduced to dot-separated setting paths such as
// "render.width" before it is applied, so a file section and an
// environment variable address the same setting the same way.
//
// # Sub-packages
//
//   - loader: file (TOML, YAML) and environment variable loading
//   - watcher: change notification for the config file
//
// The viewport and the iteration cap are fixed and are not settings.
package config
