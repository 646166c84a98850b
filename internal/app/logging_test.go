package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"Warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"", LogLevelInfo},
		{"loud", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf, Prefix: "mandelterm"})

	l.WithFields(map[string]any{"steps": 41692, "cells": 3120}).Info("render %s", "complete")

	line := buf.String()
	if !strings.Contains(line, "[INFO] mandelterm: render complete") {
		t.Errorf("expected level, prefix and message, got %q", line)
	}
	if !strings.HasSuffix(line, " cells=3120 steps=41692\n") {
		t.Errorf("expected sorted fields at end of line, got %q", line)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	out := buf.String()
	if strings.Contains(out, "[DEBUG]") || strings.Contains(out, "[INFO]") {
		t.Errorf("expected debug and info to be filtered, got %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 lines, got %q", out)
	}

	buf.Reset()
	l.SetLevel(LogLevelDebug)
	l.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("expected debug output after SetLevel")
	}
}

func TestLogger_WithComponentDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	child := parent.WithComponent("renderer")

	parent.Info("parent")
	child.Info("child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if strings.Contains(lines[0], "component=") {
		t.Errorf("expected parent without component, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "component=renderer") {
		t.Errorf("expected child with component, got %q", lines[1])
	}
}

func TestLogger_Disable(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})
	l.Disable()
	l.Error("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	l := NewNullLogger()
	// Must not panic and must stay disabled for derived loggers.
	l.WithField("k", "v").Error("nothing")
	if !l.WithComponent("x").disabled {
		t.Error("expected derived logger to be disabled")
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mandelterm.log")

	l, f, err := OpenLogFile(path, LogLevelDebug)
	if err != nil {
		t.Fatalf("OpenLogFile: %v", err)
	}
	l.Debug("hello")
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "[DEBUG] mandelterm: hello") {
		t.Errorf("expected log line in file, got %q", data)
	}
}

func TestOpenLogFile_BadPath(t *testing.T) {
	_, _, err := OpenLogFile(filepath.Join(t.TempDir(), "missing", "x.log"), LogLevelInfo)
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelInfo {
		t.Errorf("expected info level, got %v", cfg.Level)
	}
	if cfg.Prefix != "mandelterm" {
		t.Errorf("expected prefix mandelterm, got %q", cfg.Prefix)
	}
	if cfg.Output != os.Stderr {
		t.Error("expected stderr output")
	}
}
