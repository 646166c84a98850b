package loader

import (
	"testing"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("MANDELTERM_WIDTH", "100")
	t.Setenv("MANDELTERM_LOG_LEVEL", "debug")
	t.Setenv("MANDELTERM_FIT", "yes")

	config, err := NewEnvLoader("MANDELTERM_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	flat := Flatten(config)
	if flat["render.width"] != int64(100) {
		t.Errorf("render.width = %v (%T), want 100", flat["render.width"], flat["render.width"])
	}
	if flat["logging.level"] != "debug" {
		t.Errorf("logging.level = %v, want debug", flat["logging.level"])
	}
	if flat["render.fit"] != true {
		t.Errorf("render.fit = %v, want true", flat["render.fit"])
	}
}

func TestEnvLoader_IgnoresUnmapped(t *testing.T) {
	loader := NewEnvLoaderWithLookup("MANDELTERM_", mapLookup(map[string]string{
		"MANDELTERM_CUSTOM_SETTING": "value",
	}))
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(config) != 0 {
		t.Errorf("expected empty config, got %v", config)
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	loader := NewEnvLoaderWithLookup("MANDELTERM_", mapLookup(map[string]string{
		"MANDELTERM_ORIGIN_X": "4",
	}))
	loader.AddMapping("MANDELTERM_ORIGIN_X", "render.originX")

	config, _ := loader.Load()
	if got := Flatten(config)["render.originX"]; got != int64(4) {
		t.Errorf("render.originX = %v, want 4", got)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"", ""},
		{"true", true},
		{"On", true},
		{"no", false},
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"1.5", 1.5},
		{"ansi", "ansi"},
		{"1e3", "1e3"},
	}

	for _, tt := range tests {
		got := parseValue(tt.input)
		if got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.want, tt.want)
		}
	}
}

func TestSetByPathAndFlatten(t *testing.T) {
	data := make(map[string]any)
	SetByPath(data, "render.width", 10)
	SetByPath(data, "render.height", 5)
	SetByPath(data, "watch", true)

	flat := Flatten(data)
	if len(flat) != 3 {
		t.Fatalf("expected 3 paths, got %d: %v", len(flat), flat)
	}
	if flat["render.width"] != 10 || flat["render.height"] != 5 || flat["watch"] != true {
		t.Errorf("unexpected flatten result: %v", flat)
	}
}
