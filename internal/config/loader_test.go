package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hardcore.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("cannot write config: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsParse(t *testing.T) {
	cfg, err := parseHardcore(defaultHardcoreYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}

	def := DefaultHardcoreConfig()
	if cfg.Timings != def.Timings {
		t.Errorf("embedded timings %+v differ from hardcoded %+v", cfg.Timings, def.Timings)
	}
	if cfg.Icon.Mode != IconOn {
		t.Errorf("embedded icon mode = %q, want on", cfg.Icon.Mode)
	}
	if cfg.Gameplay.TickRate != 60 {
		t.Errorf("embedded tick rate = %d, want 60", cfg.Gameplay.TickRate)
	}
	if len(cfg.Campaign) == 0 {
		t.Error("embedded campaign should not be empty")
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultHardcoreConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadHardcoreCustomPath(t *testing.T) {
	path := writeConfig(t, `
icon:
  mode: translucent
  position: top-right
gameplay:
  always_spawn_goldens: true
`)

	cfg, err := LoadHardcore(path)
	if err != nil {
		t.Fatalf("LoadHardcore() failed: %v", err)
	}
	if cfg.Icon.Mode != IconTranslucent {
		t.Errorf("icon mode = %q, want translucent", cfg.Icon.Mode)
	}
	if cfg.Icon.Position != IconTopRight {
		t.Errorf("icon position = %q, want top-right", cfg.Icon.Position)
	}
	if !cfg.Gameplay.AlwaysSpawnGoldens {
		t.Error("always_spawn_goldens should be true")
	}

	// Keys not in the file keep defaults
	if cfg.Timings.Intro != 1.8 {
		t.Errorf("intro = %v, want default 1.8", cfg.Timings.Intro)
	}
	if cfg.Gameplay.TickRate != 60 {
		t.Errorf("tick rate = %d, want default 60", cfg.Gameplay.TickRate)
	}
}

func TestLoadHardcoreErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "timings: [1, 2"},
		{"negative intro", "timings:\n  intro: -1\n"},
		{"reveal after intro", "timings:\n  intro: 1.0\n  reveal_at: 2.0\n"},
		{"unknown icon mode", "icon:\n  mode: sparkly\n"},
		{"unknown icon position", "icon:\n  position: middle\n"},
		{"zero tick rate", "gameplay:\n  tick_rate: 0\n"},
		{"empty area", "campaign:\n  - name: Nowhere\n    levels: []\n"},
		{"unknown area mode", "campaign:\n  - name: Nowhere\n    mode: d-side\n    levels: [a-00]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadHardcore(path); err == nil {
				t.Errorf("LoadHardcore() should fail for %s", tt.name)
			}
		})
	}
}

func TestValidateAreaModes(t *testing.T) {
	tests := []struct {
		mode string
		ok   bool
	}{
		{"", true},
		{"b", true},
		{"C-Side", true},
		{" a-side ", true},
		{"d-side", false},
		{"bside", false},
	}

	for _, tt := range tests {
		cfg := DefaultHardcoreConfig()
		cfg.Campaign = []AreaConfig{{Name: "Test", Mode: tt.mode, Levels: []string{"a-00"}}}
		err := cfg.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("Validate() with mode %q = %v, want ok=%v", tt.mode, err, tt.ok)
		}
	}
}

func TestLoadHardcoreMissingCustomPath(t *testing.T) {
	cfg, err := LoadHardcore(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadHardcore() should fail for a missing file")
	}
	// Caller still gets usable defaults
	if cfg.Gameplay.TickRate != 60 {
		t.Errorf("fallback tick rate = %d, want 60", cfg.Gameplay.TickRate)
	}
}

func TestIconModeBoolForms(t *testing.T) {
	tests := []struct {
		content string
		want    IconMode
	}{
		{"icon:\n  mode: on\n", IconOn},
		{"icon:\n  mode: off\n", IconOff},
		{"icon:\n  mode: true\n", IconOn},
		{"icon:\n  mode: \"translucent\"\n", IconTranslucent},
	}

	for _, tt := range tests {
		cfg, err := parseHardcore([]byte(tt.content))
		if err != nil {
			t.Errorf("parse %q failed: %v", tt.content, err)
			continue
		}
		if cfg.Icon.Mode != tt.want {
			t.Errorf("parse %q: mode = %q, want %q", tt.content, cfg.Icon.Mode, tt.want)
		}
	}
}

func TestIconModeOpacity(t *testing.T) {
	tests := []struct {
		mode    IconMode
		opacity float64
		visible bool
	}{
		{IconOff, 0, false},
		{IconTranslucent, 0.4, true},
		{IconOn, 1.0, true},
	}

	for _, tt := range tests {
		if got := tt.mode.Opacity(); got != tt.opacity {
			t.Errorf("%s.Opacity() = %v, want %v", tt.mode, got, tt.opacity)
		}
		if got := tt.mode.Visible(); got != tt.visible {
			t.Errorf("%s.Visible() = %v, want %v", tt.mode, got, tt.visible)
		}
	}
}

func TestIconPosition(t *testing.T) {
	tests := []struct {
		in    string
		want  IconPosition
		top   bool
		right bool
	}{
		{"bottom-left", IconBottomLeft, false, false},
		{"Bottom-Right", IconBottomRight, false, true},
		{" top-right ", IconTopRight, true, true},
	}

	for _, tt := range tests {
		got, err := ParseIconPosition(tt.in)
		if err != nil {
			t.Errorf("ParseIconPosition(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseIconPosition(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if got.Top() != tt.top || got.Right() != tt.right {
			t.Errorf("%s: Top=%v Right=%v, want %v %v", got, got.Top(), got.Right(), tt.top, tt.right)
		}
	}

	if _, err := ParseIconPosition("center"); err == nil {
		t.Error("ParseIconPosition(center) should fail")
	}
}
