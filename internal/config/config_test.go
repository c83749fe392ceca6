package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseFlappy(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults should parse: %v", err)
	}
	want := DefaultFlappyConfig()

	if cfg.Physics != want.Physics {
		t.Errorf("physics = %+v, expected %+v", cfg.Physics, want.Physics)
	}
	if cfg.Obstacles != want.Obstacles {
		t.Errorf("obstacles = %+v, expected %+v", cfg.Obstacles, want.Obstacles)
	}
	if cfg.Player != want.Player {
		t.Errorf("player = %+v, expected %+v", cfg.Player, want.Player)
	}
	if len(cfg.Variants) != len(want.Variants) {
		t.Fatalf("got %d variants, expected %d", len(cfg.Variants), len(want.Variants))
	}
	for i := range want.Variants {
		if cfg.Variants[i] != want.Variants[i] {
			t.Errorf("variant %d = %+v, expected %+v", i, cfg.Variants[i], want.Variants[i])
		}
	}
}

func TestLoadFlappyCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	data := []byte("physics:\n  gravity: 4.5\nplayer:\n  radius: 10\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Physics.Gravity != 4.5 {
		t.Errorf("gravity = %v, expected override 4.5", cfg.Physics.Gravity)
	}
	if cfg.Player.Radius != 10 {
		t.Errorf("radius = %v, expected override 10", cfg.Player.Radius)
	}
	// Untouched keys keep defaults
	if cfg.Physics.FlapPower != 8.0 {
		t.Errorf("flap_power = %v, expected default 8", cfg.Physics.FlapPower)
	}
	if len(cfg.Variants) != 4 {
		t.Errorf("expected default variants, got %d", len(cfg.Variants))
	}
}

func TestLoadFlappyMissingCustomPath(t *testing.T) {
	_, err := LoadFlappy(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
	if !strings.HasPrefix(err.Error(), "config:") {
		t.Errorf("error should be package-prefixed, got %q", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
	}{
		{"zero radius", func(c *FlappyConfig) { c.Player.Radius = 0 }},
		{"base below min", func(c *FlappyConfig) { c.Obstacles.BaseSize = 10 }},
		{"zero min size", func(c *FlappyConfig) { c.Obstacles.MinSize = 0 }},
		{"no variants", func(c *FlappyConfig) { c.Variants = nil }},
		{"unknown bounds", func(c *FlappyConfig) { c.Variants[0].GapBounds = "wobbly" }},
		{"unknown bounce", func(c *FlappyConfig) { c.Variants[1].FloorBounce = "spring" }},
		{"duplicate id", func(c *FlappyConfig) { c.Variants[1].ID = c.Variants[0].ID }},
		{"static obstacles", func(c *FlappyConfig) { c.Variants[1].Scrolling = false }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}

	if err := DefaultFlappyConfig().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestApplyFlappyPreset(t *testing.T) {
	cfg := DefaultFlappyConfig()
	ApplyFlappyPreset(&cfg, DifficultyHard)
	if cfg.Difficulty.ShrinkPerPoint != 2.0 || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset gave %+v", cfg.Difficulty)
	}

	ApplyFlappyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled || cfg.Difficulty.ShrinkPerPoint != 0 {
		t.Errorf("fixed preset gave %+v", cfg.Difficulty)
	}

	before := cfg
	ApplyFlappyPreset(&cfg, "")
	if cfg.Difficulty != before.Difficulty {
		t.Error("empty preset should not change config")
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("easy") != DifficultyEasy {
		t.Error("easy should parse")
	}
	if ParsePreset("insane") != "" {
		t.Error("unknown preset should map to empty")
	}
}

func TestVariantLookup(t *testing.T) {
	cfg := DefaultFlappyConfig()
	v, ok := cfg.Variant("sound")
	if !ok || !v.Sound {
		t.Errorf("Variant(sound) = %+v, %v", v, ok)
	}
	if _, ok := cfg.Variant("missing"); ok {
		t.Error("missing variant should not be found")
	}
}
