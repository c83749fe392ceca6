package config

import "testing"

func TestGapSizeFollowsScore(t *testing.T) {
	d := NewDifficultyManager(DefaultFlappyConfig().Difficulty)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 200},
		{10, 190},
		{150, 50},
		{250, 50},     // max(50, 200-250) = 50
		{1 << 30, 50}, // very large scores still hit the floor
	}

	for _, tc := range tests {
		if got := d.GapSize(200, 50, tc.score); got != tc.want {
			t.Errorf("GapSize(score=%d) = %v, expected %v", tc.score, got, tc.want)
		}
	}
}

func TestGapSizeFixedPresetDoesNotShrink(t *testing.T) {
	cfg := DefaultFlappyConfig()
	ApplyFlappyPreset(&cfg, DifficultyFixed)
	d := NewDifficultyManager(cfg.Difficulty)

	if got := d.GapSize(200, 50, 100); got != 200 {
		t.Errorf("fixed preset GapSize = %v, expected 200", got)
	}
}

func TestLevelProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
	})

	if got := d.Level(0, 0); got != 0.5 {
		t.Errorf("Level(0) = %v, expected 0.5", got)
	}
	if got := d.Level(5, 0); got != 0.75 {
		t.Errorf("Level(5) = %v, expected 0.75", got)
	}
	if got := d.Level(100, 0); got != 1.0 {
		t.Errorf("Level(100) = %v, expected clamp to 1.0", got)
	}
}

func TestSpeedConstantByDefault(t *testing.T) {
	d := NewDifficultyManager(DefaultFlappyConfig().Difficulty)

	if got := d.Speed(120, 40, 0); got != 120 {
		t.Errorf("Speed() = %v, expected constant 120 with zero multiplier", got)
	}

	d = NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
	})
	if got := d.Speed(100, 0, 100); got != 200 {
		t.Errorf("Speed() at max level = %v, expected 200", got)
	}
}
