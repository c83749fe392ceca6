// Package config provides YAML-based game configuration loading and
// difficulty management for the flappy arcade.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all configuration for the flappy variants.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Player     FlappyPlayer     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Variants   []VariantConfig  `yaml:"variants"`
}

// FlappyPhysics defines physics parameters.
// Velocities are in pixels per tick, Gravity and ScrollSpeed are per second.
type FlappyPhysics struct {
	Gravity        float64 `yaml:"gravity"`
	FlapPower      float64 `yaml:"flap_power"`
	MinVelocity    float64 `yaml:"min_velocity"`    // Terminal velocity floor (most negative allowed)
	FloorY         float64 `yaml:"floor_y"`         // Lowest allowed Y value
	BounceVelocity float64 `yaml:"bounce_velocity"` // Velocity after floor contact in "reset" mode
	ScrollSpeed    float64 `yaml:"scroll_speed"`
	MaxFrameTime   float64 `yaml:"max_frame_time"` // Upper bound for a single tick's dt
}

// FlappyObstacles defines obstacle parameters.
type FlappyObstacles struct {
	Width              float64   `yaml:"width"`
	BaseSize           float64   `yaml:"base_size"`
	MinSize            float64   `yaml:"min_size"`
	FixedBounds        GapBounds `yaml:"fixed_bounds"`        // Absolute pixels
	ProportionalBounds GapBounds `yaml:"proportional_bounds"` // Fractions of viewport height
}

// GapBounds is the range the gap centre is drawn from.
type GapBounds struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// FlappyPlayer defines the player's start position and size.
type FlappyPlayer struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// Gap bound modes.
const (
	BoundsFixed        = "fixed"
	BoundsProportional = "proportional"
)

// Floor bounce modes.
const (
	BounceReset = "reset"
	BounceHalve = "halve"
)

// VariantConfig toggles the features of one game iteration.
type VariantConfig struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Obstacles   bool   `yaml:"obstacles"`
	Scrolling   bool   `yaml:"scrolling"`
	GapBounds   string `yaml:"gap_bounds"` // "fixed" or "proportional"
	PointerFlap bool   `yaml:"pointer_flap"`
	Sound       bool   `yaml:"sound"`
	FloorBounce string `yaml:"floor_bounce"` // "reset" or "halve"
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled        bool              `yaml:"enabled"`
	InitialLevel   float64           `yaml:"initial_level"`    // 0.0 = easy, 1.0 = hard
	ShrinkPerPoint float64           `yaml:"shrink_per_point"` // Gap size lost per point scored
	Progression    ProgressionConfig `yaml:"progression"`
	Scaling        ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to scroll speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown strings map to "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ShrinkForPreset returns the gap shrink rate for a difficulty preset.
func ShrinkForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.5
	case DifficultyHard:
		return 2.0
	case DifficultyFixed:
		return 0
	default:
		return 1.0
	}
}

// Variant returns the variant with the given ID.
func (c FlappyConfig) Variant(id string) (VariantConfig, bool) {
	for _, v := range c.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return VariantConfig{}, false
}

// Validate reports configuration values the game cannot run with.
func (c FlappyConfig) Validate() error {
	var errs []error

	if c.Player.Radius <= 0 {
		errs = append(errs, fmt.Errorf("player.radius must be positive, got %v", c.Player.Radius))
	}
	if c.Obstacles.MinSize <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.min_size must be positive, got %v", c.Obstacles.MinSize))
	}
	if c.Obstacles.BaseSize < c.Obstacles.MinSize {
		errs = append(errs, fmt.Errorf("obstacles.base_size (%v) is below min_size (%v)", c.Obstacles.BaseSize, c.Obstacles.MinSize))
	}
	if c.Obstacles.Width <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.width must be positive, got %v", c.Obstacles.Width))
	}
	if c.Physics.MaxFrameTime <= 0 {
		errs = append(errs, fmt.Errorf("physics.max_frame_time must be positive, got %v", c.Physics.MaxFrameTime))
	}
	if len(c.Variants) == 0 {
		errs = append(errs, errors.New("no variants configured"))
	}

	seen := make(map[string]bool, len(c.Variants))
	for _, v := range c.Variants {
		if v.ID == "" {
			errs = append(errs, errors.New("variant with empty id"))
			continue
		}
		if seen[v.ID] {
			errs = append(errs, fmt.Errorf("duplicate variant %q", v.ID))
		}
		seen[v.ID] = true

		switch v.GapBounds {
		case BoundsFixed, BoundsProportional:
		default:
			errs = append(errs, fmt.Errorf("variant %q: unknown gap_bounds %q", v.ID, v.GapBounds))
		}
		switch v.FloorBounce {
		case BounceReset, BounceHalve:
		default:
			errs = append(errs, fmt.Errorf("variant %q: unknown floor_bounce %q", v.ID, v.FloorBounce))
		}
		if v.Obstacles && !v.Scrolling {
			errs = append(errs, fmt.Errorf("variant %q: obstacles need scrolling to ever be passed", v.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid flappy config: %w", errors.Join(errs...))
	}
	return nil
}
