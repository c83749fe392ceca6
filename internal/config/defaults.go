package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default configuration.
// Kept in sync with defaults/flappy.yaml and used if the embed cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:        10.0,
			FlapPower:      8.0,
			MinVelocity:    -5.0,
			FloorY:         0,
			BounceVelocity: 1.0,
			ScrollSpeed:    120,
			MaxFrameTime:   0.25,
		},
		Obstacles: FlappyObstacles{
			Width:              60,
			BaseSize:           200,
			MinSize:            50,
			FixedBounds:        GapBounds{Min: 150, Max: 450},
			ProportionalBounds: GapBounds{Min: 0.25, Max: 0.75},
		},
		Player: FlappyPlayer{
			X:      65,
			Y:      100,
			Radius: 16,
		},
		Difficulty: DifficultyConfig{
			Enabled:        true,
			InitialLevel:   0.0,
			ShrinkPerPoint: 1.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
		},
		Variants: DefaultVariants(),
	}
}

// DefaultVariants returns the four built-in game iterations.
func DefaultVariants() []VariantConfig {
	return []VariantConfig{
		{
			ID:          "flap",
			Title:       "Flappy I: Flap",
			GapBounds:   BoundsFixed,
			FloorBounce: BounceReset,
		},
		{
			ID:          "pipes",
			Title:       "Flappy II: Pipes",
			Obstacles:   true,
			Scrolling:   true,
			GapBounds:   BoundsFixed,
			FloorBounce: BounceReset,
		},
		{
			ID:          "scroll",
			Title:       "Flappy III: Scroll",
			Obstacles:   true,
			Scrolling:   true,
			GapBounds:   BoundsProportional,
			PointerFlap: true,
			FloorBounce: BounceHalve,
		},
		{
			ID:          "sound",
			Title:       "Flappy IV: Sound",
			Obstacles:   true,
			Scrolling:   true,
			GapBounds:   BoundsProportional,
			PointerFlap: true,
			Sound:       true,
			FloorBounce: BounceHalve,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
