package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy configuration.
// Values mirror defaults/flappy.yaml.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: FlappyWorld{
			Width:        375,
			Height:       667,
			GroundHeight: 100,
		},
		Physics: FlappyPhysics{
			Gravity:          0.5,
			JumpVelocity:     -8,
			TerminalVelocity: 10,
			RotationScale:    3,
			MinRotation:      -20,
			MaxRotation:      45,
		},
		Obstacles: FlappyObstacles{
			Width:          52,
			Gap:            200,
			Speed:          2,
			SpawnThreshold: 180,
			GapMinRatio:    0.2,
			GapMaxRatio:    0.8,
			FirstOffset:    0,
		},
		Player: FlappyPlayer{
			X:             50,
			Width:         34,
			Height:        24,
			HitboxPadding: 2,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
