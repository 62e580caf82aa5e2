// Package config provides YAML-based game configuration loading and
// environment-driven process settings for the flappy engine and its shells.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ErrInvalidConfig is returned when a loaded configuration cannot drive a run.
var ErrInvalidConfig = errors.New("invalid flappy config")

// FlappyConfig contains all tunables of the flappy simulation.
type FlappyConfig struct {
	World     FlappyWorld     `yaml:"world"`
	Physics   FlappyPhysics   `yaml:"physics"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Player    FlappyPlayer    `yaml:"player"`
}

// FlappyWorld defines the default world geometry used by the shells.
// Engines receive their geometry as core.World at construction.
type FlappyWorld struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// FlappyPhysics defines per-step physics parameters (60 steps per second).
type FlappyPhysics struct {
	Gravity          float64 `yaml:"gravity"`
	JumpVelocity     float64 `yaml:"jump_velocity"`     // negative = up
	TerminalVelocity float64 `yaml:"terminal_velocity"` // max fall speed
	RotationScale    float64 `yaml:"rotation_scale"`    // degrees per unit of velocity
	MinRotation      float64 `yaml:"min_rotation"`
	MaxRotation      float64 `yaml:"max_rotation"`
}

// FlappyObstacles defines obstacle generation and motion.
type FlappyObstacles struct {
	Width          float64 `yaml:"width"`
	Gap            float64 `yaml:"gap"`
	Speed          float64 `yaml:"speed"`
	SpawnThreshold float64 `yaml:"spawn_threshold"`
	GapMinRatio    float64 `yaml:"gap_min_ratio"` // lowest gap center as a fraction of screen height
	GapMaxRatio    float64 `yaml:"gap_max_ratio"` // highest gap center as a fraction of screen height
	FirstOffset    float64 `yaml:"first_offset"`  // extra X added to the first obstacle of a run
}

// FlappyPlayer defines the player sprite and hitbox.
type FlappyPlayer struct {
	X             float64 `yaml:"x"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	HitboxPadding float64 `yaml:"hitbox_padding"`
}

// WorldGeometry converts the configured geometry to a core.World.
func (c FlappyConfig) WorldGeometry() core.World {
	return core.World{
		Width:        c.World.Width,
		Height:       c.World.Height,
		GroundHeight: c.World.GroundHeight,
	}
}

// Validate checks the tunables that the engine cannot run without.
// World geometry is validated separately by core.World.Validate.
func (c FlappyConfig) Validate() error {
	switch {
	case c.Physics.TerminalVelocity <= 0:
		return fmt.Errorf("%w: terminal_velocity must be positive", ErrInvalidConfig)
	case c.Physics.MinRotation > c.Physics.MaxRotation:
		return fmt.Errorf("%w: min_rotation %g above max_rotation %g", ErrInvalidConfig, c.Physics.MinRotation, c.Physics.MaxRotation)
	case c.Obstacles.Width <= 0:
		return fmt.Errorf("%w: obstacle width must be positive", ErrInvalidConfig)
	case c.Obstacles.Gap <= 0:
		return fmt.Errorf("%w: obstacle gap must be positive", ErrInvalidConfig)
	case c.Obstacles.Speed <= 0:
		return fmt.Errorf("%w: obstacle speed must be positive", ErrInvalidConfig)
	case c.Obstacles.FirstOffset < 0:
		return fmt.Errorf("%w: first_offset must not be negative", ErrInvalidConfig)
	case c.Obstacles.GapMinRatio < 0 || c.Obstacles.GapMaxRatio > 1 || c.Obstacles.GapMinRatio > c.Obstacles.GapMaxRatio:
		return fmt.Errorf("%w: gap ratios [%g, %g] must be an ordered range within [0, 1]",
			ErrInvalidConfig, c.Obstacles.GapMinRatio, c.Obstacles.GapMaxRatio)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	case c.Player.HitboxPadding < 0 || 2*c.Player.HitboxPadding >= min(c.Player.Width, c.Player.Height):
		return fmt.Errorf("%w: hitbox_padding %g collapses the player hitbox", ErrInvalidConfig, c.Player.HitboxPadding)
	}
	return nil
}
