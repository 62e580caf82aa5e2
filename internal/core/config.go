package core

import (
	"errors"
	"fmt"
)

// ErrInvalidWorld is returned when world dimensions cannot host a run.
var ErrInvalidWorld = errors.New("invalid world dimensions")

// World holds the device-dependent screen geometry in world units.
// It is supplied once when an engine is built and never changes afterwards.
type World struct {
	Width        float64 // Visible width; obstacles spawn at this X
	Height       float64 // Visible height including the ground strip
	GroundHeight float64 // Height of the ground strip at the bottom
}

// PlayableHeight returns the vertical space above the ground.
func (w World) PlayableHeight() float64 {
	return w.Height - w.GroundHeight
}

// GroundY returns the y-coordinate of the ground surface.
func (w World) GroundY() float64 {
	return w.Height - w.GroundHeight
}

// Validate checks that the dimensions are usable.
func (w World) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("%w: width and height must be positive, got %gx%g", ErrInvalidWorld, w.Width, w.Height)
	}
	if w.GroundHeight < 0 {
		return fmt.Errorf("%w: ground height must not be negative, got %g", ErrInvalidWorld, w.GroundHeight)
	}
	if w.GroundHeight >= w.Height {
		return fmt.Errorf("%w: ground height %g leaves no playable area in height %g", ErrInvalidWorld, w.GroundHeight, w.Height)
	}
	return nil
}

// RuntimeConfig contains the settings a shell passes to a game session.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters
	ScreenH  int   // Terminal height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
