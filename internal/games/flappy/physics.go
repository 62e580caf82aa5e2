package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Player is the controllable bird. X stays fixed during a run; only Y moves.
type Player struct {
	X, Y          float64 // Top-left of the nominal sprite rectangle
	Width, Height float64
	Velocity      float64 // Vertical velocity per step, negative = up
	Rotation      float64 // Degrees, derived from velocity; visual only
}

// Rect returns the nominal sprite rectangle.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Advance applies one fixed step of gravity.
// Velocity is clamped on the falling side only.
func (p Player) Advance(phys config.FlappyPhysics) Player {
	p.Velocity = min(p.Velocity+phys.Gravity, phys.TerminalVelocity)
	p.Y += p.Velocity
	p.Rotation = core.ClampF(p.Velocity*phys.RotationScale, phys.MinRotation, phys.MaxRotation)
	return p
}

// Jump replaces the velocity with the jump impulse and tilts the bird up.
// Repeated jumps reset to the same velocity rather than accumulating.
func (p Player) Jump(phys config.FlappyPhysics) Player {
	p.Velocity = phys.JumpVelocity
	p.Rotation = phys.MinRotation
	return p
}
