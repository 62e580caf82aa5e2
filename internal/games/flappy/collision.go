package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Bounds holds the fixed geometry the collision queries depend on.
type Bounds struct {
	World         core.World
	ObstacleWidth float64
	HitboxPadding float64
}

// PlayerHitbox returns the player's collision rectangle, inset from the
// sprite so that grazing contact is forgiven.
func (b Bounds) PlayerHitbox(p Player) core.Rect {
	return p.Rect().Inset(b.HitboxPadding)
}

// ObstacleHitboxes returns the collision rectangles of both segments.
func (b Bounds) ObstacleHitboxes(o Obstacle) (top, bottom core.Rect) {
	top = core.NewRect(o.X, 0, b.ObstacleWidth, o.TopHeight)
	bottomY := b.World.Height - o.BottomHeight - b.World.GroundHeight
	bottom = core.NewRect(o.X, bottomY, b.ObstacleWidth, o.BottomHeight)
	return top, bottom
}

// HitsObstacle reports whether the player's hitbox overlaps either segment.
func (b Bounds) HitsObstacle(p Player, o Obstacle) bool {
	hitbox := b.PlayerHitbox(p)
	top, bottom := b.ObstacleHitboxes(o)
	return hitbox.Overlaps(top) || hitbox.Overlaps(bottom)
}

// HitsGround reports whether the player's sprite reaches below the ground surface.
func (b Bounds) HitsGround(p Player) bool {
	return p.Y+p.Height > b.World.GroundY()
}

// HitsCeiling reports whether the player has left the top of the screen.
func (b Bounds) HitsCeiling(p Player) bool {
	return p.Y < 0
}

// HasPassed reports whether the player has cleared an obstacle it has not
// been scored for yet.
func (b Bounds) HasPassed(p Player, o Obstacle) bool {
	return !o.Passed && p.X > o.X+b.ObstacleWidth
}

// MarkPassed returns the obstacle with its pass flag set and true when the
// player has just cleared it; otherwise the obstacle is returned unchanged.
func (b Bounds) MarkPassed(p Player, o Obstacle) (Obstacle, bool) {
	if !b.HasPassed(p, o) {
		return o, false
	}
	o.Passed = true
	return o, true
}
