package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Obstacle is a pair of top/bottom segments with a fixed gap between them.
type Obstacle struct {
	ID           uint64  // Unique per engine, assigned in spawn order
	X            float64 // Left edge
	TopHeight    float64 // Height of the segment hanging from the top of the screen
	BottomHeight float64 // Height of the segment standing on the ground
	Passed       bool    // Whether the player has scored this obstacle
}

// Generator produces gap geometry and decides when obstacles appear and leave.
type Generator struct {
	rng   *rand.Rand
	world core.World
	cfg   config.FlappyObstacles
}

// NewGenerator creates a generator with the given RNG seed.
func NewGenerator(seed int64, world core.World, cfg config.FlappyObstacles) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		world: world,
		cfg:   cfg,
	}
}

// Gap picks a random gap center and returns the two segment heights.
// The center is drawn uniformly from the configured fraction of the screen
// height, narrowed so that neither segment ends up with a negative height.
func (g *Generator) Gap() (top, bottom float64) {
	half := g.cfg.Gap / 2
	playable := g.world.PlayableHeight()

	lo := max(g.cfg.GapMinRatio*g.world.Height, half)
	hi := min(g.cfg.GapMaxRatio*g.world.Height, playable-half)
	if hi < lo {
		// Ratio window misses the playable band entirely
		lo, hi = half, playable-half
	}

	center := lo + g.rng.Float64()*(hi-lo)
	top = center - half
	bottom = g.world.Height - center - half - g.world.GroundHeight
	return top, bottom
}

// ShouldSpawn reports whether the newest obstacle has moved far enough from
// the spawn edge for the next one to appear.
func (g *Generator) ShouldSpawn(lastX float64) bool {
	return lastX < g.world.Width-g.cfg.SpawnThreshold
}

// IsOffScreen reports whether an obstacle at x has fully left the screen.
func (g *Generator) IsOffScreen(x float64) bool {
	return x < -g.cfg.Width
}
