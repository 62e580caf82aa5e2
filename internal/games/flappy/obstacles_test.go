package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

var phoneWorld = core.World{Width: 375, Height: 667, GroundHeight: 100}

func TestGapInvariant(t *testing.T) {
	cfg := config.DefaultFlappyConfig().Obstacles

	worlds := []core.World{
		phoneWorld,
		{Width: 800, Height: 600, GroundHeight: 0},
		{Width: 320, Height: 480, GroundHeight: 60},
	}

	for _, world := range worlds {
		for seed := int64(0); seed < 20; seed++ {
			g := NewGenerator(seed, world, cfg)
			for i := 0; i < 50; i++ {
				top, bottom := g.Gap()

				sum := top + cfg.Gap + bottom
				if math.Abs(sum-world.PlayableHeight()) > 1e-9 {
					t.Fatalf("world %+v seed %d: top %g + gap %g + bottom %g = %g, expected %g",
						world, seed, top, cfg.Gap, bottom, sum, world.PlayableHeight())
				}
				if top < 0 || bottom < 0 {
					t.Fatalf("world %+v seed %d: negative segment top=%g bottom=%g", world, seed, top, bottom)
				}
			}
		}
	}
}

func TestGapCenterWithinRatioWindow(t *testing.T) {
	cfg := config.DefaultFlappyConfig().Obstacles
	world := core.World{Width: 800, Height: 1000, GroundHeight: 0}
	g := NewGenerator(7, world, cfg)

	for i := 0; i < 200; i++ {
		top, _ := g.Gap()
		center := top + cfg.Gap/2
		if center < 0.2*world.Height || center > 0.8*world.Height {
			t.Fatalf("gap center %g outside [%g, %g]", center, 0.2*world.Height, 0.8*world.Height)
		}
	}
}

func TestGapDeterministicPerSeed(t *testing.T) {
	cfg := config.DefaultFlappyConfig().Obstacles
	g1 := NewGenerator(12345, phoneWorld, cfg)
	g2 := NewGenerator(12345, phoneWorld, cfg)

	for i := 0; i < 20; i++ {
		t1, b1 := g1.Gap()
		t2, b2 := g2.Gap()
		if t1 != t2 || b1 != b2 {
			t.Fatalf("draw %d differs: (%g, %g) vs (%g, %g)", i, t1, b1, t2, b2)
		}
	}
}

func TestShouldSpawn(t *testing.T) {
	g := NewGenerator(1, phoneWorld, config.DefaultFlappyConfig().Obstacles)

	// Threshold is 375 - 180 = 195
	tests := []struct {
		lastX    float64
		expected bool
	}{
		{375, false},
		{195, false},
		{194.9, true},
		{-10, true},
	}

	for _, tc := range tests {
		if got := g.ShouldSpawn(tc.lastX); got != tc.expected {
			t.Errorf("ShouldSpawn(%g) = %v, expected %v", tc.lastX, got, tc.expected)
		}
	}
}

func TestIsOffScreen(t *testing.T) {
	g := NewGenerator(1, phoneWorld, config.DefaultFlappyConfig().Obstacles)

	tests := []struct {
		x        float64
		expected bool
	}{
		{0, false},
		{-51, false},
		{-52, false}, // right edge exactly at the left border
		{-52.5, true},
	}

	for _, tc := range tests {
		if got := g.IsOffScreen(tc.x); got != tc.expected {
			t.Errorf("IsOffScreen(%g) = %v, expected %v", tc.x, got, tc.expected)
		}
	}
}
