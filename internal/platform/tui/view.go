package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Rendering characters.
const (
	BirdChar      = '█'
	ObstacleChar  = '█'
	ObstacleCap   = '▓'
	GroundTopChar = '▀'
	GroundChar    = '░'
)

// Projection maps world units onto a terminal cell grid. The whole world is
// stretched over the grid, so the picture keeps its layout at any size.
type Projection struct {
	World core.World
	Cols  int
	Rows  int
}

// X returns the column holding world x-coordinate wx.
func (p Projection) X(wx float64) int {
	return int(math.Floor(wx * float64(p.Cols) / p.World.Width))
}

// Y returns the row holding world y-coordinate wy.
func (p Projection) Y(wy float64) int {
	return int(math.Floor(wy * float64(p.Rows) / p.World.Height))
}

// Cells returns the cell range [x0,x1) x [y0,y1) covered by r. Anything with
// a positive extent covers at least one cell.
func (p Projection) Cells(r core.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = p.X(r.X), p.Y(r.Y)
	x1 = int(math.Ceil(r.Right() * float64(p.Cols) / p.World.Width))
	y1 = int(math.Ceil(r.Bottom() * float64(p.Rows) / p.World.Height))
	if r.W > 0 {
		x1 = max(x1, x0+1)
	}
	if r.H > 0 {
		y1 = max(y1, y0+1)
	}
	return x0, y0, x1, y1
}

// DrawSnapshot renders one frame of the game onto dst.
func DrawSnapshot(dst *core.Screen, snap flappy.Snapshot, bounds flappy.Bounds) {
	dst.Clear()
	proj := Projection{World: bounds.World, Cols: dst.Width(), Rows: dst.Height()}

	for _, o := range snap.Obstacles {
		drawObstacle(dst, proj, bounds, o)
	}

	// Ground goes over the obstacles so rounding never lets a segment poke into it.
	groundRow := proj.Y(bounds.World.GroundY())
	dst.FillRect(0, groundRow, dst.Width(), dst.Height(), GroundChar, core.ColorOrange)
	dst.DrawHLine(0, groundRow, dst.Width(), GroundTopChar, core.ColorBrightGreen)

	drawBird(dst, proj, snap.Player)
	drawHUD(dst, snap)

	switch snap.State {
	case flappy.StateReady:
		drawCenteredMessage(dst, core.ColorBrightYellow, "FLAPPY", "Press SPACE to flap")
	case flappy.StateSuspended:
		drawCenteredMessage(dst, core.ColorCyan, "PAUSED", "Press P to resume")
	case flappy.StateEnded:
		drawCenteredMessage(dst, core.ColorBrightRed, "GAME OVER",
			fmt.Sprintf("Hit the %s", snap.Cause),
			fmt.Sprintf("Score: %d  Best: %d", snap.Score, max(snap.Score, snap.Best)),
			"Press R to play again")
	}
}

func drawObstacle(dst *core.Screen, proj Projection, bounds flappy.Bounds, o flappy.Obstacle) {
	top, bottom := bounds.ObstacleHitboxes(o)

	if top.H > 0 {
		x0, y0, x1, y1 := proj.Cells(top)
		dst.FillRect(x0, y0, x1, y1, ObstacleChar, core.ColorGreen)
		dst.FillRect(x0, y1-1, x1, y1, ObstacleCap, core.ColorBrightGreen)
	}
	if bottom.H > 0 {
		x0, y0, x1, y1 := proj.Cells(bottom)
		dst.FillRect(x0, y0, x1, y1, ObstacleChar, core.ColorGreen)
		dst.FillRect(x0, y0, x1, y0+1, ObstacleCap, core.ColorBrightGreen)
	}
}

func drawBird(dst *core.Screen, proj Projection, p flappy.Player) {
	x0, y0, x1, y1 := proj.Cells(p.Rect())
	dst.FillRect(x0, y0, x1, y1, BirdChar, core.ColorBrightYellow)
	dst.SetColored(x1, y0+(y1-y0)/2, beak(p.Rotation), core.ColorOrange)
}

// beak picks a glyph that follows the bird's tilt.
func beak(rotation float64) rune {
	switch {
	case rotation < -5:
		return '↗'
	case rotation > 15:
		return '↘'
	default:
		return '→'
	}
}

func drawHUD(dst *core.Screen, snap flappy.Snapshot) {
	dst.DrawTextCentered(0, fmt.Sprintf(" %d ", snap.Score), core.ColorWhite)

	best := fmt.Sprintf("BEST %d ", snap.Best)
	dst.DrawText(dst.Width()-len(best), 0, best, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, color core.Color, title string, lines ...string) {
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	// Pinned to the top-left corner when the terminal is smaller than the box.
	boxX := core.Clamp((dst.Width()-boxW)/2, 0, dst.Width())
	boxY := core.Clamp((dst.Height()-boxH)/2, 0, dst.Height())

	dst.FillRect(boxX, boxY, boxX+boxW, boxY+boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, color)

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, color)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l, core.ColorWhite)
	}
}
