package flappy

// Snapshot is a read-only projection of the engine state for renderers.
// It shares no memory with the engine.
type Snapshot struct {
	State     RunState
	Player    Player
	Obstacles []Obstacle // Spawn order, oldest first
	Score     int
	Best      int
	Tick      int
	Cause     EndCause // Why the last run ended; CauseNone while it lasts
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	obstacles := make([]Obstacle, len(e.obstacles))
	copy(obstacles, e.obstacles)

	return Snapshot{
		State:     e.state,
		Player:    e.player,
		Obstacles: obstacles,
		Score:     e.score,
		Best:      e.best,
		Tick:      e.tick,
		Cause:     e.lastCause,
	}
}
