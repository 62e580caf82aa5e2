// Package flappy implements the deterministic simulation core of a
// Flappy Bird-style game: fixed-step physics, obstacle generation and
// recycling, collision detection, scoring and the run-state machine.
//
// An Engine is driven by an external caller: Advance once per fixed step,
// HandleInput on each discrete gesture. It never schedules itself and is not
// safe for concurrent use.
package flappy

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ScoreStorage persists the best score across runs.
// LoadBestScore returns 0 when nothing is stored or the read fails.
type ScoreStorage interface {
	LoadBestScore() int
	SaveBestScore(value int) error
}

// Options configures a new Engine.
type Options struct {
	World   core.World
	Config  config.FlappyConfig
	Storage ScoreStorage // Optional; nil keeps the best score in memory only
	Logger  *log.Logger  // Optional; nil discards log output
	Seed    int64
}

// StepResult is returned by Advance after each fixed step.
type StepResult struct {
	State  RunState
	Scored int      // Obstacles passed during this step
	Cause  EndCause // Set when this step ended the run
}

// Engine owns the authoritative game state.
type Engine struct {
	world   core.World
	cfg     config.FlappyConfig
	bounds  Bounds
	gen     *Generator
	storage ScoreStorage
	logger  *log.Logger

	state     RunState
	player    Player
	obstacles []Obstacle
	nextID    uint64
	spawned   int // Obstacles spawned during the current run
	score     int
	best      int
	tick      int
	lastCause EndCause
}

// New validates the world and configuration and returns an engine in the
// ready state. The cached best score is read from storage once here.
func New(opts Options) (*Engine, error) {
	if err := opts.World.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	if opts.Config.Obstacles.Gap > opts.World.PlayableHeight() {
		return nil, fmt.Errorf("flappy: %w: gap %g taller than playable height %g",
			core.ErrInvalidWorld, opts.Config.Obstacles.Gap, opts.World.PlayableHeight())
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		world: opts.World,
		cfg:   opts.Config,
		bounds: Bounds{
			World:         opts.World,
			ObstacleWidth: opts.Config.Obstacles.Width,
			HitboxPadding: opts.Config.Player.HitboxPadding,
		},
		gen:       NewGenerator(opts.Seed, opts.World, opts.Config.Obstacles),
		storage:   opts.Storage,
		logger:    logger,
		obstacles: make([]Obstacle, 0, 8),
	}

	if e.storage != nil {
		e.best = max(e.storage.LoadBestScore(), 0)
	}
	e.clearRun()

	return e, nil
}

// clearRun puts every per-run field back to its initial value.
func (e *Engine) clearRun() {
	e.player = e.startPlayer()
	e.obstacles = e.obstacles[:0]
	e.spawned = 0
	e.score = 0
	e.tick = 0
	e.lastCause = CauseNone
}

// startPlayer returns the player at rest, vertically centred in the playable area.
func (e *Engine) startPlayer() Player {
	p := e.cfg.Player
	return Player{
		X:      p.X,
		Y:      (e.world.PlayableHeight() - p.Height) / 2,
		Width:  p.Width,
		Height: p.Height,
	}
}

// transition moves to next if the state machine allows it.
func (e *Engine) transition(next RunState) bool {
	if !e.state.CanTransition(next) {
		return false
	}
	e.logger.Debug("run state changed", "from", e.state, "to", next, "tick", e.tick)
	e.state = next
	return true
}

// Start begins a run. Only valid from the ready state.
func (e *Engine) Start() bool {
	if e.state != StateReady {
		return false
	}
	e.clearRun()
	return e.transition(StateRunning)
}

// Suspend halts a running run without touching its state.
func (e *Engine) Suspend() bool {
	if e.state != StateRunning {
		return false
	}
	return e.transition(StateSuspended)
}

// Resume continues a suspended run.
func (e *Engine) Resume() bool {
	if e.state != StateSuspended {
		return false
	}
	return e.transition(StateRunning)
}

// Reset returns an ended run to the ready state, persisting a new best score
// first. A failed save is logged and the cached best score is kept.
func (e *Engine) Reset() bool {
	if e.state != StateEnded {
		return false
	}

	if e.score > e.best {
		e.best = e.score
		if e.storage != nil {
			if err := e.storage.SaveBestScore(e.score); err != nil {
				e.logger.Warn("could not save best score", "score", e.score, "error", err)
			}
		}
	}

	e.clearRun()
	return e.transition(StateReady)
}

// HandleInput applies a command immediately. Commands that are not valid in
// the current state are ignored and false is returned.
func (e *Engine) HandleInput(cmd core.Command) bool {
	switch cmd {
	case core.CommandJump:
		if e.state != StateRunning {
			return false
		}
		e.player = e.player.Jump(e.cfg.Physics)
		return true
	case core.CommandStart:
		return e.Start()
	case core.CommandSuspend:
		return e.Suspend()
	case core.CommandResume:
		return e.Resume()
	case core.CommandReset:
		return e.Reset()
	}
	return false
}

// Advance executes one fixed step. It has no effect unless a run is active.
// Order: physics, obstacle motion/eviction/spawn, collision, scoring. Points
// earned in the step that ends the run still count.
func (e *Engine) Advance() StepResult {
	if e.state != StateRunning {
		return StepResult{State: e.state}
	}

	e.tick++
	e.player = e.player.Advance(e.cfg.Physics)
	e.updateObstacles()

	cause := e.detectCollision()
	scored := e.scorePassed()

	if cause != CauseNone {
		e.lastCause = cause
		e.transition(StateEnded)
		e.logger.Debug("run ended", "cause", cause, "score", e.score, "tick", e.tick)
	}

	return StepResult{State: e.state, Scored: scored, Cause: cause}
}

// updateObstacles moves obstacles left, drops those off screen and spawns
// the next one when the newest has cleared the spawn threshold.
func (e *Engine) updateObstacles() {
	for i := range e.obstacles {
		e.obstacles[i].X -= e.cfg.Obstacles.Speed
	}

	kept := e.obstacles[:0]
	for _, o := range e.obstacles {
		if !e.gen.IsOffScreen(o.X) {
			kept = append(kept, o)
		}
	}
	e.obstacles = kept

	if len(e.obstacles) == 0 || e.gen.ShouldSpawn(e.obstacles[len(e.obstacles)-1].X) {
		e.spawn()
	}
}

// spawn appends a fresh obstacle at the right edge of the screen.
func (e *Engine) spawn() {
	x := e.world.Width
	if e.spawned == 0 {
		x += e.cfg.Obstacles.FirstOffset
	}

	top, bottom := e.gen.Gap()
	e.nextID++
	e.obstacles = append(e.obstacles, Obstacle{
		ID:           e.nextID,
		X:            x,
		TopHeight:    top,
		BottomHeight: bottom,
	})
	e.spawned++
}

func (e *Engine) detectCollision() EndCause {
	if e.bounds.HitsGround(e.player) {
		return CauseGround
	}
	if e.bounds.HitsCeiling(e.player) {
		return CauseCeiling
	}
	for _, o := range e.obstacles {
		if e.bounds.HitsObstacle(e.player, o) {
			return CauseObstacle
		}
	}
	return CauseNone
}

// scorePassed awards one point per obstacle the player has just cleared.
func (e *Engine) scorePassed() int {
	scored := 0
	for i, o := range e.obstacles {
		updated, passed := e.bounds.MarkPassed(e.player, o)
		if !passed {
			continue
		}
		e.obstacles[i] = updated
		e.score++
		scored++
	}
	return scored
}

// State returns the current run state.
func (e *Engine) State() RunState {
	return e.state
}

// Score returns the current run's score.
func (e *Engine) Score() int {
	return e.score
}

// Best returns the cached best score.
func (e *Engine) Best() int {
	return e.best
}

// World returns the geometry the engine was built with.
func (e *Engine) World() core.World {
	return e.world
}

// Config returns the tunables the engine was built with.
func (e *Engine) Config() config.FlappyConfig {
	return e.cfg
}
