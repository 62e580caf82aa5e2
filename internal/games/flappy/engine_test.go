package flappy

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// recordingStorage is an in-memory ScoreStorage that remembers every save.
type recordingStorage struct {
	best  int
	saves []int
	err   error
}

func (s *recordingStorage) LoadBestScore() int {
	return s.best
}

func (s *recordingStorage) SaveBestScore(value int) error {
	s.saves = append(s.saves, value)
	if s.err != nil {
		return s.err
	}
	s.best = value
	return nil
}

func newTestEngine(t *testing.T, storage ScoreStorage) *Engine {
	t.Helper()
	e, err := New(Options{
		World:   phoneWorld,
		Config:  config.DefaultFlappyConfig(),
		Storage: storage,
		Seed:    42,
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

func TestNewRejectsMalformedWorld(t *testing.T) {
	tests := []struct {
		name    string
		world   core.World
		mutate  func(*config.FlappyConfig)
		wantErr error
	}{
		{"zero width", core.World{Width: 0, Height: 667, GroundHeight: 100}, nil, core.ErrInvalidWorld},
		{"negative height", core.World{Width: 375, Height: -667, GroundHeight: 100}, nil, core.ErrInvalidWorld},
		{"gap taller than playable area", core.World{Width: 375, Height: 250, GroundHeight: 100}, nil, core.ErrInvalidWorld},
		{"zero obstacle width", phoneWorld, func(c *config.FlappyConfig) { c.Obstacles.Width = 0 }, config.ErrInvalidConfig},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultFlappyConfig()
			if tc.mutate != nil {
				tc.mutate(&cfg)
			}
			_, err := New(Options{World: tc.world, Config: cfg})
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("New() error = %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewLoadsBestScore(t *testing.T) {
	e := newTestEngine(t, &recordingStorage{best: 17})

	if e.Best() != 17 {
		t.Errorf("Best() = %d, expected 17", e.Best())
	}
	if e.State() != StateReady {
		t.Errorf("State() = %v, expected ready", e.State())
	}
}

func TestScenarioFreeFall(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()

	startY := e.Snapshot().Player.Y
	for i := 0; i < 10; i++ {
		e.Advance()
	}

	snap := e.Snapshot()
	if snap.State != StateRunning {
		t.Fatalf("State = %v, expected running", snap.State)
	}
	if snap.Player.Velocity != 5.0 {
		t.Errorf("Velocity = %g, expected 5.0", snap.Player.Velocity)
	}
	// 0.5 + 1.0 + ... + 5.0
	if got := snap.Player.Y - startY; got != 27.5 {
		t.Errorf("Y moved by %g, expected 27.5", got)
	}
	if snap.Tick != 10 {
		t.Errorf("Tick = %d, expected 10", snap.Tick)
	}
}

func TestScenarioGroundCollision(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()

	// Resting exactly on the ground; the next step pushes it below
	e.player.Y = phoneWorld.GroundY() - e.player.Height
	e.player.Velocity = 0

	result := e.Advance()

	if result.State != StateEnded || e.State() != StateEnded {
		t.Fatalf("State = %v, expected ended", e.State())
	}
	if result.Cause != CauseGround {
		t.Errorf("Cause = %v, expected ground", result.Cause)
	}

	before := e.Snapshot()
	if e.HandleInput(core.CommandJump) {
		t.Error("HandleInput(Jump) should report no-op after the run ended")
	}
	if after := e.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("jump after end changed state:\n%+v\n%+v", before, after)
	}
}

func TestCeilingCollision(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()

	e.player.Y = 1
	e.HandleInput(core.CommandJump)
	result := e.Advance()

	if result.Cause != CauseCeiling {
		t.Errorf("Cause = %v, expected ceiling", result.Cause)
	}
	if e.Snapshot().Cause != CauseCeiling {
		t.Error("snapshot should remember the end cause")
	}
}

func TestObstacleCollision(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()

	// Segment spanning the whole playable height right at the player
	e.obstacles = append(e.obstacles, Obstacle{ID: 99, X: e.player.X, TopHeight: 567, BottomHeight: 0})

	result := e.Advance()
	if result.Cause != CauseObstacle {
		t.Errorf("Cause = %v, expected obstacle", result.Cause)
	}
}

func TestScenarioResetPersistsBest(t *testing.T) {
	storage := &recordingStorage{best: 10}
	e := newTestEngine(t, storage)
	e.Start()

	e.state = StateEnded
	e.score = 20

	if !e.Reset() {
		t.Fatal("Reset() from ended should succeed")
	}

	if len(storage.saves) != 1 || storage.saves[0] != 20 {
		t.Errorf("saves = %v, expected exactly [20]", storage.saves)
	}
	if e.Best() != 20 {
		t.Errorf("Best() = %d, expected 20", e.Best())
	}
	if e.State() != StateReady || e.Score() != 0 {
		t.Errorf("after reset: state %v score %d, expected ready/0", e.State(), e.Score())
	}
}

func TestResetWithoutNewBestDoesNotSave(t *testing.T) {
	storage := &recordingStorage{best: 10}
	e := newTestEngine(t, storage)
	e.Start()

	e.state = StateEnded
	e.score = 10
	e.Reset()

	if len(storage.saves) != 0 {
		t.Errorf("saves = %v, expected none for a tie", storage.saves)
	}
}

func TestResetSaveFailureKeepsCache(t *testing.T) {
	var buf bytes.Buffer
	storage := &recordingStorage{best: 3, err: errors.New("disk full")}
	e, err := New(Options{
		World:   phoneWorld,
		Config:  config.DefaultFlappyConfig(),
		Storage: storage,
		Logger:  log.New(&buf),
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	e.Start()
	e.state = StateEnded
	e.score = 8

	e.Reset()

	if e.Best() != 8 {
		t.Errorf("Best() = %d, expected cached 8 despite the failed save", e.Best())
	}
	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("expected the save failure to be logged, got %q", buf.String())
	}
}

func TestJumpWhileRunning(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()
	for i := 0; i < 5; i++ {
		e.Advance()
	}

	if !e.HandleInput(core.CommandJump) {
		t.Fatal("HandleInput(Jump) should apply while running")
	}

	// Applied immediately, not deferred to the next step
	p := e.Snapshot().Player
	if p.Velocity != -8 {
		t.Errorf("Velocity = %g, expected -8", p.Velocity)
	}
	if p.Rotation != -20 {
		t.Errorf("Rotation = %g, expected -20", p.Rotation)
	}
}

func TestJumpIgnoredOutsideRunning(t *testing.T) {
	setups := map[string]func(e *Engine){
		"ready": func(e *Engine) {},
		"suspended": func(e *Engine) {
			e.Start()
			e.Advance()
			e.Suspend()
		},
		"ended": func(e *Engine) {
			e.Start()
			e.player.Y = 1000
			e.Advance()
		},
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(t, nil)
			setup(e)

			before := e.Snapshot()
			if e.HandleInput(core.CommandJump) {
				t.Error("HandleInput(Jump) should report no-op")
			}
			if after := e.Snapshot(); !reflect.DeepEqual(before, after) {
				t.Errorf("state changed:\n%+v\n%+v", before, after)
			}
		})
	}
}

func TestSuspendFreezesEverything(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()
	for i := 0; i < 3; i++ {
		e.Advance()
	}

	if !e.HandleInput(core.CommandSuspend) {
		t.Fatal("Suspend should apply while running")
	}
	frozen := e.Snapshot()

	for i := 0; i < 10; i++ {
		if r := e.Advance(); r.State != StateSuspended {
			t.Fatalf("Advance() state = %v, expected suspended", r.State)
		}
	}
	e.HandleInput(core.CommandJump)

	if got := e.Snapshot(); !reflect.DeepEqual(frozen, got) {
		t.Errorf("suspended engine changed:\n%+v\n%+v", frozen, got)
	}

	if !e.HandleInput(core.CommandResume) {
		t.Fatal("Resume should apply while suspended")
	}
	e.Advance()
	if e.Snapshot().Tick != frozen.Tick+1 {
		t.Error("resumed engine should continue from where it stopped")
	}
}

func TestInvalidTransitionsAreNoOps(t *testing.T) {
	e := newTestEngine(t, nil)

	if e.Reset() || e.Resume() || e.Suspend() {
		t.Error("only Start is valid from ready")
	}
	if r := e.Advance(); r.State != StateReady || e.Snapshot().Tick != 0 {
		t.Error("Advance should do nothing while ready")
	}

	e.Start()
	if e.Start() || e.Reset() || e.Resume() {
		t.Error("Start, Reset and Resume are not valid while running")
	}
	if e.HandleInput(core.CommandNone) {
		t.Error("CommandNone should never apply")
	}
}

func TestFirstObstacleSpawnsOffPlayer(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()

	if len(e.Snapshot().Obstacles) != 0 {
		t.Fatal("Start should not pre-spawn obstacles")
	}

	e.Advance()
	obstacles := e.Snapshot().Obstacles
	if len(obstacles) != 1 {
		t.Fatalf("expected 1 obstacle after the first step, got %d", len(obstacles))
	}
	if obstacles[0].X != phoneWorld.Width {
		t.Errorf("first obstacle X = %g, expected the right edge %g", obstacles[0].X, phoneWorld.Width)
	}
	if obstacles[0].Passed {
		t.Error("new obstacle must not be passed")
	}
}

func TestFirstObstacleOffset(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Obstacles.FirstOffset = 200
	e, err := New(Options{World: phoneWorld, Config: cfg})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	e.Start()
	e.Advance()

	if x := e.Snapshot().Obstacles[0].X; x != 575 {
		t.Errorf("first obstacle X = %g, expected 575", x)
	}
}

func TestObstaclesMoveAndEvict(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()

	// Right edge at -1 after the move: still visible. The other leaves.
	e.obstacles = append(e.obstacles,
		Obstacle{ID: 100, X: -51, TopHeight: 10, BottomHeight: 357, Passed: true},
		Obstacle{ID: 101, X: -49, TopHeight: 10, BottomHeight: 357, Passed: true},
	)

	e.Advance()

	obstacles := e.Snapshot().Obstacles
	if len(obstacles) != 2 {
		t.Fatalf("expected evicted + spawned = 2 obstacles, got %d: %+v", len(obstacles), obstacles)
	}
	if obstacles[0].ID != 101 || obstacles[0].X != -51 {
		t.Errorf("survivor = %+v, expected ID 101 at X -51", obstacles[0])
	}
	if obstacles[1].X != phoneWorld.Width {
		t.Errorf("spawned obstacle X = %g, expected %g", obstacles[1].X, phoneWorld.Width)
	}
}

func TestScoringAtMostOncePerObstacle(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()

	// Just behind the player after the first move
	e.obstacles = append(e.obstacles, Obstacle{ID: 100, X: -1, TopHeight: 10, BottomHeight: 357})

	total := 0
	for i := 0; i < 20; i++ {
		r := e.Advance()
		total += r.Scored
		if r.State != StateRunning {
			t.Fatalf("step %d: run ended unexpectedly (%v)", i, r.Cause)
		}
	}

	if e.Score() != 1 || total != 1 {
		t.Errorf("Score() = %d (reported %d), expected exactly 1", e.Score(), total)
	}
}

func TestPassAndDieInSameStep(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()

	e.obstacles = append(e.obstacles, Obstacle{ID: 100, X: -1, TopHeight: 10, BottomHeight: 357})
	e.player.Y = phoneWorld.GroundY() - e.player.Height

	r := e.Advance()

	if r.State != StateEnded || r.Cause != CauseGround {
		t.Errorf("result = %+v, expected ended by ground", r)
	}
	if r.Scored != 1 || e.Score() != 1 {
		t.Errorf("Scored = %d, Score() = %d, expected the pass to count", r.Scored, e.Score())
	}
}

func TestLongRunIdentifiersAndScore(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Obstacles.Gap = 560 // gap always covers the player's fixed altitude
	e, err := New(Options{World: phoneWorld, Config: cfg, Seed: 3})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	e.Start()

	seen := map[uint64]bool{}
	var lastID uint64
	for i := 0; i < 600; i++ {
		e.player.Y = 271.5
		e.player.Velocity = 0
		if r := e.Advance(); r.State != StateRunning {
			t.Fatalf("step %d: run ended (%v)", i, r.Cause)
		}
		for _, o := range e.Snapshot().Obstacles {
			if o.ID < lastID && !seen[o.ID] {
				t.Fatalf("obstacle ID %d appeared after %d", o.ID, lastID)
			}
			seen[o.ID] = true
			lastID = max(lastID, o.ID)
		}
	}

	if len(seen) < 5 {
		t.Errorf("expected several obstacles over 600 steps, saw %d", len(seen))
	}
	if e.Score() < 3 {
		t.Errorf("Score() = %d, expected the player to pass several obstacles", e.Score())
	}
}

func TestDeterminismSameSeed(t *testing.T) {
	run := func() Snapshot {
		e := newTestEngine(t, nil)
		e.Start()
		for i := 0; i < 300; i++ {
			if i%18 == 0 {
				e.HandleInput(core.CommandJump)
			}
			if e.Advance().State != StateRunning {
				break
			}
		}
		return e.Snapshot()
	}

	s1, s2 := run(), run()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("same seed and inputs produced different state:\n%+v\n%+v", s1, s2)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()
	e.Advance()

	snap := e.Snapshot()
	snap.Obstacles[0].X = -999
	snap.Obstacles[0].Passed = true

	if got := e.Snapshot().Obstacles[0]; got.X == -999 || got.Passed {
		t.Error("mutating a snapshot must not affect the engine")
	}
}

func TestStartClearsPreviousRun(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Start()
	for e.Advance().State == StateRunning {
	}
	e.Reset()
	e.Start()

	snap := e.Snapshot()
	if snap.Score != 0 || snap.Tick != 0 || len(snap.Obstacles) != 0 || snap.Player.Velocity != 0 {
		t.Errorf("new run should start clean, got %+v", snap)
	}
	if snap.Cause != CauseNone {
		t.Errorf("Cause = %v, expected none for a fresh run", snap.Cause)
	}
}

func TestRunStateTransitions(t *testing.T) {
	tests := []struct {
		from, to RunState
		legal    bool
	}{
		{StateReady, StateRunning, true},
		{StateRunning, StateEnded, true},
		{StateRunning, StateSuspended, true},
		{StateSuspended, StateRunning, true},
		{StateEnded, StateReady, true},
		{StateReady, StateEnded, false},
		{StateSuspended, StateEnded, false},
		{StateEnded, StateRunning, false},
	}

	for _, tc := range tests {
		if got := tc.from.CanTransition(tc.to); got != tc.legal {
			t.Errorf("%v -> %v legal = %v, expected %v", tc.from, tc.to, got, tc.legal)
		}
	}
}
