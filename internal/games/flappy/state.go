package flappy

// RunState is the phase of the engine's run lifecycle.
type RunState int

const (
	StateReady     RunState = iota // Idle, waiting for start
	StateRunning                   // Simulation active
	StateEnded                     // Collision occurred, simulation frozen
	StateSuspended                 // Halted, resumable without losing state
)

// String returns a human-readable name for the state.
func (s RunState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	case StateSuspended:
		return "suspended"
	default:
		return "unknown"
	}
}

// transitions lists the legal edges of the run-state machine.
var transitions = map[RunState][]RunState{
	StateReady:     {StateRunning},
	StateRunning:   {StateEnded, StateSuspended},
	StateSuspended: {StateRunning},
	StateEnded:     {StateReady},
}

// CanTransition reports whether moving from s to next is legal.
func (s RunState) CanTransition(next RunState) bool {
	for _, to := range transitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// EndCause records what ended a run.
type EndCause int

const (
	CauseNone EndCause = iota
	CauseGround
	CauseCeiling
	CauseObstacle
)

// String returns a human-readable name for the cause.
func (c EndCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseGround:
		return "ground"
	case CauseCeiling:
		return "ceiling"
	case CauseObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}
