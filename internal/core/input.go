package core

// Command is a semantic instruction delivered to the engine by a shell.
// Shells translate raw key presses or taps into at most one command per gesture.
type Command int

const (
	CommandNone    Command = iota
	CommandJump            // Tap/flap
	CommandStart           // Begin a run from the ready screen
	CommandSuspend         // Halt a running run
	CommandResume          // Continue a suspended run
	CommandReset           // Return to the ready screen after a crash
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandJump:
		return "Jump"
	case CommandStart:
		return "Start"
	case CommandSuspend:
		return "Suspend"
	case CommandResume:
		return "Resume"
	case CommandReset:
		return "Reset"
	default:
		return "Unknown"
	}
}
