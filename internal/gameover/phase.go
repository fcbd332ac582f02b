package gameover

// Phase is the state of a game-over sequence.
type Phase int

const (
	PhaseIntro Phase = iota
	PhaseReveal
	PhaseAwaitConfirmDelete
	PhaseDeleted
	PhaseAwaitExit
	PhaseComplete
)

// String returns the name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "Intro"
	case PhaseReveal:
		return "Reveal"
	case PhaseAwaitConfirmDelete:
		return "AwaitConfirmDelete"
	case PhaseDeleted:
		return "Deleted"
	case PhaseAwaitExit:
		return "AwaitExit"
	case PhaseComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// Scene identifies a host scene the sequencer can ask for.
type Scene int

const (
	SceneMainMenu Scene = iota
)

// String returns the name of the scene.
func (s Scene) String() string {
	if s == SceneMainMenu {
		return "main-menu"
	}
	return "unknown"
}

// Timings holds the durations of the timed phases, in effective seconds.
type Timings struct {
	Intro    float64 // Length of the intro wait
	RevealAt float64 // Remaining intro time at which the card starts showing
	Exit     float64 // Length of the wait after deletion
}

// DefaultTimings returns the standard sequence timings.
func DefaultTimings() Timings {
	return Timings{
		Intro:    1.8,
		RevealAt: 0.8,
		Exit:     1.0,
	}
}
