package core

// Action represents a semantic action, abstracted from physical key presses.
// Hosts translate keys into actions; the runtime only sees actions.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, Up arrow - move selection up
	ActionDown              // S, Down arrow - move selection down
	ActionConfirm           // Enter, Space - confirm prompt / skip presentation
	ActionBack              // B, Escape - save & quit / leave chapter select
	ActionToggle            // T - toggle hardcore on a new file
	ActionDie               // D - kill the player in the level runner
	ActionCycleState        // S - cycle the player state in the level runner
	ActionNextLevel         // N - advance to the next level
	ActionPause             // P - open the pause menu
	ActionRetry             // R - retry the level from the pause menu
	ActionCancel            // C - back out of chapter select
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionToggle:
		return "Toggle"
	case ActionDie:
		return "Die"
	case ActionCycleState:
		return "CycleState"
	case ActionNextLevel:
		return "NextLevel"
	case ActionPause:
		return "Pause"
	case ActionRetry:
		return "Retry"
	case ActionCancel:
		return "Cancel"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input collected during one simulation tick.
// Every action is edge-triggered: it is set when the key was pressed during
// the frame, and several presses of the same key collapse into one.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Press returns a frame with the given actions already set.
func Press(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Confirmed reports whether confirm was pressed this frame.
func (f InputFrame) Confirmed() bool {
	return f.Has(ActionConfirm)
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
