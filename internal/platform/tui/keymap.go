package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hardcore-arcade/internal/core"
)

// binding pairs a key binding with the action it produces.
type binding struct {
	key    key.Binding
	action core.Action
}

// mapKey returns the action of the first binding matching msg.
func mapKey(msg tea.KeyMsg, bindings []binding) core.Action {
	for _, b := range bindings {
		if key.Matches(msg, b.key) {
			return b.action
		}
	}
	return core.ActionNone
}

// MenuKeyMap defines the key bindings for the file select menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Toggle key.Binding
	Deaths key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns default file select bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle hardcore"),
		),
		Deaths: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab", "death log"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Toggle, k.Deaths, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Toggle, k.Deaths, k.Quit},
	}
}

// Action translates a key message to a menu action.
// The death log key has no action and is matched by the menu directly.
func (k MenuKeyMap) Action(msg tea.KeyMsg) core.Action {
	return mapKey(msg, []binding{
		{k.Quit, core.ActionQuit},
		{k.Up, core.ActionUp},
		{k.Down, core.ActionDown},
		{k.Select, core.ActionConfirm},
		{k.Toggle, core.ActionToggle},
	})
}

// RunnerKeyMap defines the key bindings inside a level.
type RunnerKeyMap struct {
	Die        key.Binding
	CycleState key.Binding
	NextLevel  key.Binding
	Pause      key.Binding
	Retry      key.Binding
	SaveQuit   key.Binding
	Cancel     key.Binding
	Quit       key.Binding
}

// DefaultRunnerKeyMap returns default level runner bindings.
func DefaultRunnerKeyMap() RunnerKeyMap {
	return RunnerKeyMap{
		Die: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "die"),
		),
		CycleState: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "player state"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next room"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		SaveQuit: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "save & quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chapter select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k RunnerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Die, k.CycleState, k.NextLevel, k.Pause, k.SaveQuit, k.Cancel, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunnerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Die, k.CycleState, k.NextLevel},
		{k.Pause, k.Retry, k.SaveQuit, k.Cancel, k.Quit},
	}
}

// Action translates a key message to a runner action.
func (k RunnerKeyMap) Action(msg tea.KeyMsg) core.Action {
	return mapKey(msg, []binding{
		{k.Quit, core.ActionQuit},
		{k.Die, core.ActionDie},
		{k.CycleState, core.ActionCycleState},
		{k.NextLevel, core.ActionNextLevel},
		{k.Pause, core.ActionPause},
		{k.Retry, core.ActionRetry},
		{k.SaveQuit, core.ActionBack},
		{k.Cancel, core.ActionCancel},
	})
}

// GameOverKeyMap defines the key bindings on the game-over screen.
type GameOverKeyMap struct {
	Confirm key.Binding
	Quit    key.Binding
}

// DefaultGameOverKeyMap returns default game-over bindings.
func DefaultGameOverKeyMap() GameOverKeyMap {
	return GameOverKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k GameOverKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm}
}

// FullHelp returns key bindings for the full help view.
func (k GameOverKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Confirm, k.Quit}}
}

// Action translates a key message to a game-over action.
// Every key message is one press, so the confirm it yields is already an
// edge.
func (k GameOverKeyMap) Action(msg tea.KeyMsg) core.Action {
	return mapKey(msg, []binding{
		{k.Quit, core.ActionQuit},
		{k.Confirm, core.ActionConfirm},
	})
}
