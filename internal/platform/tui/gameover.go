package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hardcore-arcade/internal/core"
	"github.com/vovakirdan/hardcore-arcade/internal/gameover"
	"github.com/vovakirdan/hardcore-arcade/internal/hardcore"
)

// restorer puts debug mode back when the screen is abandoned.
type restorer interface {
	Restore() error
}

// GameOverModel drives a game-over sequence at the tick rate and renders
// its state.
type GameOverModel struct {
	seq      *gameover.Sequencer
	inbox    *sceneInbox
	debug    restorer
	runtime  core.RuntimeConfig
	slowdown hardcore.Slowdown
	elapsed  float64
	clock    frameClock
	frame    core.InputFrame
	keys     GameOverKeyMap
	help     help.Model
	logger   *log.Logger

	backToMenu bool
	quitting   bool
}

// NewGameOverModel creates the game-over screen. The first seconds play
// in slow motion per slowdown, then at the runtime's time rate.
func NewGameOverModel(seq *gameover.Sequencer, inbox *sceneInbox, debug restorer, rc core.RuntimeConfig, slowdown hardcore.Slowdown, logger *log.Logger) GameOverModel {
	if logger == nil {
		logger = log.Default()
	}
	return GameOverModel{
		seq:      seq,
		inbox:    inbox,
		debug:    debug,
		runtime:  rc,
		slowdown: slowdown,
		clock:    frameClock{fallback: rc.FrameDelta()},
		frame:    core.NewInputFrame(),
		keys:     DefaultGameOverKeyMap(),
		help:     help.New(),
		logger:   logger,
	}
}

// Init starts the tick loop.
func (m GameOverModel) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages for the game-over screen.
func (m GameOverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keys.Action(msg) {
		case core.ActionQuit:
			m.abandon()
			m.quitting = true
			return m, tea.Quit
		case core.ActionConfirm:
			m.frame.Set(core.ActionConfirm)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleTick advances the sequence by the measured, time-scaled frame.
func (m GameOverModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	raw := m.clock.delta(now)
	rc := m.runtime
	if m.elapsed < m.slowdown.Duration && m.slowdown.Rate > 0 {
		rc.TimeRate *= m.slowdown.Rate
	}
	m.elapsed += raw

	m.seq.Tick(m.frame, rc.EffectiveDelta(raw))
	m.frame.Clear()

	if m.requestedMenu() || (m.inbox == nil && m.seq.Done()) {
		m.backToMenu = true
		return m, nil
	}
	return m, tickCmd(m.runtime.TickRate)
}

// requestedMenu drains the scene inbox.
func (m GameOverModel) requestedMenu() bool {
	if m.inbox == nil {
		return false
	}
	scene, ok := m.inbox.Take()
	return ok && scene == gameover.SceneMainMenu
}

// abandon restores debug mode when the program exits mid-sequence.
func (m GameOverModel) abandon() {
	if m.seq.Done() || m.debug == nil {
		return
	}
	if err := m.debug.Restore(); err != nil {
		m.logger.Warn("could not restore debug mode", "error", err)
	}
}

// View renders the game-over screen.
func (m GameOverModel) View() string {
	if m.quitting {
		return ""
	}

	v := m.seq.View()
	var b strings.Builder

	if !v.RevealStarted {
		return centerBlock(mutedStyle.Render("..."), m.runtime.ScreenW, m.runtime.ScreenH)
	}

	var lines []string
	if v.Info != "" {
		lines = append(lines, "", v.Info)
	}
	card := fileCard(v.Summary.FileName, v.Summary.Deaths, v.DeleteEffect, lines...)
	b.WriteString(card)
	b.WriteString("\n\n")

	switch {
	case v.PromptEnabled:
		b.WriteString(promptStyle.Render("Press Enter to delete your save file"))
	case v.DeletionFailed:
		b.WriteString(failureStyle.Render("Failed to delete save file!"))
	case v.DeleteEffect:
		b.WriteString(mutedStyle.Render(fmt.Sprintf("File #%d is gone.", v.Summary.Slot+1)))
	}

	if v.Phase == gameover.PhaseAwaitExit {
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	}

	return centerBlock(b.String(), m.runtime.ScreenW, m.runtime.ScreenH)
}

// BackToMenu returns true once the sequence asked for the main menu.
func (m GameOverModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameOverModel) IsQuitting() bool {
	return m.quitting
}
