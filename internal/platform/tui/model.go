package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hardcore-arcade/internal/config"
	"github.com/vovakirdan/hardcore-arcade/internal/core"
	"github.com/vovakirdan/hardcore-arcade/internal/death"
	"github.com/vovakirdan/hardcore-arcade/internal/gameover"
	"github.com/vovakirdan/hardcore-arcade/internal/hardcore"
	"github.com/vovakirdan/hardcore-arcade/internal/storage"
)

// fallbackArea is played when the configured campaign is empty.
var fallbackArea = config.AreaConfig{
	LevelSet: "Celeste",
	ID:       1,
	Name:     "Forsaken City",
	Mode:     "a-side",
	Levels:   []string{"a-00"},
}

// RunnerModel is a minimal level runner: the player walks through the
// campaign's rooms and can die in any player state.
type RunnerModel struct {
	hc       *hardcore.Context
	store    *storage.Store
	cfg      config.Hardcore
	runtime  core.RuntimeConfig
	logger   *log.Logger
	file     storage.SaveFile
	campaign []config.AreaConfig
	area     int
	level    int
	state    death.PlayerState
	keys     RunnerKeyMap
	help     help.Model
	status   string
	sound    string

	paused    bool
	pauseMode hardcore.PauseMode

	seq        *gameover.Sequencer
	backToMenu bool
	quitting   bool
}

// NewRunnerModel creates a runner for the file, resuming at its saved room.
func NewRunnerModel(hc *hardcore.Context, store *storage.Store, cfg config.Hardcore, rc core.RuntimeConfig, file storage.SaveFile, logger *log.Logger) RunnerModel {
	if logger == nil {
		logger = log.Default()
	}

	campaign := cfg.Campaign
	if len(campaign) == 0 {
		campaign = []config.AreaConfig{fallbackArea}
	}

	h := help.New()
	h.ShowAll = false

	m := RunnerModel{
		hc:       hc,
		store:    store,
		cfg:      cfg,
		runtime:  rc,
		logger:   logger.WithPrefix("runner"),
		file:     file,
		campaign: campaign,
		keys:     DefaultRunnerKeyMap(),
		help:     h,
	}
	m.area, m.level = m.locate(file.AreaID, file.Level)
	return m
}

// locate finds the campaign position of a saved room, or the start.
func (m RunnerModel) locate(areaID int, level string) (int, int) {
	for i, a := range m.campaign {
		if a.ID != areaID {
			continue
		}
		for j, l := range a.Levels {
			if l == level {
				return i, j
			}
		}
	}
	return 0, 0
}

// Init initializes the runner.
func (m RunnerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runner.
func (m RunnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m RunnerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.leave(m.hc.OnSaveAndQuit)
		m.quitting = true
		return m, tea.Quit
	}

	if m.paused {
		return m.handlePaused(action)
	}

	switch action {
	case core.ActionDie:
		m.die()
	case core.ActionCycleState:
		m.state = m.state.Next()
		m.status = ""
	case core.ActionNextLevel:
		m.advance()
	case core.ActionPause, core.ActionBack:
		m.paused = true
		m.pauseMode = m.hc.PauseMode(m.state == death.StateNormal, death.IsNoControl(m.state))
	case core.ActionCancel:
		m.leave(m.hc.OnChapterSelectCancel)
		m.backToMenu = true
	}
	return m, nil
}

// handlePaused processes input while the pause menu is open.
func (m RunnerModel) handlePaused(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionPause:
		m.paused = false

	case core.ActionRetry:
		if m.pauseMode != hardcore.PauseNormal {
			m.status = "retry is disabled"
			return m, nil
		}
		m.paused = false
		m.die()

	case core.ActionBack:
		if m.pauseMode == hardcore.PauseRestricted {
			m.status = "find safe ground before leaving"
			return m, nil
		}
		m.paused = false
		m.leave(m.hc.OnSaveAndQuit)
		m.backToMenu = true
	}
	return m, nil
}

// deathContext snapshots the current room for the classifier.
func (m RunnerModel) deathContext() death.Context {
	area := m.campaign[m.area]
	mode, err := death.ParseAreaMode(area.Mode)
	if err != nil {
		m.logger.Warn("bad campaign area, playing it as an a-side", "area", area.Name, "error", err)
	}
	return death.Context{
		LevelSetID:  area.LevelSet,
		AreaID:      area.ID,
		LevelID:     area.Levels[m.level],
		PlayerState: m.state,
		AreaName:    area.Name,
		AreaMode:    mode,
	}
}

// die kills the player in the current room.
func (m *RunnerModel) die() {
	ctx := m.deathContext()
	m.sound = m.hc.DeathSound(ctx)

	if seq := m.hc.OnPlayerDeath(ctx); seq != nil {
		m.seq = seq
		return
	}

	m.file.Deaths++
	m.status = fmt.Sprintf("You died in %s (%s)", ctx.LevelID, ctx.PlayerState)
	m.state = death.StateNormal
}

// advance moves to the next room, then the next area.
func (m *RunnerModel) advance() {
	area := m.campaign[m.area]
	switch {
	case m.level+1 < len(area.Levels):
		m.level++
	case m.area+1 < len(m.campaign):
		m.area++
		m.level = 0
	default:
		m.status = "Campaign complete!"
		return
	}
	m.status = ""
	m.state = death.StateNormal
}

// leave saves the position and runs the host hook for leaving the level.
func (m *RunnerModel) leave(hook func() error) {
	if m.store != nil {
		area := m.campaign[m.area]
		m.file.AreaID = area.ID
		m.file.Level = area.Levels[m.level]
		if err := m.store.SaveFile(m.file); err != nil {
			m.logger.Warn("could not save file", "slot", m.file.Slot, "error", err)
		}
	}
	if err := hook(); err != nil {
		m.logger.Warn("could not restore settings", "error", err)
	}
}

// View renders the runner.
func (m RunnerModel) View() string {
	if m.quitting {
		return ""
	}

	ctx := m.deathContext()
	var b strings.Builder

	b.WriteString("\n")
	header := fmt.Sprintf("%s %s", ctx.AreaName, ctx.AreaMode)
	b.WriteString(centerText(titleStyle.Render(header), m.runtime.ScreenW))
	b.WriteString("\n\n")

	lines := []string{
		fmt.Sprintf("File:   %s (slot #%d)", m.file.Name, m.file.Slot+1),
		fmt.Sprintf("Room:   %s", ctx.LevelID),
		fmt.Sprintf("State:  %s", ctx.PlayerState),
		fmt.Sprintf("Deaths: %d", m.file.Deaths),
	}
	if m.hc.ShouldSpawnGolden(false) {
		lines = append(lines, "Golden: a golden berry waits in this room")
	}
	for _, l := range lines {
		b.WriteString(centerText(l, m.runtime.ScreenW))
		b.WriteString("\n")
	}

	if m.paused {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(m.runtime.ScreenW, lipgloss.Center, pauseStyle.Render(m.pauseMenu())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(centerText(statusStyle.Render(m.status), m.runtime.ScreenW))
		b.WriteString("\n")
	}
	if m.sound != "" {
		b.WriteString(centerText(mutedStyle.Render("♪ "+m.sound), m.runtime.ScreenW))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.runtime.ScreenW))

	view := b.String()
	if m.hc.IsHardcoreActive() {
		view = placeIcon(view, renderIcon(m.cfg.Icon.Mode), m.cfg.Icon.Position, m.runtime.ScreenW)
	}
	return view
}

// pauseMenu lists what the pause menu offers in the current mode.
func (m RunnerModel) pauseMenu() string {
	options := []string{"PAUSED", "", "p: resume"}
	switch m.pauseMode {
	case hardcore.PauseNormal:
		options = append(options, "r: retry", "esc: save & quit")
	case hardcore.PauseNoRetry:
		options = append(options, "esc: save & quit")
	}
	return strings.Join(options, "\n")
}

// Sequencer returns the game-over sequence after a hardcore death.
func (m RunnerModel) Sequencer() *gameover.Sequencer {
	return m.seq
}

// BackToMenu returns true if the player left the level.
func (m RunnerModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user requested to quit entirely.
func (m RunnerModel) IsQuitting() bool {
	return m.quitting
}

// Position returns the current area index, room and player state.
func (m RunnerModel) Position() (area int, level string, state death.PlayerState) {
	return m.area, m.campaign[m.area].Levels[m.level], m.state
}

// Paused returns whether the pause menu is open and which one.
func (m RunnerModel) Paused() (bool, hardcore.PauseMode) {
	return m.paused, m.pauseMode
}

// Status returns the last status message.
func (m RunnerModel) Status() string {
	return m.status
}

// Deaths returns the death count shown for the file.
func (m RunnerModel) Deaths() int {
	return m.file.Deaths
}
