package tui

import (
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hardcore-arcade/internal/config"
	"github.com/vovakirdan/hardcore-arcade/internal/core"
	"github.com/vovakirdan/hardcore-arcade/internal/debugmode"
	"github.com/vovakirdan/hardcore-arcade/internal/gameover"
	"github.com/vovakirdan/hardcore-arcade/internal/hardcore"
	"github.com/vovakirdan/hardcore-arcade/internal/registry"
	"github.com/vovakirdan/hardcore-arcade/internal/storage"
)

// App bundles what every session shares.
type App struct {
	Store   *storage.Store // may be nil; files then cannot be created
	Config  config.Hardcore
	Runtime core.RuntimeConfig
	Logger  *log.Logger
	Claims  *SlotClaims // nil when only one session can run

	// Registry is shared by every session over Store. When nil each
	// session builds its own.
	Registry *registry.Registry
}

// sceneInbox collects scene requests until the session picks them up.
type sceneInbox struct {
	mu      sync.Mutex
	pending []gameover.Scene
}

// RequestScene queues a scene switch.
func (b *sceneInbox) RequestScene(target gameover.Scene) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, target)
}

// Take pops the oldest request.
func (b *sceneInbox) Take() (gameover.Scene, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) == 0 {
		return 0, false
	}
	scene := b.pending[0]
	b.pending = b.pending[1:]
	return scene, true
}

// screen is the active part of a session.
type screen int

const (
	screenMenu screen = iota
	screenRunner
	screenGameOver
	screenDeaths
)

// SessionModel manages the full session flow:
// file select -> level -> game over -> file select.
// This is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	app      App
	hc       *hardcore.Context
	inbox    *sceneInbox
	runtime  core.RuntimeConfig
	logger   *log.Logger
	username string
	owner    string
	slot     int // claimed slot, or -1

	screen   screen
	menu     SlotMenuModel
	runner   RunnerModel
	gameOver GameOverModel
	deaths   DeathLogModel
	quitting bool
}

// NewSessionModel creates a session with its own hardcore context over
// the shared store. owner identifies the session in slot claims.
func NewSessionModel(app App, username, owner string) SessionModel {
	logger := app.Logger
	if logger == nil {
		logger = log.Default()
	}
	if username != "" {
		logger = logger.With("user", username)
	}

	rc := app.Runtime
	if rc.TickRate <= 0 {
		rc.TickRate = app.Config.Gameplay.TickRate
	}
	rc.TimeRate = app.Config.Gameplay.SlowMotion

	inbox := &sceneInbox{}
	m := SessionModel{
		app:      app,
		inbox:    inbox,
		runtime:  rc,
		logger:   logger,
		username: username,
		owner:    owner,
		slot:     -1,
	}
	m.hc = newHardcoreContext(app, inbox, logger)
	m.menu = NewSlotMenuModel(app.Store, m.hc, app.Config.Gameplay.Slots, rc)
	return m
}

// newHardcoreContext wires a hardcore context to the store.
func newHardcoreContext(app App, scenes gameover.SceneRequester, logger *log.Logger) *hardcore.Context {
	deps := hardcore.Deps{
		Scenes:   scenes,
		Logger:   logger,
		Registry: app.Registry,
	}
	if app.Store != nil {
		deps.Store = app.Store
		settings, err := debugmode.NewStoreSettings(app.Store)
		if err != nil {
			logger.Warn("could not load debug mode, using default", "error", err)
		}
		deps.Settings = settings
	}
	return hardcore.New(deps, app.Config)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenRunner:
		return m.updateRunner(msg)
	case screenGameOver:
		return m.updateGameOver(msg)
	case screenDeaths:
		return m.updateDeaths(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates on the file select screen.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(SlotMenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsDeaths() {
		m.deaths = NewDeathLogModel(m.app.Store, m.app.Config.Gameplay.Slots, m.runtime.ScreenW, m.runtime.ScreenH)
		m.screen = screenDeaths
		return m, m.deaths.Init()
	}

	if choice := m.menu.Choice(); choice != nil {
		return m.startRun(*choice)
	}

	return m, cmd
}

// startRun creates or resumes the chosen file and enters the level.
func (m SessionModel) startRun(choice SlotChoice) (tea.Model, tea.Cmd) {
	if claims := m.app.Claims; claims != nil {
		if !claims.Claim(choice.Slot, m.owner) {
			return m.toMenu(fmt.Sprintf("slot #%d is being played in another session", choice.Slot+1))
		}
		m.slot = choice.Slot
	}

	file, err := m.openFile(choice)
	if err != nil {
		m.logger.Error("could not start file", "slot", choice.Slot, "error", err)
		return m.toMenu(fmt.Sprintf("could not start file: %v", err))
	}

	m.runner = NewRunnerModel(m.hc, m.app.Store, m.app.Config, m.runtime, *file, m.logger)
	m.screen = screenRunner
	return m, m.runner.Init()
}

// openFile runs the new game or continue hooks and loads the file.
func (m SessionModel) openFile(choice SlotChoice) (*storage.SaveFile, error) {
	store := m.app.Store
	if store == nil {
		return nil, errors.New("no save storage")
	}

	if choice.NewGame {
		// The slot is claimed now; pin the mode picked in this session's
		// menu in case another session reset the shared flag meanwhile.
		m.hc.Registry().SetHardcoreFile(choice.Slot, choice.Hardcore)
		if err := store.CreateFile(choice.Slot, choice.Name); err != nil {
			return nil, err
		}
		if err := m.hc.OnNewGame(choice.Slot); err != nil {
			m.logger.Warn("new game hook failed", "slot", choice.Slot, "error", err)
		}
	} else if err := m.hc.OnContinue(choice.Slot); err != nil {
		m.logger.Warn("continue hook failed", "slot", choice.Slot, "error", err)
	}

	return store.File(choice.Slot)
}

// updateRunner handles updates while a level is played.
func (m SessionModel) updateRunner(msg tea.Msg) (tea.Model, tea.Cmd) {
	newRunner, cmd := m.runner.Update(msg)
	if runner, ok := newRunner.(RunnerModel); ok {
		m.runner = runner
	}

	if m.runner.IsQuitting() {
		m.releaseSlot()
		m.quitting = true
		return m, tea.Quit
	}

	if seq := m.runner.Sequencer(); seq != nil {
		var debug restorer
		if g := m.hc.Guard(); g != nil {
			debug = g
		}
		m.gameOver = NewGameOverModel(seq, m.inbox, debug, m.runtime, hardcore.DeathSlowdown(false), m.logger)
		m.screen = screenGameOver
		return m, m.gameOver.Init()
	}

	if m.runner.BackToMenu() {
		return m.toMenu("")
	}

	return m, cmd
}

// updateGameOver handles updates while the game-over sequence runs.
func (m SessionModel) updateGameOver(msg tea.Msg) (tea.Model, tea.Cmd) {
	newGameOver, cmd := m.gameOver.Update(msg)
	if gameOver, ok := newGameOver.(GameOverModel); ok {
		m.gameOver = gameOver
	}

	if m.gameOver.IsQuitting() {
		m.releaseSlot()
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameOver.BackToMenu() {
		return m.toMenu("")
	}

	return m, cmd
}

// updateDeaths handles updates on the death log.
func (m SessionModel) updateDeaths(msg tea.Msg) (tea.Model, tea.Cmd) {
	newDeaths, cmd := m.deaths.Update(msg)
	if deaths, ok := newDeaths.(DeathLogModel); ok {
		m.deaths = deaths
	}

	if m.deaths.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.deaths.IsGoingBack() {
		return m.toMenu("")
	}

	return m, cmd
}

// toMenu returns to a freshly loaded file select screen.
func (m SessionModel) toMenu(status string) (tea.Model, tea.Cmd) {
	m.releaseSlot()
	m.menu = NewSlotMenuModel(m.app.Store, m.hc, m.app.Config.Gameplay.Slots, m.runtime).WithStatus(status)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// releaseSlot gives up the claimed slot, if any.
func (m *SessionModel) releaseSlot() {
	if m.app.Claims != nil && m.slot >= 0 {
		m.app.Claims.Release(m.slot, m.owner)
	}
	m.slot = -1
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenRunner:
		return m.runner.View()
	case screenGameOver:
		return m.gameOver.View()
	case screenDeaths:
		return m.deaths.View()
	default:
		return m.menu.View()
	}
}

// Context returns the session's hardcore context.
func (m SessionModel) Context() *hardcore.Context {
	return m.hc
}

// Screen returns the name of the active screen.
func (m SessionModel) Screen() string {
	switch m.screen {
	case screenRunner:
		return "runner"
	case screenGameOver:
		return "gameover"
	case screenDeaths:
		return "deaths"
	default:
		return "menu"
	}
}

// Run starts a local session in the terminal.
func Run(app App) error {
	model := NewSessionModel(app, "", "local")
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
