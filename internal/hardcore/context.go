// Package hardcore ties the save registry, death classifier, debug mode
// guard and game-over sequence together behind the hooks a game host calls
// from its file select, level and pause code.
package hardcore

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hardcore-arcade/internal/config"
	"github.com/vovakirdan/hardcore-arcade/internal/death"
	"github.com/vovakirdan/hardcore-arcade/internal/debugmode"
	"github.com/vovakirdan/hardcore-arcade/internal/gameover"
	"github.com/vovakirdan/hardcore-arcade/internal/registry"
	"github.com/vovakirdan/hardcore-arcade/internal/storage"
)

// Death sound events.
const (
	SoundDeath       = "event:/char/madeline/death"
	SoundDeathGolden = "event:/new_content/char/madeline/death_golden"
)

// noSlot marks that no file is being played.
const noSlot = -1

// Store is the persistence the context works through.
type Store interface {
	registry.FileStore

	File(slot int) (*storage.SaveFile, error)
	SaveHardcoreFlag(slot int, enabled bool) error
	SetAssistMode(slot int, enabled bool) error
	IncrementDeaths(slot int) error
	RecordDeath(rec storage.DeathRecord) (string, error)
	MarkDeathDeleted(id string, deleted bool) error
}

// Deps holds the collaborators of a Context.
type Deps struct {
	Store    Store
	Settings debugmode.Settings
	Scenes   gameover.SceneRequester
	Logger   *log.Logger

	// Classifier overrides the default death classifier.
	Classifier *death.Classifier

	// Registry shares one slot registry between contexts over the same
	// store. When nil the context builds its own.
	Registry *registry.Registry
}

// PauseMode is the kind of pause menu the host should open.
type PauseMode int

const (
	PauseNormal     PauseMode = iota // Regular menu
	PauseNoRetry                     // Regular menu with retry disabled
	PauseRestricted                  // Resume only
)

// String returns the pause mode name.
func (m PauseMode) String() string {
	switch m {
	case PauseNormal:
		return "normal"
	case PauseNoRetry:
		return "no-retry"
	case PauseRestricted:
		return "restricted"
	default:
		return "unknown"
	}
}

// Slowdown is the time rate applied while a hardcore death plays out.
type Slowdown struct {
	Rate     float64
	Duration float64
}

// Context is the process-lifetime hardcore mode state.
type Context struct {
	store      Store
	registry   *registry.Registry
	guard      *debugmode.Guard
	classifier *death.Classifier
	scenes     gameover.SceneRequester
	cfg        config.Hardcore
	logger     *log.Logger

	mu         sync.Mutex
	activeSlot int
}

// New creates the hardcore context. Settings may be nil, in which case
// debug mode is never touched.
func New(deps Deps, cfg config.Hardcore) *Context {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}

	classifier := deps.Classifier
	if classifier == nil {
		classifier = death.DefaultClassifier()
	}

	c := &Context{
		store:      deps.Store,
		classifier: classifier,
		scenes:     deps.Scenes,
		cfg:        cfg,
		logger:     logger.WithPrefix("hardcore"),
		activeSlot: noSlot,
	}

	c.registry = deps.Registry
	if c.registry == nil {
		var fileStore registry.FileStore
		if deps.Store != nil {
			fileStore = deps.Store
		}
		c.registry = registry.New(fileStore, logger)
	}

	if deps.Settings != nil {
		c.guard = debugmode.NewGuard(deps.Settings, logger)
	}
	return c
}

// Registry exposes the save registry.
func (c *Context) Registry() *registry.Registry {
	return c.registry
}

// Guard exposes the debug mode guard, nil without settings.
func (c *Context) Guard() *debugmode.Guard {
	return c.guard
}

// IsHardcoreFile reports whether the slot holds a hardcore file.
func (c *Context) IsHardcoreFile(slot int) bool {
	return c.registry.IsHardcoreFile(slot)
}

// OnSlotSelected is called when the player highlights a slot in file
// select. An empty slot always starts out as a normal file.
func (c *Context) OnSlotSelected(slot int, exists bool) {
	if !exists {
		c.registry.SetHardcoreFile(slot, false)
	}
}

// ToggleNewFile flips the hardcore flag of a slot that has no file yet and
// returns the new value. Existing files cannot be toggled.
func (c *Context) ToggleNewFile(slot int) bool {
	if c.store != nil && c.store.FileExists(slot) {
		value := c.registry.IsHardcoreFile(slot)
		c.logger.Warn("cannot toggle an existing file", "slot", slot, "hardcore", value)
		return value
	}

	value := !c.registry.IsHardcoreFile(slot)
	c.registry.SetHardcoreFile(slot, value)
	c.logger.Debug("toggled new file", "slot", slot, "hardcore", value)
	return value
}

// OnNewGame is called right after the host created the file in slot. The
// chosen flag is written into the file; a hardcore file gets assist mode
// and debug mode turned off.
func (c *Context) OnNewGame(slot int) error {
	hardcore := c.registry.IsHardcoreFile(slot)

	var firstErr error
	if c.store != nil {
		if err := c.store.SaveHardcoreFlag(slot, hardcore); err != nil {
			c.logger.Error("could not write save data", "slot", slot, "error", err)
			firstErr = fmt.Errorf("hardcore: new game in slot %d: %w", slot, err)
		}
	}

	c.setActive(slot)
	if hardcore {
		c.logger.Info("starting hardcore file", "slot", slot)
		if err := c.lockDown(slot); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OnContinue is called when the player resumes an existing file. The flag
// is read again from the file, since the slot may have been replaced since
// it was cached.
func (c *Context) OnContinue(slot int) error {
	c.setActive(slot)
	if c.store != nil {
		value, err := c.store.LoadHardcoreFlag(slot)
		if err != nil {
			c.logger.Warn("could not get save data, continuing as a normal file", "slot", slot, "error", err)
			value = false
		}
		c.registry.SetHardcoreFile(slot, value)
	}
	if !c.registry.IsHardcoreFile(slot) {
		return nil
	}
	c.logger.Info("continuing hardcore file", "slot", slot)
	return c.lockDown(slot)
}

// lockDown disables assist mode on the file and forces debug mode off.
func (c *Context) lockDown(slot int) error {
	var firstErr error
	if c.store != nil {
		if err := c.store.SetAssistMode(slot, false); err != nil {
			c.logger.Error("could not disable assist mode", "slot", slot, "error", err)
			firstErr = fmt.Errorf("hardcore: disable assist mode: %w", err)
		}
	}
	if c.guard != nil {
		if err := c.guard.Disable(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OnSaveAndQuit is called when the player leaves a level through the pause
// menu.
func (c *Context) OnSaveAndQuit() error {
	return c.leave("save and quit")
}

// OnChapterSelectCancel is called when the player backs out of chapter
// select to the file menu.
func (c *Context) OnChapterSelectCancel() error {
	return c.leave("chapter select cancelled")
}

// leave ends the active run. Debug mode is restored whenever the guard
// holds it off, which also covers a snapshot left by an interrupted run.
func (c *Context) leave(reason string) error {
	slot := c.ActiveSlot()
	c.setActive(noSlot)
	if c.guard == nil || !c.guard.ForcedOff() {
		return nil
	}
	c.logger.Debug("restoring debug mode", "slot", slot, "reason", reason)
	return c.guard.Restore()
}

// ActiveSlot returns the slot being played, or -1.
func (c *Context) ActiveSlot() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeSlot
}

func (c *Context) setActive(slot int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeSlot = slot
}

// IsHardcoreActive reports whether a hardcore file is being played.
func (c *Context) IsHardcoreActive() bool {
	slot := c.ActiveSlot()
	return slot != noSlot && c.registry.IsHardcoreFile(slot)
}

// AssistLocked reports whether assist and variant options must be hidden.
func (c *Context) AssistLocked() bool {
	return c.IsHardcoreActive()
}

// withGate fills in the hardcore gate from the active file.
func (c *Context) withGate(ctx death.Context) death.Context {
	ctx.HardcoreEnabled = c.IsHardcoreActive()
	return ctx
}

// IsHardcoreDeath reports whether a death in ctx would cost the active file.
func (c *Context) IsHardcoreDeath(ctx death.Context) bool {
	return c.classifier.Classify(c.withGate(ctx))
}

// DeathSound returns the sound event to play for a death.
func (c *Context) DeathSound(ctx death.Context) string {
	if c.IsHardcoreDeath(ctx) {
		return SoundDeathGolden
	}
	return SoundDeath
}

// DeathSlowdown returns the dramatic slowdown for a hardcore death.
// A body that bounced off a wall slows a little less but for less time.
func DeathSlowdown(bounced bool) Slowdown {
	if bounced {
		return Slowdown{Rate: 0.35, Duration: 1.4}
	}
	return Slowdown{Rate: 0.30, Duration: 1.75}
}

// PauseMode picks the pause menu. A hardcore player who is not standing
// on safe ground and not in a cutscene only gets to resume.
func (c *Context) PauseMode(safe, inCutscene bool) PauseMode {
	if !c.IsHardcoreActive() {
		return PauseNormal
	}
	if safe || inCutscene {
		return PauseNoRetry
	}
	return PauseRestricted
}

// ShouldSpawnGolden reports whether a golden berry spawns. vanilla is the
// game's own decision.
func (c *Context) ShouldSpawnGolden(vanilla bool) bool {
	if vanilla {
		return true
	}
	return c.cfg.Gameplay.AlwaysSpawnGoldens && c.IsHardcoreActive()
}

// FarewellHasGolden reports whether the final Farewell launch sends the
// player to the golden room.
func (c *Context) FarewellHasGolden(vanilla bool) bool {
	return vanilla || c.IsHardcoreActive()
}

// Timings returns the game-over timings from the configuration.
func (c *Context) Timings() gameover.Timings {
	t := c.cfg.Timings
	if t.Intro <= 0 || t.Exit <= 0 {
		return gameover.DefaultTimings()
	}
	return gameover.Timings{Intro: t.Intro, RevealAt: t.RevealAt, Exit: t.Exit}
}

// OnPlayerDeath handles a death of the player in slot's active file.
//
// A hardcore death deletes the file right away and returns the game-over
// sequence to run; the sequence reports the outcome of that same deletion
// and never deletes a second time. Any other death is counted on the file
// and nil is returned.
func (c *Context) OnPlayerDeath(ctx death.Context) *gameover.Sequencer {
	slot := c.ActiveSlot()
	ctx = c.withGate(ctx)
	hardcore, reason := c.classifier.Verdict(ctx)

	rec := storage.DeathRecord{
		Slot:        slot,
		LevelSet:    ctx.LevelSetID,
		AreaID:      ctx.AreaID,
		Level:       ctx.LevelID,
		PlayerState: ctx.PlayerState.String(),
		Hardcore:    hardcore,
		Reason:      reason,
	}

	if !hardcore {
		if ctx.HardcoreEnabled {
			c.logger.Info("death spared", "slot", slot, "reason", reason)
		}
		c.countDeath(slot)
		c.recordDeath(rec)
		return nil
	}

	c.logger.Info("player died, RIP", "slot", slot, "level", ctx.LevelID)
	summary := c.summary(slot, ctx)

	id := c.recordDeath(rec)
	del := newDeletion(c.registry, slot)
	err := del.run()
	if id != "" && c.store != nil {
		if merr := c.store.MarkDeathDeleted(id, err == nil); merr != nil {
			c.logger.Warn("could not update death log", "id", id, "error", merr)
		}
	}
	c.setActive(noSlot)

	deps := gameover.Deps{
		Files:  del,
		Scenes: c.scenes,
		Logger: c.logger,
	}
	if c.guard != nil {
		deps.Debug = c.guard
	}
	return gameover.New(summary, deps, gameover.WithTimings(c.Timings()))
}

func (c *Context) summary(slot int, ctx death.Context) gameover.Summary {
	var name string
	var deaths int
	if c.store != nil {
		if f, err := c.store.File(slot); err == nil {
			name = f.Name
			deaths = f.Deaths + 1
		}
	}
	s := gameover.SummaryFromContext(slot, name, ctx)
	s.Deaths = deaths
	return s
}

func (c *Context) countDeath(slot int) {
	if c.store == nil || slot == noSlot {
		return
	}
	if err := c.store.IncrementDeaths(slot); err != nil {
		c.logger.Warn("could not count death", "slot", slot, "error", err)
	}
}

func (c *Context) recordDeath(rec storage.DeathRecord) string {
	if c.store == nil {
		return ""
	}
	id, err := c.store.RecordDeath(rec)
	if err != nil {
		c.logger.Warn("could not record death", "slot", rec.Slot, "error", err)
		return ""
	}
	c.logger.Debug("death recorded", "id", id, "hardcore", rec.Hardcore)
	return id
}
