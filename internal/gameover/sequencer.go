// Package gameover drives the game-over sequence that follows a hardcore
// death: a short intro, the file card reveal, the delete prompt, the deletion
// itself, and the hand-off back to the host's main menu.
//
// The sequencer is a plain state machine advanced by Tick once per frame. All
// pending state is the current phase plus the remaining timer, so a sequence
// can be driven by synthetic tick streams in tests.
package gameover

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hardcore-arcade/internal/core"
)

// Files deletes save files and invalidates their cached hardcore flag.
type Files interface {
	DeleteFile(slot int) error
	OnFileDeleted(slot int)
}

// DebugRestorer puts the player's debug setting back.
type DebugRestorer interface {
	Restore() error
}

// SceneRequester asks the host to switch scenes. The request is
// fire-and-forget.
type SceneRequester interface {
	RequestScene(target Scene)
}

// Deps are the collaborators of a sequencer.
type Deps struct {
	Files  Files
	Debug  DebugRestorer
	Scenes SceneRequester
	Logger *log.Logger
}

// Option configures a sequencer.
type Option func(*Sequencer)

// WithTimings overrides the default phase durations.
func WithTimings(t Timings) Option {
	return func(s *Sequencer) {
		s.timings = t
	}
}

// View is what the presentation layer needs to draw one frame.
type View struct {
	Phase          Phase
	Timer          float64
	Summary        Summary
	Info           string // Death info line, set once the card is revealed
	RevealStarted  bool   // The card's show animation has been triggered
	Snapped        bool   // The card was snapped into place by a skip
	FadeCancelled  bool   // The scene fade-in was cancelled by a skip
	PromptEnabled  bool   // The delete prompt accepts input
	DeleteEffect   bool   // The deletion visual effect should play
	DeletionFailed bool   // The file could not be removed
}

// Sequencer runs one game-over sequence. Create a new one per death; a
// completed sequencer does nothing.
type Sequencer struct {
	summary Summary
	deps    Deps
	logger  *log.Logger
	timings Timings

	phase Phase
	timer float64

	info           string
	revealStarted  bool
	snapped        bool
	fadeCancelled  bool
	promptEnabled  bool
	deleteAttempts int
	deleteEffect   bool
	deletionFailed bool
	err            error
	ticks          int
}

// New creates a sequencer in the Intro phase.
func New(summary Summary, deps Deps, opts ...Option) *Sequencer {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Sequencer{
		summary: summary,
		deps:    deps,
		logger:  logger.WithPrefix("gameover"),
		timings: DefaultTimings(),
		phase:   PhaseIntro,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.timer = s.timings.Intro
	return s
}

// Tick advances the sequence by one frame. in carries the edge-triggered
// confirm press for this frame and dt is the effective frame time, so a
// host-side slow motion stretches the timed waits. At most one phase
// transition happens per call.
func (s *Sequencer) Tick(in core.InputFrame, dt float64) {
	if s.phase == PhaseComplete {
		return
	}
	s.ticks++
	confirm := in.Confirmed()

	switch s.phase {
	case PhaseIntro:
		s.tickIntro(confirm, dt)
	case PhaseReveal:
		s.tickReveal()
	case PhaseAwaitConfirmDelete:
		s.tickAwaitConfirmDelete(confirm)
	case PhaseDeleted:
		// Swallow this frame so the press that confirmed the deletion does
		// not also skip the exit wait.
		s.phase = PhaseAwaitExit
		s.timer = s.timings.Exit
	case PhaseAwaitExit:
		s.tickAwaitExit(confirm, dt)
	}
}

func (s *Sequencer) tickIntro(confirm bool, dt float64) {
	if confirm {
		s.snapped = true
		s.fadeCancelled = true
		s.revealStarted = true
		s.phase = PhaseReveal
		return
	}

	if s.timer < s.timings.RevealAt && !s.revealStarted {
		s.revealStarted = true
	}

	s.timer -= dt
	if s.timer <= 0 {
		s.timer = 0
		s.revealStarted = true
		s.phase = PhaseReveal
	}
}

// tickReveal ignores input: the press that skipped the intro must not also
// answer the delete prompt.
func (s *Sequencer) tickReveal() {
	s.info = s.summary.Info()
	s.promptEnabled = true
	s.phase = PhaseAwaitConfirmDelete
}

func (s *Sequencer) tickAwaitConfirmDelete(confirm bool) {
	if !confirm {
		return
	}

	s.promptEnabled = false
	s.deleteOnce()
	s.phase = PhaseDeleted
}

// deleteOnce performs the destructive action. A failure does not stop the
// sequence; it is only surfaced for display.
func (s *Sequencer) deleteOnce() {
	if s.deleteAttempts > 0 {
		return
	}
	s.deleteAttempts++

	if s.deps.Files == nil {
		s.deletionFailed = true
		s.logger.Error("no file store to delete through", "slot", s.summary.Slot)
		return
	}

	if err := s.deps.Files.DeleteFile(s.summary.Slot); err != nil {
		s.err = err
		s.deletionFailed = true
		s.logger.Error("save file was not fully removed", "slot", s.summary.Slot, "error", err)
		return
	}

	s.deps.Files.OnFileDeleted(s.summary.Slot)
	s.deleteEffect = true
	s.logger.Info("save file deleted", "slot", s.summary.Slot)
}

func (s *Sequencer) tickAwaitExit(confirm bool, dt float64) {
	if !confirm {
		s.timer -= dt
		if s.timer > 0 {
			return
		}
		s.timer = 0
	}
	s.finish()
}

func (s *Sequencer) finish() {
	if s.deps.Debug != nil {
		if err := s.deps.Debug.Restore(); err != nil {
			s.logger.Warn("could not restore debug mode", "error", err)
		}
	}
	if s.deps.Scenes != nil {
		s.deps.Scenes.RequestScene(SceneMainMenu)
	}
	s.phase = PhaseComplete
	s.logger.Debug("sequence complete", "slot", s.summary.Slot, "ticks", s.ticks)
}

// Phase returns the current phase.
func (s *Sequencer) Phase() Phase {
	return s.phase
}

// Done reports whether the sequence has completed.
func (s *Sequencer) Done() bool {
	return s.phase == PhaseComplete
}

// Timer returns the remaining time of the current timed phase.
func (s *Sequencer) Timer() float64 {
	return s.timer
}

// DeletionFailed reports whether the deletion attempt failed.
func (s *Sequencer) DeletionFailed() bool {
	return s.deletionFailed
}

// DeleteAttempts returns how many times deletion has been attempted.
func (s *Sequencer) DeleteAttempts() int {
	return s.deleteAttempts
}

// Err returns the deletion error, if any.
func (s *Sequencer) Err() error {
	return s.err
}

// Summary returns the death summary the sequence was created with.
func (s *Sequencer) Summary() Summary {
	return s.summary
}

// View returns a snapshot of the presentation state.
func (s *Sequencer) View() View {
	return View{
		Phase:          s.phase,
		Timer:          s.timer,
		Summary:        s.summary,
		Info:           s.info,
		RevealStarted:  s.revealStarted,
		Snapped:        s.snapped,
		FadeCancelled:  s.fadeCancelled,
		PromptEnabled:  s.promptEnabled,
		DeleteEffect:   s.deleteEffect,
		DeletionFailed: s.deletionFailed,
	}
}
