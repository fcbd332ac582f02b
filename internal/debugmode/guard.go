// Package debugmode forces the host's debug mode off for the duration of a
// hardcore run and puts the player's own setting back afterwards.
package debugmode

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// DebugMode is the host's tri-state debug setting.
type DebugMode int

const (
	Default DebugMode = iota // Follows the host's launch flags
	Never
	Always
)

// String returns the config name of the mode.
func (m DebugMode) String() string {
	switch m {
	case Never:
		return "never"
	case Always:
		return "always"
	default:
		return "default"
	}
}

// Parse converts a config name into a DebugMode.
func Parse(s string) (DebugMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default", "":
		return Default, nil
	case "never":
		return Never, nil
	case "always":
		return Always, nil
	}
	return Default, fmt.Errorf("debugmode: unknown mode %q", s)
}

// Settings is the host's settings storage as seen by the guard.
type Settings interface {
	// DebugMode returns the live setting.
	DebugMode() DebugMode
	// SetDebugMode changes the live setting without persisting it.
	SetDebugMode(mode DebugMode)
	// SaveSettings persists the live settings.
	SaveSettings() error
	// SaveSnapshot persists the value to restore later.
	SaveSnapshot(mode DebugMode) error
	// Snapshot returns a previously persisted snapshot, if any.
	Snapshot() (DebugMode, bool)
	// ClearSnapshot forgets the persisted snapshot.
	ClearSnapshot() error
}

// Guard remembers the player's debug setting while hardcore forces it off.
type Guard struct {
	settings  Settings
	logger    *log.Logger
	saved     DebugMode
	forcedOff bool
}

// NewGuard creates a guard. The live value read here is what Restore writes
// back if Disable is never called. A snapshot left behind by a process that
// exited while forced off takes precedence, and the guard starts forced off.
func NewGuard(settings Settings, logger *log.Logger) *Guard {
	if logger == nil {
		logger = log.Default()
	}
	g := &Guard{
		settings: settings,
		logger:   logger.WithPrefix("debugmode"),
		saved:    settings.DebugMode(),
	}
	if snap, ok := settings.Snapshot(); ok {
		g.logger.Info("found snapshot from an interrupted run", "mode", snap)
		g.saved = snap
		g.forcedOff = true
	}
	return g
}

// Disable snapshots the live setting and forces it to Never.
// Calling it again before Restore does nothing, so the original value is
// never overwritten by the forced one.
func (g *Guard) Disable() error {
	if g.forcedOff {
		return nil
	}

	g.saved = g.settings.DebugMode()
	g.forcedOff = true

	var firstErr error
	if err := g.settings.SaveSnapshot(g.saved); err != nil {
		g.logger.Error("could not persist debug mode snapshot", "error", err)
		firstErr = fmt.Errorf("debugmode: save snapshot: %w", err)
	}

	g.settings.SetDebugMode(Never)
	if err := g.settings.SaveSettings(); err != nil {
		g.logger.Error("could not save settings", "error", err)
		if firstErr == nil {
			firstErr = fmt.Errorf("debugmode: save settings: %w", err)
		}
	}

	g.logger.Debug("debug mode forced off", "saved", g.saved)
	return firstErr
}

// Restore writes the saved value back to the live setting and persists it.
// It is safe to call any number of times, with or without a prior Disable.
func (g *Guard) Restore() error {
	g.settings.SetDebugMode(g.saved)
	g.forcedOff = false

	var firstErr error
	if err := g.settings.SaveSettings(); err != nil {
		g.logger.Error("could not save settings", "error", err)
		firstErr = fmt.Errorf("debugmode: save settings: %w", err)
	}
	if err := g.settings.ClearSnapshot(); err != nil {
		g.logger.Warn("could not clear debug mode snapshot", "error", err)
		if firstErr == nil {
			firstErr = fmt.Errorf("debugmode: clear snapshot: %w", err)
		}
	}

	g.logger.Debug("debug mode restored", "mode", g.saved)
	return firstErr
}

// ForcedOff reports whether debug mode is currently forced off.
func (g *Guard) ForcedOff() bool {
	return g.forcedOff
}

// Saved returns the value Restore will write.
func (g *Guard) Saved() DebugMode {
	return g.saved
}
