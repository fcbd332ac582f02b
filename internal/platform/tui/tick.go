// Package tui provides the Bubble Tea host for hardcore mode: file select,
// a level runner, the game-over screen and the SSH server that serves them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameDelta caps a measured frame time, in seconds.
const maxFrameDelta = 0.1

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock measures real time between ticks.
type frameClock struct {
	last     time.Time
	fallback float64
}

// delta returns the seconds since the previous tick. The first tick uses
// the fixed frame time.
func (c *frameClock) delta(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return c.fallback
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	return min(dt, maxFrameDelta)
}
