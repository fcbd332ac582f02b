// Package core provides fundamental types shared by the hardcore runtime and
// its hosts. It contains no external dependencies (especially no Bubble Tea)
// so the sequencing logic stays pure and testable.
package core

// RuntimeConfig contains configuration passed to hosts at initialization.
type RuntimeConfig struct {
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	TickRate int     // Simulation ticks per second (default 60)
	TimeRate float64 // Global slow-motion multiplier applied to frame time
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		TimeRate: 1.0,
	}
}

// FrameDelta returns the fixed frame time in seconds for the tick rate.
func (c RuntimeConfig) FrameDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// EffectiveDelta scales a raw frame time by the active time rate.
// A zero or negative rate is treated as real time.
func (c RuntimeConfig) EffectiveDelta(raw float64) float64 {
	if c.TimeRate <= 0 {
		return raw
	}
	return raw * c.TimeRate
}
