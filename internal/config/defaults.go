package config

import (
	_ "embed"
)

//go:embed defaults/hardcore.yaml
var defaultHardcoreYAML []byte

// DefaultHardcoreConfig returns the default hardcore configuration.
func DefaultHardcoreConfig() Hardcore {
	return Hardcore{
		LogLevel: "info",
		Timings: TimingsConfig{
			Intro:    1.8,
			RevealAt: 0.8,
			Exit:     1.0,
		},
		Icon: IconConfig{
			Mode:     IconOn,
			Position: IconBottomLeft,
		},
		Gameplay: GameplayConfig{
			AlwaysSpawnGoldens: false,
			TickRate:           60,
			Slots:              3,
			SlowMotion:         1.0,
		},
		Campaign: []AreaConfig{
			{
				LevelSet: "Celeste",
				ID:       1,
				Name:     "Forsaken City",
				Mode:     "a-side",
				Levels:   []string{"a-00", "a-01", "a-02", "a-03"},
			},
			{
				LevelSet: "Celeste",
				ID:       10,
				Name:     "Farewell",
				Mode:     "a-side",
				Levels:   []string{"j-16", "j-17", "j-18"},
			},
		},
	}
}
