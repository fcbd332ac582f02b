package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/hardcore-arcade/internal/death"
)

const hardcoreFile = "hardcore.yaml"

// LoadHardcore loads hardcore mode configuration.
// Search order: customPath -> ~/.arcade/configs/hardcore.yaml -> ./configs/hardcore.yaml -> embedded default
//
// Keys missing from a file keep their default values.
func LoadHardcore(customPath string) (Hardcore, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultHardcoreConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseHardcore(data)
		if err != nil {
			return DefaultHardcoreConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(hardcoreFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseHardcore(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", hardcoreFile)); err == nil {
		if cfg, err := parseHardcore(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseHardcore(defaultHardcoreYAML)
	if err != nil {
		return DefaultHardcoreConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseHardcore decodes data over the hardcoded defaults and validates
// the result.
func parseHardcore(data []byte) (Hardcore, error) {
	cfg := DefaultHardcoreConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Hardcore) Validate() error {
	if c.Timings.Intro <= 0 || c.Timings.Exit <= 0 {
		return fmt.Errorf("config: timings must be positive (intro %.2f, exit %.2f)", c.Timings.Intro, c.Timings.Exit)
	}
	if c.Timings.RevealAt < 0 || c.Timings.RevealAt > c.Timings.Intro {
		return fmt.Errorf("config: reveal_at %.2f must be within the intro", c.Timings.RevealAt)
	}
	if _, err := ParseIconPosition(string(c.Icon.Position)); err != nil {
		return err
	}
	if c.Gameplay.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.Gameplay.TickRate)
	}
	if c.Gameplay.Slots <= 0 {
		return fmt.Errorf("config: slots must be positive, got %d", c.Gameplay.Slots)
	}
	if c.Gameplay.SlowMotion <= 0 {
		return fmt.Errorf("config: slow_motion must be positive, got %.2f", c.Gameplay.SlowMotion)
	}
	for i, area := range c.Campaign {
		if len(area.Levels) == 0 {
			return fmt.Errorf("config: campaign area %d (%s) has no levels", i, area.Name)
		}
		if _, err := death.ParseAreaMode(area.Mode); err != nil {
			return fmt.Errorf("config: campaign area %d (%s): %w", i, area.Name, err)
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
