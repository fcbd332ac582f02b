// Package config provides YAML-based configuration loading for hardcore
// mode: death screen timings, the hardcore icon, gameplay toggles and the
// campaign the level runner walks through.
package config

// Hardcore contains all configuration for hardcore mode.
type Hardcore struct {
	LogLevel string         `yaml:"log_level"`
	Timings  TimingsConfig  `yaml:"timings"`
	Icon     IconConfig     `yaml:"icon"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Campaign []AreaConfig   `yaml:"campaign"`
}

// TimingsConfig defines the game-over screen timings in seconds.
type TimingsConfig struct {
	Intro    float64 `yaml:"intro"`
	RevealAt float64 `yaml:"reveal_at"`
	Exit     float64 `yaml:"exit"`
}

// IconConfig defines how the hardcore icon is drawn.
type IconConfig struct {
	Mode     IconMode     `yaml:"mode"`
	Position IconPosition `yaml:"position"`
}

// GameplayConfig defines gameplay toggles.
type GameplayConfig struct {
	AlwaysSpawnGoldens bool    `yaml:"always_spawn_goldens"`
	TickRate           int     `yaml:"tick_rate"`
	Slots              int     `yaml:"slots"`
	SlowMotion         float64 `yaml:"slow_motion"` // Time rate applied to the death screen
}

// AreaConfig describes one chapter side of the campaign.
type AreaConfig struct {
	LevelSet string   `yaml:"level_set"`
	ID       int      `yaml:"id"`
	Name     string   `yaml:"name"`
	Mode     string   `yaml:"mode"` // a-side | b-side | c-side
	Levels   []string `yaml:"levels"`
}
