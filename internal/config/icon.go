package config

import (
	"fmt"
	"strings"
)

// IconMode controls whether the hardcore icon is shown.
type IconMode string

const (
	IconOff         IconMode = "off"
	IconTranslucent IconMode = "translucent"
	IconOn          IconMode = "on"
)

// translucentAlpha is the icon opacity in translucent mode.
const translucentAlpha = 0.4

// UnmarshalYAML accepts the mode names and also plain booleans, since YAML
// reads a bare `on`/`off` as a bool.
func (m *IconMode) UnmarshalYAML(unmarshal func(any) error) error {
	var b bool
	if err := unmarshal(&b); err == nil {
		if b {
			*m = IconOn
		} else {
			*m = IconOff
		}
		return nil
	}

	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseIconMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseIconMode parses an icon mode name.
func ParseIconMode(s string) (IconMode, error) {
	switch IconMode(strings.ToLower(strings.TrimSpace(s))) {
	case IconOff:
		return IconOff, nil
	case IconTranslucent:
		return IconTranslucent, nil
	case IconOn:
		return IconOn, nil
	default:
		return IconOff, fmt.Errorf("config: unknown icon mode %q", s)
	}
}

// Opacity returns the icon opacity for the mode (0 hides the icon).
func (m IconMode) Opacity() float64 {
	switch m {
	case IconTranslucent:
		return translucentAlpha
	case IconOn:
		return 1.0
	default:
		return 0
	}
}

// Visible returns true if the icon is drawn at all.
func (m IconMode) Visible() bool {
	return m.Opacity() > 0
}

// IconPosition is the screen corner the icon is drawn in.
type IconPosition string

const (
	IconBottomLeft  IconPosition = "bottom-left"
	IconBottomRight IconPosition = "bottom-right"
	IconTopRight    IconPosition = "top-right"
)

// ParseIconPosition parses an icon position name.
func ParseIconPosition(s string) (IconPosition, error) {
	switch IconPosition(strings.ToLower(strings.TrimSpace(s))) {
	case IconBottomLeft:
		return IconBottomLeft, nil
	case IconBottomRight:
		return IconBottomRight, nil
	case IconTopRight:
		return IconTopRight, nil
	default:
		return IconBottomLeft, fmt.Errorf("config: unknown icon position %q", s)
	}
}

// Top returns true if the icon sits at the top of the screen.
func (p IconPosition) Top() bool {
	return p == IconTopRight
}

// Right returns true if the icon sits at the right edge of the screen.
func (p IconPosition) Right() bool {
	return p == IconBottomRight || p == IconTopRight
}
