package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/hardcore-arcade/internal/config"
)

func TestRenderIcon(t *testing.T) {
	if got := renderIcon(config.IconOff); got != "" {
		t.Errorf("off icon = %q, want empty", got)
	}
	for _, mode := range []config.IconMode{config.IconTranslucent, config.IconOn} {
		if got := renderIcon(mode); !strings.Contains(got, hardcoreTag) {
			t.Errorf("%s icon = %q, want it to contain %q", mode, got, hardcoreTag)
		}
	}
}

func TestPlaceIcon(t *testing.T) {
	view := "line one\nline two"

	tests := []struct {
		name      string
		pos       config.IconPosition
		wantTop   bool
		wantRight bool
	}{
		{"bottom left", config.IconBottomLeft, false, false},
		{"bottom right", config.IconBottomRight, false, true},
		{"top right", config.IconTopRight, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := placeIcon(view, "X", tt.pos, 10)
			lines := strings.Split(out, "\n")
			if len(lines) != 3 {
				t.Fatalf("got %d lines, want 3: %q", len(lines), out)
			}

			iconLine := lines[len(lines)-1]
			if tt.wantTop {
				iconLine = lines[0]
			}
			idx := strings.Index(iconLine, "X")
			if idx < 0 {
				t.Fatalf("icon line %q has no icon", iconLine)
			}
			if tt.wantRight && idx != 9 {
				t.Errorf("icon at column %d, want 9", idx)
			}
			if !tt.wantRight && idx != 0 {
				t.Errorf("icon at column %d, want 0", idx)
			}
		})
	}

	if got := placeIcon(view, "", config.IconTopRight, 10); got != view {
		t.Errorf("empty icon changed the view: %q", got)
	}
}

func TestFileCard(t *testing.T) {
	card := fileCard("Theo", 12, false, "Died on Forsaken City lvl_a-02")
	for _, want := range []string{"Theo", hardcoreTag, "Deaths: 12", "lvl_a-02"} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}

	if card := fileCard("", 0, true); !strings.Contains(card, "???") {
		t.Errorf("unnamed card should show ???:\n%s", card)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, want %q", got, "  ab")
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("overflowing text = %q, want unchanged", got)
	}
}
