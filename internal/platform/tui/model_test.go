package tui

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hardcore-arcade/internal/config"
	"github.com/vovakirdan/hardcore-arcade/internal/core"
	"github.com/vovakirdan/hardcore-arcade/internal/death"
	"github.com/vovakirdan/hardcore-arcade/internal/hardcore"
	"github.com/vovakirdan/hardcore-arcade/internal/storage"
)

func TestRunnerBadAreaModeIsLogged(t *testing.T) {
	cfg := config.DefaultHardcoreConfig()
	cfg.Campaign = []config.AreaConfig{{LevelSet: "Celeste", ID: 2, Name: "Old Site", Mode: "d-side", Levels: []string{"a-00"}}}

	var buf bytes.Buffer
	hc := hardcore.New(hardcore.Deps{Logger: log.New(io.Discard)}, cfg)
	m := NewRunnerModel(hc, nil, cfg, core.DefaultConfig(), storage.SaveFile{}, log.New(&buf))

	ctx := m.deathContext()
	if ctx.AreaMode != death.ModeASide {
		t.Errorf("AreaMode = %v, want a-side", ctx.AreaMode)
	}
	if !strings.Contains(buf.String(), "d-side") {
		t.Errorf("log = %q, want a warning naming the bad mode", buf.String())
	}
}

func TestRunnerAreaMode(t *testing.T) {
	cfg := config.DefaultHardcoreConfig()
	cfg.Campaign = []config.AreaConfig{{LevelSet: "Celeste", ID: 1, Name: "Forsaken City", Mode: "b-side", Levels: []string{"a-00"}}}

	var buf bytes.Buffer
	hc := hardcore.New(hardcore.Deps{Logger: log.New(io.Discard)}, cfg)
	m := NewRunnerModel(hc, nil, cfg, core.DefaultConfig(), storage.SaveFile{}, log.New(&buf))

	if ctx := m.deathContext(); ctx.AreaMode != death.ModeBSide {
		t.Errorf("AreaMode = %v, want b-side", ctx.AreaMode)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output %q", buf.String())
	}
}
