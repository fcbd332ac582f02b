package gameover

import (
	"strings"

	"github.com/vovakirdan/hardcore-arcade/internal/death"
)

// Summary describes the death and the file being destroyed.
type Summary struct {
	Slot     int
	FileName string
	AreaName string
	AreaMode death.AreaMode
	LevelID  string
	Deaths   int
}

// SummaryFromContext builds a summary from a death snapshot.
func SummaryFromContext(slot int, fileName string, ctx death.Context) Summary {
	return Summary{
		Slot:     slot,
		FileName: fileName,
		AreaName: ctx.AreaName,
		AreaMode: ctx.AreaMode,
		LevelID:  ctx.LevelID,
	}
}

// Info composes the line shown under the file card, e.g.
// "Died on Forsaken City B-Side lvl_a-02".
func (s Summary) Info() string {
	var b strings.Builder
	b.WriteString("Died on ")
	if s.AreaName != "" {
		b.WriteString(s.AreaName)
		b.WriteString(" ")
	}
	switch s.AreaMode {
	case death.ModeBSide, death.ModeCSide:
		b.WriteString(s.AreaMode.String())
		b.WriteString(" ")
	}
	if !strings.HasPrefix(s.LevelID, "lvl_") {
		b.WriteString("lvl_")
	}
	b.WriteString(s.LevelID)
	return b.String()
}
