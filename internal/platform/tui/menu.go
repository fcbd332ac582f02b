package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hardcore-arcade/internal/core"
	"github.com/vovakirdan/hardcore-arcade/internal/hardcore"
	"github.com/vovakirdan/hardcore-arcade/internal/storage"
)

const defaultFileName = "Madeline"

// SlotChoice is the file the player picked.
type SlotChoice struct {
	Slot     int
	NewGame  bool
	Name     string // Name for a new file
	Hardcore bool   // Mode picked for a new file
}

// slotRow is one slot of the menu.
type slotRow struct {
	slot int
	file *storage.SaveFile // nil for an empty slot
}

// SlotMenuModel is the Bubble Tea model for the file select screen.
type SlotMenuModel struct {
	store  *storage.Store
	hc     *hardcore.Context
	slots  int
	rows   []slotRow
	table  table.Model
	name   textinput.Model
	naming bool
	newHC  bool // mode of the file being named
	keys   MenuKeyMap
	help   help.Model
	width  int
	height int
	cursor int
	status string

	choice      *SlotChoice
	wantsDeaths bool
	quitting    bool
}

// NewSlotMenuModel creates the file select menu.
func NewSlotMenuModel(store *storage.Store, hc *hardcore.Context, slots int, cfg core.RuntimeConfig) SlotMenuModel {
	if slots <= 0 {
		slots = 3
	}

	name := textinput.New()
	name.Placeholder = defaultFileName
	name.CharLimit = 12
	name.Prompt = "Name: "

	h := help.New()
	h.ShowAll = false

	m := SlotMenuModel{
		store:  store,
		hc:     hc,
		slots:  slots,
		name:   name,
		keys:   DefaultMenuKeyMap(),
		help:   h,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
	}
	m.table = m.createTable()
	m.reload()
	m.hc.OnSlotSelected(0, m.rows[0].file != nil)
	m.refreshRows()
	return m
}

// createTable creates the slot table.
func (m *SlotMenuModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Slot", Width: 6},
		{Title: "Name", Width: 14},
		{Title: "Deaths", Width: 8},
		{Title: "Mode", Width: 22},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.slots+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload reads the save files of every slot.
func (m *SlotMenuModel) reload() {
	m.rows = make([]slotRow, m.slots)
	for i := range m.rows {
		m.rows[i].slot = i
	}

	if m.store == nil {
		return
	}
	files, err := m.store.Files()
	if err != nil {
		m.status = fmt.Sprintf("could not read save files: %v", err)
		return
	}
	for i := range files {
		f := files[i]
		if f.Slot >= 0 && f.Slot < m.slots {
			m.rows[f.Slot].file = &f
		}
	}
}

// refreshRows rebuilds the table rows from the slots.
func (m *SlotMenuModel) refreshRows() {
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = m.rowFor(r)
	}
	m.table.SetRows(rows)
}

func (m *SlotMenuModel) rowFor(r slotRow) table.Row {
	slot := fmt.Sprintf("#%d", r.slot+1)
	hardcoreFile := m.hc.IsHardcoreFile(r.slot)

	if r.file == nil {
		mode := "new file"
		if hardcoreFile {
			mode = "new file · " + hardcoreTag
		}
		return table.Row{slot, "-", "-", mode}
	}

	mode := "normal"
	if hardcoreFile {
		mode = hardcoreTag
	} else if r.file.AssistMode {
		mode = "assist"
	}
	return table.Row{slot, r.file.Name, fmt.Sprintf("%d", r.file.Deaths), mode}
}

// Init initializes the menu model.
func (m SlotMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m SlotMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.naming {
			return m.handleNaming(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for slot selection.
func (m SlotMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Deaths) {
		m.wantsDeaths = true
		return m, nil
	}

	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionUp:
		m.table.MoveUp(1)
		m.syncCursor()
		return m, nil

	case core.ActionDown:
		m.table.MoveDown(1)
		m.syncCursor()
		return m, nil

	case core.ActionToggle:
		row := m.rows[m.cursor]
		if row.file != nil {
			m.status = "existing files cannot change mode"
			return m, nil
		}
		if m.hc.ToggleNewFile(row.slot) {
			m.status = fmt.Sprintf("slot #%d: hardcore on", row.slot+1)
		} else {
			m.status = fmt.Sprintf("slot #%d: hardcore off", row.slot+1)
		}
		m.refreshRows()
		return m, nil

	case core.ActionConfirm:
		row := m.rows[m.cursor]
		if row.file != nil {
			m.choice = &SlotChoice{Slot: row.slot}
			return m, nil
		}
		m.naming = true
		m.newHC = m.hc.IsHardcoreFile(row.slot)
		m.name.SetValue("")
		return m, m.name.Focus()
	}

	return m, nil
}

// handleNaming processes input while a new file is being named.
func (m SlotMenuModel) handleNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.naming = false
		m.name.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.name.Value())
		if name == "" {
			name = defaultFileName
		}
		m.naming = false
		m.name.Blur()
		m.choice = &SlotChoice{Slot: m.rows[m.cursor].slot, NewGame: true, Name: name, Hardcore: m.newHC}
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// syncCursor tells the hardcore context when a different slot is selected.
func (m *SlotMenuModel) syncCursor() {
	c := m.table.Cursor()
	if c == m.cursor || c < 0 || c >= len(m.rows) {
		return
	}
	m.cursor = c
	m.status = ""
	m.hc.OnSlotSelected(m.rows[c].slot, m.rows[c].file != nil)
	m.refreshRows()
}

// View renders the menu.
func (m SlotMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  F I L E   S E L E C T  "), m.width))
	b.WriteString("\n\n")

	tableBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.table.View())
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableBox))
	b.WriteString("\n\n")

	if m.naming {
		b.WriteString(centerText(m.name.View(), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(helpStyle.Render("enter: create  esc: cancel"), m.width))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(centerText(statusStyle.Render(m.status), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns the picked file, or nil if none was picked.
func (m SlotMenuModel) Choice() *SlotChoice {
	return m.choice
}

// WantsDeaths returns true if the player asked for the death log.
func (m SlotMenuModel) WantsDeaths() bool {
	return m.wantsDeaths
}

// IsQuitting returns true if user requested to quit.
func (m SlotMenuModel) IsQuitting() bool {
	return m.quitting
}

// Cursor returns the selected slot.
func (m SlotMenuModel) Cursor() int {
	return m.cursor
}

// Status returns the last status message.
func (m SlotMenuModel) Status() string {
	return m.status
}

// WithStatus returns the menu with a status message set.
func (m SlotMenuModel) WithStatus(status string) SlotMenuModel {
	m.status = status
	return m
}
