package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hardcore-arcade/internal/storage"
)

// Death log layout constants
const (
	maxDeaths    = 100 // Max deaths to load
	allSlots     = -1
	minLogHeight = 5
)

// DeathLogKeyMap defines the key bindings for the death log.
type DeathLogKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextSlot key.Binding
	PrevSlot key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k DeathLogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSlot, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k DeathLogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSlot, k.PrevSlot},
		{k.Back, k.Quit},
	}
}

// DefaultDeathLogKeyMap returns default key bindings.
func DefaultDeathLogKeyMap() DeathLogKeyMap {
	return DeathLogKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextSlot: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next slot"),
		),
		PrevSlot: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev slot"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DeathLogModel lists the recorded deaths, newest first, for all slots or
// one slot at a time.
type DeathLogModel struct {
	store     *storage.Store
	slots     int
	filter    int // allSlots or a slot number
	deaths    []storage.DeathRecord
	loadErr   error
	table     table.Model
	help      help.Model
	keys      DeathLogKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewDeathLogModel creates the death log screen.
func NewDeathLogModel(store *storage.Store, slots, width, height int) DeathLogModel {
	if slots <= 0 {
		slots = 3
	}
	h := help.New()
	h.ShowAll = false

	m := DeathLogModel{
		store:  store,
		slots:  slots,
		filter: allSlots,
		keys:   DefaultDeathLogKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadDeaths()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *DeathLogModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 13},
		{Title: "Slot", Width: 5},
		{Title: "Room", Width: 22},
		{Title: "State", Width: 14},
		{Title: "Verdict", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, minLogHeight)),
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

// loadDeaths loads deaths for the current slot filter.
func (m *DeathLogModel) loadDeaths() {
	m.deaths, m.loadErr = nil, nil
	if m.store != nil {
		m.deaths, m.loadErr = m.store.RecentDeaths(m.filter, maxDeaths)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded deaths.
func (m *DeathLogModel) updateTableRows() {
	rows := make([]table.Row, len(m.deaths))
	for i, d := range m.deaths {
		rows[i] = table.Row{
			d.CreatedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("#%d", d.Slot+1),
			fmt.Sprintf("%d/%s", d.AreaID, d.Level),
			d.PlayerState,
			verdictLabel(d),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// verdictLabel summarizes what the death cost the player.
func verdictLabel(d storage.DeathRecord) string {
	switch {
	case d.Deleted:
		return "file deleted"
	case d.Hardcore:
		return "delete failed"
	case d.Reason != "":
		return "spared: " + d.Reason
	default:
		return "-"
	}
}

// cycle moves the slot filter by step, wrapping through "all".
func (m *DeathLogModel) cycle(step int) {
	n := m.slots + 1
	idx := (m.filter + 1 + step + n) % n
	m.filter = idx - 1
	m.loadDeaths()
}

// Init initializes the death log model.
func (m DeathLogModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the death log.
func (m DeathLogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextSlot):
			m.cycle(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevSlot):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the death log.
func (m DeathLogModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("DEATH LOG - "+m.filterLabel()), m.width))
	b.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(centerText(failureStyle.Render(fmt.Sprintf("could not read deaths: %v", m.loadErr)), m.width))
	case len(m.deaths) == 0:
		b.WriteString(centerText(mutedStyle.Render("No deaths yet."), m.width))
	default:
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Render(m.table.View())
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box))
	}
	b.WriteString("\n\n")

	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// filterLabel names the current slot filter.
func (m DeathLogModel) filterLabel() string {
	if m.filter == allSlots {
		return "all files"
	}
	return fmt.Sprintf("file #%d", m.filter+1)
}

// Filter returns the slot filter, -1 for all slots.
func (m DeathLogModel) Filter() int {
	return m.filter
}

// Deaths returns the loaded deaths.
func (m DeathLogModel) Deaths() []storage.DeathRecord {
	return m.deaths
}

// IsGoingBack returns true if user wants to go back.
func (m DeathLogModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user requested to quit.
func (m DeathLogModel) IsQuitting() bool {
	return m.quitting
}
