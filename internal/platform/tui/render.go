package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hardcore-arcade/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6"))

	hardcoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("124")).
			Padding(0, 1)

	// Faint variant used in translucent icon mode.
	hardcoreFaintStyle = lipgloss.NewStyle().
				Faint(true).
				Foreground(lipgloss.Color("124")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3).
			Width(cardWidth)

	cardDeletedStyle = cardStyle.
				BorderForeground(lipgloss.Color("124")).
				Strikethrough(true).
				Faint(true)

	failureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 2)

	pauseStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("229")).
			Padding(0, 2)
)

const (
	cardWidth   = 40
	hardcoreTag = "HARDCORE"
)

// hardcoreBadge renders the hardcore tag.
func hardcoreBadge() string {
	return hardcoreStyle.Render(hardcoreTag)
}

// renderIcon renders the in-level hardcore icon for the icon mode. Off
// renders nothing.
func renderIcon(mode config.IconMode) string {
	switch {
	case !mode.Visible():
		return ""
	case mode.Opacity() < 1:
		return hardcoreFaintStyle.Render("☠ " + hardcoreTag)
	default:
		return hardcoreStyle.Render("☠ " + hardcoreTag)
	}
}

// placeIcon adds the icon to a full-screen view at the configured corner.
func placeIcon(view, icon string, pos config.IconPosition, width int) string {
	if icon == "" {
		return view
	}

	align := lipgloss.Left
	if pos.Right() {
		align = lipgloss.Right
	}
	line := lipgloss.PlaceHorizontal(max(width, lipgloss.Width(icon)), align, icon)

	if pos.Top() {
		return line + "\n" + view
	}
	return view + "\n" + line
}

// fileCard renders a save file's card.
func fileCard(name string, deaths int, deleted bool, lines ...string) string {
	var b strings.Builder
	if name == "" {
		name = "???"
	}
	b.WriteString(titleStyle.Render(name))
	b.WriteString("  ")
	b.WriteString(hardcoreBadge())
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Deaths: %d", deaths))
	for _, l := range lines {
		b.WriteString("\n")
		b.WriteString(l)
	}

	if deleted {
		return cardDeletedStyle.Render(b.String())
	}
	return cardStyle.Render(b.String())
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// centerBlock centers a multi-line block horizontally and vertically.
func centerBlock(block string, width, height int) string {
	if width <= 0 || height <= 0 {
		return block
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
