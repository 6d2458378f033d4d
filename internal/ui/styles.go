package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/kanban-go/internal/board"
)

// tagPalette maps tag colors to terminal colors.
var tagPalette = map[board.TagColor]lipgloss.Color{
	board.ColorRed:    lipgloss.Color("#ef4444"),
	board.ColorOrange: lipgloss.Color("#f97316"),
	board.ColorYellow: lipgloss.Color("#eab308"),
	board.ColorGreen:  lipgloss.Color("#22c55e"),
	board.ColorBlue:   lipgloss.Color("#3b82f6"),
	board.ColorPurple: lipgloss.Color("#a855f7"),
	board.ColorPink:   lipgloss.Color("#ec4899"),
	board.ColorGray:   lipgloss.Color("#6b7280"),
}

var (
	accent = lipgloss.Color("#7c3aed")
	muted  = lipgloss.Color("#6b7280")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted)
	headerStyle = lipgloss.NewStyle().Bold(true)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
	activeColumnStyle = columnStyle.BorderForeground(accent)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#3f3f46")).
			Padding(0, 1)
	selectedCardStyle = cardStyle.BorderForeground(accent)
	grabbedCardStyle  = cardStyle.BorderForeground(accent).Faint(true)

	dropStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)

	toastInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	toastErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)
	labelStyle       = lipgloss.NewStyle().Foreground(muted)
	activeLabelStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
)

// tagChip renders a tag label in its color.
func tagChip(t board.Tag) string {
	color, ok := tagPalette[t.Color]
	if !ok {
		color = tagPalette[board.DefaultTagColor]
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render("#" + t.Label)
}
