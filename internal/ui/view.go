package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/kanban-go/internal/board"
)

const (
	defaultColumnWidth = 30
	minColumnWidth     = 22
	maxColumnWidth     = 40
)

func (m *Model) View() string {
	var b strings.Builder
	writeHeader(&b, m.title, m.board())

	switch m.mode {
	case modeHelp:
		writeHelp(&b)
	case modeColumnForm:
		b.WriteString(m.place(m.columnForm.View()))
		b.WriteString("\n")
	case modeTaskForm:
		b.WriteString(m.place(m.taskForm.View()))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderBoard())
		b.WriteString("\n")
	}

	writeFooter(&b, m.mode, m.toast)
	return b.String()
}

func (m *Model) place(s string) string {
	if m.width <= 0 {
		return s
	}
	return lipgloss.Place(m.width, max(0, m.height-4), lipgloss.Center, lipgloss.Center, s)
}

func writeHeader(b *strings.Builder, title string, bd board.Board) {
	if title == "" {
		title = "Kanban"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d columns · %d tasks", len(bd.Columns), bd.TaskCount())))
	b.WriteString("\n\n")
}

func writeFooter(b *strings.Builder, md mode, toast board.Notice) {
	if !toast.IsZero() {
		style := toastInfoStyle
		if toast.Kind == board.NoticeError {
			style = toastErrorStyle
		}
		b.WriteString(style.Render(toast.String()))
		b.WriteString("\n")
		return
	}
	var hint string
	switch md {
	case modeGrab:
		hint = "moving task: ←→↑↓ choose place · enter drop · esc cancel"
	case modeHelp:
		hint = "? or esc to close help"
	case modeColumnForm, modeTaskForm:
		hint = ""
	default:
		hint = "n task · N column · e/E edit · d/D delete · m move · </> move column · ? help · q quit"
	}
	b.WriteString(mutedStyle.Render(hint))
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString(headerStyle.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString("  ←→↑↓, hjkl    Select column and task\n")
	b.WriteString("  n             New task in the selected column\n")
	b.WriteString("  N             New column\n")
	b.WriteString("  e / E         Edit task / column\n")
	b.WriteString("  d / D         Delete task / column (columns must be empty)\n")
	b.WriteString("  m, space      Pick up the task, then choose a place and press enter\n")
	b.WriteString("  < / >         Move the column left / right\n")
	b.WriteString("  esc           Dismiss the notice, cancel a move or form\n")
	b.WriteString("  ?             Toggle this help screen\n")
	b.WriteString("  q, ctrl+c     Quit\n\n")
	b.WriteString(headerStyle.Render("Task form") + "\n\n")
	b.WriteString("  tab / ↑↓      Next / previous field\n")
	b.WriteString("  enter         Save (adds the tag on the tag fields)\n")
	b.WriteString("  ctrl+s        Save from any field\n")
	b.WriteString("  ←→            Pick a tag color or a tag to remove with x\n\n")
}

func (m *Model) columnWidth(n int) int {
	if m.width <= 0 {
		return defaultColumnWidth
	}
	w := m.width/max(1, n) - 1
	return max(minColumnWidth, min(w, maxColumnWidth))
}

// visibleColumns returns the [start, end) range of columns that fit on
// screen while keeping the focused column in view.
func (m *Model) visibleColumns(n, width int) (int, int) {
	if m.width <= 0 || n == 0 {
		return 0, n
	}
	fit := max(1, m.width/(width+1))
	focus := m.sel.col
	if m.mode == modeGrab {
		focus = m.drop.col
	}
	start := 0
	if focus >= fit {
		start = focus - fit + 1
	}
	return start, min(n, start+fit)
}

func (m *Model) renderBoard() string {
	bd := m.board()
	if len(bd.Columns) == 0 {
		return mutedStyle.Render("No columns yet. Press N to add one.") + "\n"
	}

	width := m.columnWidth(len(bd.Columns))
	start, end := m.visibleColumns(len(bd.Columns), width)
	views := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		views = append(views, m.renderColumn(i, bd.Columns[i], width))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, views...)
	if start > 0 || end < len(bd.Columns) {
		out += "\n" + mutedStyle.Render(fmt.Sprintf("columns %d-%d of %d", start+1, end, len(bd.Columns)))
	}
	return out
}

func (m *Model) renderColumn(i int, col board.Column, width int) string {
	inner := width - 4
	var parts []string
	parts = append(parts, headerStyle.Render(col.Title)+mutedStyle.Render(fmt.Sprintf(" %d", len(col.Tasks))))

	grabbing := m.mode == modeGrab
	for row, task := range col.Tasks {
		if grabbing && m.drop.col == i && m.drop.row == row {
			parts = append(parts, dropStyle.Render("▸ drop here"))
		}
		style := cardStyle
		switch {
		case grabbing && task.ID == m.grabbed:
			style = grabbedCardStyle
		case !grabbing && m.sel.col == i && m.sel.row == row:
			style = selectedCardStyle
		}
		parts = append(parts, style.Width(inner-2).Render(renderCard(task, inner-4)))
	}
	if grabbing && m.drop.col == i && m.drop.row == len(col.Tasks) {
		parts = append(parts, dropStyle.Render("▸ drop here"))
	}
	if len(col.Tasks) == 0 && !(grabbing && m.drop.col == i) {
		parts = append(parts, mutedStyle.Render("No tasks"))
	}

	style := columnStyle
	if (grabbing && m.drop.col == i) || (!grabbing && m.sel.col == i) {
		style = activeColumnStyle
	}
	return style.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func renderCard(task board.Task, width int) string {
	lines := []string{lipgloss.NewStyle().Bold(true).Render(task.Title)}
	if task.Description != "" {
		first, _, _ := strings.Cut(task.Description, "\n")
		lines = append(lines, mutedStyle.MaxWidth(max(1, width)).Render(first))
	}
	if len(task.Tags) > 0 {
		chips := make([]string, len(task.Tags))
		for i, tag := range task.Tags {
			chips[i] = tagChip(tag)
		}
		lines = append(lines, strings.Join(chips, " "))
	}
	return strings.Join(lines, "\n")
}
