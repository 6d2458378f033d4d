package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/kanban-go/internal/board"
	"github.com/nibzard/kanban-go/internal/logging"
	"github.com/nibzard/kanban-go/internal/session"
)

type mode int

const (
	modeBoard mode = iota
	modeGrab
	modeColumnForm
	modeTaskForm
	modeHelp
)

// toastDuration is how long a notice stays in the footer.
const toastDuration = 3 * time.Second

type toastExpiredMsg struct{ seq int }

// cursor addresses a slot on the board. row == len(tasks) is the empty slot
// at the end of a column.
type cursor struct {
	col int
	row int
}

// Model is the bubbletea model of the board.
type Model struct {
	session *session.Session
	title   string
	logger  *log.Logger

	mode    mode
	sel     cursor
	drop    cursor
	grabbed string // id of the task being moved

	columnForm *columnForm
	taskForm   *taskForm

	toast    board.Notice
	toastSeq int

	width  int
	height int
}

// NewModel returns a board model over s. A nil logger discards output.
func NewModel(s *session.Session, title string, logger *log.Logger) *Model {
	if logger == nil {
		logger = logging.Discard()
	}
	m := &Model{session: s, title: title, logger: logger}
	m.clampSelection()
	return m
}

func (m *Model) Init() tea.Cmd {
	if m.title == "" {
		return nil
	}
	return tea.SetWindowTitle(m.title)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = board.Notice{}
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeGrab:
			return m, m.updateGrab(msg)
		case modeColumnForm:
			return m, m.updateColumnForm(msg)
		case modeTaskForm:
			return m, m.updateTaskForm(msg)
		case modeHelp:
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?", "esc", "enter":
				m.mode = modeBoard
			}
			return m, nil
		default:
			return m, m.updateBoard(msg)
		}
	}

	// Cursor blinks and other input messages belong to the open form.
	switch m.mode {
	case modeColumnForm:
		return m, m.updateColumnForm(msg)
	case modeTaskForm:
		return m, m.updateTaskForm(msg)
	}
	return m, nil
}

func (m *Model) board() board.Board {
	return m.session.Board()
}

func (m *Model) selectedColumn() *board.Column {
	b := m.board()
	if m.sel.col < 0 || m.sel.col >= len(b.Columns) {
		return nil
	}
	return &b.Columns[m.sel.col]
}

func (m *Model) selectedTask() *board.Task {
	col := m.selectedColumn()
	if col == nil || m.sel.row < 0 || m.sel.row >= len(col.Tasks) {
		return nil
	}
	return &col.Tasks[m.sel.row]
}

func (m *Model) updateBoard(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "?":
		m.mode = modeHelp
	case "esc":
		m.toast = board.Notice{}
	case "left", "h":
		m.sel.col--
		m.clampSelection()
	case "right", "l":
		m.sel.col++
		m.clampSelection()
	case "up", "k":
		m.sel.row--
		m.clampSelection()
	case "down", "j":
		m.sel.row++
		m.clampSelection()
	case "n":
		if col := m.selectedColumn(); col != nil {
			m.taskForm = newTaskForm(col.ID, nil)
			m.mode = modeTaskForm
			return m.taskForm.Init()
		}
	case "N":
		m.columnForm = newColumnForm(nil)
		m.mode = modeColumnForm
		return m.columnForm.Init()
	case "e":
		if task := m.selectedTask(); task != nil {
			m.taskForm = newTaskForm(task.ColumnID, task)
			m.mode = modeTaskForm
			return m.taskForm.Init()
		}
	case "E":
		if col := m.selectedColumn(); col != nil {
			m.columnForm = newColumnForm(col)
			m.mode = modeColumnForm
			return m.columnForm.Init()
		}
	case "d":
		if task := m.selectedTask(); task != nil {
			return m.dispatch(board.DeleteTask{ID: task.ID})
		}
	case "D":
		if col := m.selectedColumn(); col != nil {
			return m.dispatch(board.DeleteColumn{ID: col.ID})
		}
	case "m", " ", "space":
		if task := m.selectedTask(); task != nil {
			m.grabbed = task.ID
			m.drop = m.sel
			m.mode = modeGrab
		}
	case "<", ",":
		return m.moveColumn(-1)
	case ">", ".":
		return m.moveColumn(1)
	}
	return nil
}

func (m *Model) moveColumn(delta int) tea.Cmd {
	b := m.board()
	to := m.sel.col + delta
	if m.sel.col < 0 || m.sel.col >= len(b.Columns) || to < 0 || to >= len(b.Columns) {
		return nil
	}
	colID := b.Columns[m.sel.col].ID
	cmd := m.dispatch(board.MoveColumn{ColumnID: colID, TargetID: b.Columns[to].ID})
	m.followColumn(colID)
	return cmd
}

func (m *Model) updateGrab(msg tea.KeyMsg) tea.Cmd {
	b := m.board()
	switch msg.String() {
	case "esc":
		m.mode = modeBoard
		m.grabbed = ""
	case "left", "h":
		if m.drop.col > 0 {
			m.drop.col--
			m.drop.row = min(m.drop.row, len(b.Columns[m.drop.col].Tasks))
		}
	case "right", "l":
		if m.drop.col < len(b.Columns)-1 {
			m.drop.col++
			m.drop.row = min(m.drop.row, len(b.Columns[m.drop.col].Tasks))
		}
	case "up", "k":
		if m.drop.row > 0 {
			m.drop.row--
		}
	case "down", "j":
		if m.drop.row < len(b.Columns[m.drop.col].Tasks) {
			m.drop.row++
		}
	case "enter", "m", " ", "space":
		taskID := m.grabbed
		target := dropTarget(b, m.drop)
		m.mode = modeBoard
		m.grabbed = ""
		cmd := m.dispatch(board.MoveTask{TaskID: taskID, TargetID: target})
		m.followTask(taskID)
		return cmd
	}
	return nil
}

// dropTarget resolves a drop slot to the id MoveTask expects: the task in
// the slot, or the column itself for the trailing empty slot.
func dropTarget(b board.Board, at cursor) string {
	col := b.Columns[at.col]
	if at.row < len(col.Tasks) {
		return col.Tasks[at.row].ID
	}
	return col.ID
}

func (m *Model) updateColumnForm(msg tea.Msg) tea.Cmd {
	result, cmd := m.columnForm.Update(msg)
	switch result {
	case formCancel:
		m.closeForms()
		return nil
	case formSubmit:
		action := m.columnForm.Action()
		notice, err := m.session.Dispatch(action)
		if err != nil && notice.IsZero() {
			// Empty name: keep the form open.
			return nil
		}
		m.closeForms()
		if _, ok := action.(board.AddColumn); ok && err == nil {
			m.sel = cursor{col: len(m.board().Columns) - 1}
		}
		m.clampSelection()
		return m.showNotice(notice)
	}
	return cmd
}

func (m *Model) updateTaskForm(msg tea.Msg) tea.Cmd {
	result, cmd := m.taskForm.Update(msg)
	switch result {
	case formCancel:
		m.closeForms()
		return nil
	case formSubmit:
		action := m.taskForm.Action()
		notice, err := m.session.Dispatch(action)
		if err != nil && notice.IsZero() {
			return nil
		}
		m.closeForms()
		if add, ok := action.(board.AddTask); ok && err == nil {
			b := m.board()
			if col := b.FindColumn(add.ColumnID); col != nil {
				m.sel.row = len(col.Tasks) - 1
			}
		}
		m.clampSelection()
		return m.showNotice(notice)
	}
	return cmd
}

func (m *Model) closeForms() {
	m.mode = modeBoard
	m.columnForm = nil
	m.taskForm = nil
}

// dispatch runs a board action and shows its notice.
func (m *Model) dispatch(a board.Action) tea.Cmd {
	notice, err := m.session.Dispatch(a)
	if err != nil {
		m.logger.Debug("action failed", "action", a.Name(), "err", err)
		if notice.IsZero() {
			notice = board.Notice{Kind: board.NoticeError, Title: err.Error()}
		}
	}
	m.clampSelection()
	return m.showNotice(notice)
}

func (m *Model) showNotice(n board.Notice) tea.Cmd {
	if n.IsZero() {
		return nil
	}
	m.toast = n
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// followColumn selects the column with id after it moved.
func (m *Model) followColumn(id string) {
	b := m.board()
	if i := b.ColumnIndex(id); i >= 0 {
		m.sel.col = i
	}
	m.clampSelection()
}

// followTask selects the task with id wherever it now is.
func (m *Model) followTask(id string) {
	b := m.board()
	if ci := b.ColumnOfTask(id); ci >= 0 {
		m.sel = cursor{col: ci, row: b.Columns[ci].TaskIndex(id)}
	}
	m.clampSelection()
}

func (m *Model) clampSelection() {
	b := m.board()
	if len(b.Columns) == 0 {
		m.sel = cursor{}
		return
	}
	m.sel.col = max(0, min(m.sel.col, len(b.Columns)-1))
	n := len(b.Columns[m.sel.col].Tasks)
	m.sel.row = max(0, min(m.sel.row, n-1))
}
