package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/kanban-go/internal/board"
)

// formResult tells the model what a form key press amounted to.
type formResult int

const (
	formContinue formResult = iota
	formSubmit
	formCancel
)

// formWidth is the text width of form inputs.
const formWidth = 44

func newInput(value, placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.Width = formWidth
	in.SetValue(value)
	return in
}

func newDescriptionInput(value string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Add more details..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.SetWidth(formWidth)
	ta.SetHeight(4)
	ta.SetValue(value)
	return ta
}

// columnForm creates or renames a column.
type columnForm struct {
	columnID string // empty when creating
	title    textinput.Model
}

func newColumnForm(col *board.Column) *columnForm {
	f := &columnForm{title: newInput("", "Column name")}
	if col != nil {
		f.columnID = col.ID
		f.title = newInput(col.Title, "Column name")
	}
	f.title.Focus()
	return f
}

// Init starts the cursor blinking.
func (f *columnForm) Init() tea.Cmd { return textinput.Blink }

func (f *columnForm) Update(msg tea.Msg) (formResult, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return formCancel, nil
		case "enter", "ctrl+s":
			return formSubmit, nil
		}
	}
	var cmd tea.Cmd
	f.title, cmd = f.title.Update(msg)
	return formContinue, cmd
}

// Action returns the action the submitted form stands for.
func (f *columnForm) Action() board.Action {
	if f.columnID == "" {
		return board.AddColumn{Title: f.title.Value()}
	}
	return board.EditColumn{ID: f.columnID, Title: f.title.Value()}
}

func (f *columnForm) View() string {
	heading := "New column"
	if f.columnID != "" {
		heading = "Edit column"
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(heading) + "\n\n")
	b.WriteString(activeLabelStyle.Render("Name") + "\n")
	b.WriteString(f.title.View() + "\n\n")
	b.WriteString(mutedStyle.Render("enter save · esc cancel"))
	return formStyle.Render(b.String())
}

type taskField int

const (
	fieldTitle taskField = iota
	fieldDescription
	fieldTags
	fieldTagLabel
	fieldTagColor
	taskFieldCount
)

// taskForm creates or edits a task, including its tags.
type taskForm struct {
	taskID   string // empty when creating
	columnID string

	title       textinput.Model
	description textarea.Model
	tags        []board.Tag
	tagCursor   int
	tagLabel    textinput.Model
	tagColor    int // index into board.TagColors()

	focus taskField
}

func newTaskForm(columnID string, task *board.Task) *taskForm {
	f := &taskForm{
		columnID:    columnID,
		title:       newInput("", "Task name"),
		description: newDescriptionInput(""),
		tagLabel:    newInput("", "New tag"),
		tagColor:    defaultColorIndex(),
	}
	if task != nil {
		f.taskID = task.ID
		f.title = newInput(task.Title, "Task name")
		f.description = newDescriptionInput(task.Description)
		f.tags = append([]board.Tag(nil), task.Tags...)
	}
	f.setFocus(fieldTitle)
	return f
}

// Init starts the cursor blinking.
func (f *taskForm) Init() tea.Cmd { return textinput.Blink }

// setFocus moves keyboard focus to field, blurring the other inputs.
func (f *taskForm) setFocus(field taskField) tea.Cmd {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	f.tagLabel.Blur()
	switch field {
	case fieldTitle:
		return f.title.Focus()
	case fieldDescription:
		return f.description.Focus()
	case fieldTagLabel:
		return f.tagLabel.Focus()
	}
	return nil
}

func defaultColorIndex() int {
	for i, c := range board.TagColors() {
		if c == board.DefaultTagColor {
			return i
		}
	}
	return 0
}

func (f *taskForm) Update(msg tea.Msg) (formResult, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return formContinue, f.updateInputs(msg)
	}

	next := (f.focus + 1) % taskFieldCount
	prev := (f.focus + taskFieldCount - 1) % taskFieldCount
	switch key.String() {
	case "esc":
		return formCancel, nil
	case "ctrl+s":
		return formSubmit, nil
	case "tab":
		return formContinue, f.setFocus(next)
	case "shift+tab":
		return formContinue, f.setFocus(prev)
	case "down":
		// The description uses up and down to move between lines.
		if f.focus != fieldDescription {
			return formContinue, f.setFocus(next)
		}
	case "up":
		if f.focus != fieldDescription {
			return formContinue, f.setFocus(prev)
		}
	case "enter":
		switch f.focus {
		case fieldTagLabel, fieldTagColor:
			f.addTag()
			return formContinue, nil
		case fieldTitle, fieldTags:
			return formSubmit, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(key)
	case fieldDescription:
		f.description, cmd = f.description.Update(key)
	case fieldTagLabel:
		f.tagLabel, cmd = f.tagLabel.Update(key)
	case fieldTagColor:
		f.updateColor(key)
	case fieldTags:
		f.updateTags(key)
	}
	return formContinue, cmd
}

// updateInputs hands non-key messages, such as cursor blinks, to the text
// inputs. Unfocused inputs ignore them.
func (f *taskForm) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 3)
	f.title, cmds[0] = f.title.Update(msg)
	f.description, cmds[1] = f.description.Update(msg)
	f.tagLabel, cmds[2] = f.tagLabel.Update(msg)
	return tea.Batch(cmds...)
}

func (f *taskForm) updateColor(msg tea.KeyMsg) {
	n := len(board.TagColors())
	switch msg.String() {
	case "left", "h":
		f.tagColor = (f.tagColor + n - 1) % n
	case "right", "l", " ", "space":
		f.tagColor = (f.tagColor + 1) % n
	}
}

func (f *taskForm) updateTags(msg tea.KeyMsg) {
	if len(f.tags) == 0 {
		return
	}
	switch msg.String() {
	case "left", "h":
		if f.tagCursor > 0 {
			f.tagCursor--
		}
	case "right", "l":
		if f.tagCursor < len(f.tags)-1 {
			f.tagCursor++
		}
	case "backspace", "delete", "x":
		f.tags = append(f.tags[:f.tagCursor:f.tagCursor], f.tags[f.tagCursor+1:]...)
		if f.tagCursor >= len(f.tags) && f.tagCursor > 0 {
			f.tagCursor--
		}
	}
}

// addTag turns the pending label and color into a tag. Blank labels are
// ignored. The reducer assigns the id.
func (f *taskForm) addTag() {
	label := strings.TrimSpace(f.tagLabel.Value())
	if label == "" {
		return
	}
	f.tags = append(f.tags, board.Tag{Label: label, Color: board.TagColors()[f.tagColor]})
	f.tagLabel.Reset()
	f.tagColor = defaultColorIndex()
}

// Action returns the action the submitted form stands for.
func (f *taskForm) Action() board.Action {
	tags := append([]board.Tag{}, f.tags...)
	if f.taskID == "" {
		return board.AddTask{
			ColumnID:    f.columnID,
			Title:       f.title.Value(),
			Description: f.description.Value(),
			Tags:        tags,
		}
	}
	title := f.title.Value()
	desc := f.description.Value()
	return board.EditTask{ID: f.taskID, Patch: board.TaskPatch{
		Title:       &title,
		Description: &desc,
		Tags:        &tags,
	}}
}

func (f *taskForm) View() string {
	heading := "New task"
	if f.taskID != "" {
		heading = "Edit task"
	}
	label := func(field taskField, text string) string {
		if f.focus == field {
			return activeLabelStyle.Render(text)
		}
		return labelStyle.Render(text)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(heading) + "\n\n")

	b.WriteString(label(fieldTitle, "Title") + "\n")
	b.WriteString(f.title.View() + "\n\n")

	b.WriteString(label(fieldDescription, "Description") + "\n")
	b.WriteString(f.description.View() + "\n\n")

	b.WriteString(label(fieldTags, "Tags") + "\n")
	if len(f.tags) == 0 {
		b.WriteString(mutedStyle.Render("none") + "\n")
	} else {
		chips := make([]string, len(f.tags))
		for i, tag := range f.tags {
			chip := tagChip(tag)
			if f.focus == fieldTags && i == f.tagCursor {
				chip = lipgloss.NewStyle().Underline(true).Render("[") + chip + lipgloss.NewStyle().Underline(true).Render("]")
			}
			chips[i] = chip
		}
		b.WriteString(strings.Join(chips, " ") + "\n")
	}
	b.WriteString("\n")

	b.WriteString(label(fieldTagLabel, "New tag") + "  ")
	b.WriteString(f.tagLabel.View() + "\n")
	color := board.TagColors()[f.tagColor]
	b.WriteString(label(fieldTagColor, "Color") + "    ")
	b.WriteString("‹ " + tagChip(board.Tag{Label: string(color), Color: color}) + " ›\n\n")

	hint := "tab next field · enter save · ctrl+s save · esc cancel"
	switch f.focus {
	case fieldDescription:
		hint = "enter new line · tab next field · ctrl+s save · esc cancel"
	case fieldTagLabel, fieldTagColor:
		hint = "enter add tag · ←→ color · tab next field · ctrl+s save · esc cancel"
	case fieldTags:
		hint = "←→ pick tag · x remove · tab next field · ctrl+s save · esc cancel"
	}
	b.WriteString(mutedStyle.Render(hint))
	return formStyle.Render(b.String())
}
