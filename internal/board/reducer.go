package board

import (
	"fmt"
	"strings"
)

// NoticeKind classifies a notice.
type NoticeKind string

const (
	NoticeInfo  NoticeKind = "info"
	NoticeError NoticeKind = "error"
)

// Notice is the user-facing message produced by an action.
// A zero Notice means the action changed nothing.
type Notice struct {
	Kind   NoticeKind
	Title  string
	Detail string
}

// IsZero returns true if the notice is empty.
func (n Notice) IsZero() bool {
	return n.Kind == "" && n.Title == ""
}

func (n Notice) String() string {
	if n.Detail == "" {
		return n.Title
	}
	return n.Title + ": " + n.Detail
}

func info(title string) Notice {
	return Notice{Kind: NoticeInfo, Title: title}
}

// Action is a board mutation understood by Reducer.Apply.
type Action interface {
	// Name identifies the action in logs.
	Name() string
	apply(r *Reducer, b *Board) (Notice, error)
}

// Reducer turns a board and an action into the next board.
type Reducer struct {
	ids IDSource
}

// NewReducer returns a reducer that mints new IDs from ids.
func NewReducer(ids IDSource) *Reducer {
	if ids == nil {
		ids = UUIDSource{}
	}
	return &Reducer{ids: ids}
}

// Apply returns the board that results from applying a to prev.
// prev is never modified. On error prev is returned unchanged along with any
// notice the failure should surface. A zero notice with a nil error means the
// action was a no-op.
func (r *Reducer) Apply(prev Board, a Action) (Board, Notice, error) {
	next := prev.Clone()
	notice, err := a.apply(r, &next)
	if err != nil {
		return prev, notice, err
	}
	if notice.IsZero() {
		return prev, notice, nil
	}
	return next, notice, nil
}

// AddColumn appends a new column at the end of the board.
type AddColumn struct {
	Title string
}

func (AddColumn) Name() string { return "add_column" }

func (a AddColumn) apply(r *Reducer, b *Board) (Notice, error) {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		return Notice{}, ErrEmptyTitle
	}
	b.Columns = append(b.Columns, Column{
		ID:    r.newID(b, nil),
		Title: title,
		Order: len(b.Columns),
		Tasks: []Task{},
	})
	return info("Column created"), nil
}

// EditColumn renames a column.
type EditColumn struct {
	ID    string
	Title string
}

func (EditColumn) Name() string { return "edit_column" }

func (a EditColumn) apply(_ *Reducer, b *Board) (Notice, error) {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		return Notice{}, ErrEmptyTitle
	}
	col := b.FindColumn(a.ID)
	if col == nil {
		return Notice{}, nil
	}
	col.Title = title
	return info("Column updated"), nil
}

// DeleteColumn removes an empty column.
type DeleteColumn struct {
	ID string
}

func (DeleteColumn) Name() string { return "delete_column" }

func (a DeleteColumn) apply(_ *Reducer, b *Board) (Notice, error) {
	i := b.ColumnIndex(a.ID)
	if i < 0 {
		return Notice{}, nil
	}
	if n := len(b.Columns[i].Tasks); n > 0 {
		notice := Notice{
			Kind:   NoticeError,
			Title:  "Cannot delete column",
			Detail: "Remove all tasks first.",
		}
		return notice, fmt.Errorf("delete column %q with %d task(s): %w", b.Columns[i].Title, n, ErrColumnNotEmpty)
	}
	b.Columns = append(b.Columns[:i:i], b.Columns[i+1:]...)
	renumberColumns(b.Columns)
	return info("Column removed"), nil
}

// MoveColumn moves a column to the position currently held by TargetID.
type MoveColumn struct {
	ColumnID string
	TargetID string
}

func (MoveColumn) Name() string { return "move_column" }

func (a MoveColumn) apply(_ *Reducer, b *Board) (Notice, error) {
	from := b.ColumnIndex(a.ColumnID)
	to := b.ColumnIndex(a.TargetID)
	if from < 0 || to < 0 || from == to {
		return Notice{}, nil
	}
	col := b.Columns[from]
	rest := append(b.Columns[:from:from], b.Columns[from+1:]...)
	b.Columns = append(rest[:to:to], append([]Column{col}, rest[to:]...)...)
	renumberColumns(b.Columns)
	return info("Column moved"), nil
}

// AddTask appends a new task to a column.
type AddTask struct {
	ColumnID    string
	Title       string
	Description string
	Tags        []Tag
}

func (AddTask) Name() string { return "add_task" }

func (a AddTask) apply(r *Reducer, b *Board) (Notice, error) {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		return Notice{}, ErrEmptyTitle
	}
	col := b.FindColumn(a.ColumnID)
	if col == nil {
		return Notice{}, fmt.Errorf("%w: %q", ErrColumnNotFound, a.ColumnID)
	}
	id := r.newID(b, nil)
	tags, err := r.prepareTags(b, id, a.Tags)
	if err != nil {
		return Notice{}, err
	}
	col.Tasks = append(col.Tasks, Task{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(a.Description),
		Tags:        tags,
		ColumnID:    col.ID,
		Order:       len(col.Tasks),
	})
	return info("Task created"), nil
}

// TaskPatch holds the task fields an edit replaces. Nil fields are kept.
type TaskPatch struct {
	Title       *string
	Description *string
	Tags        *[]Tag
}

// EditTask merges a patch into an existing task.
type EditTask struct {
	ID    string
	Patch TaskPatch
}

func (EditTask) Name() string { return "edit_task" }

func (a EditTask) apply(r *Reducer, b *Board) (Notice, error) {
	task := b.FindTask(a.ID)
	if task == nil {
		return Notice{}, nil
	}
	if a.Patch.Title != nil {
		title := strings.TrimSpace(*a.Patch.Title)
		if title == "" {
			return Notice{}, ErrEmptyTitle
		}
		task.Title = title
	}
	if a.Patch.Description != nil {
		task.Description = strings.TrimSpace(*a.Patch.Description)
	}
	if a.Patch.Tags != nil {
		tags, err := r.prepareTags(b, task.ID, *a.Patch.Tags)
		if err != nil {
			return Notice{}, err
		}
		task.Tags = tags
	}
	return info("Task updated"), nil
}

// DeleteTask removes a task from whichever column holds it.
type DeleteTask struct {
	ID string
}

func (DeleteTask) Name() string { return "delete_task" }

func (a DeleteTask) apply(_ *Reducer, b *Board) (Notice, error) {
	ci := b.ColumnOfTask(a.ID)
	if ci < 0 {
		return Notice{}, nil
	}
	col := &b.Columns[ci]
	col.Tasks = removeTask(col.Tasks, col.TaskIndex(a.ID))
	renumberTasks(col.Tasks)
	return info("Task removed"), nil
}

// MoveTask drops a task onto a target, which is either another task or a
// column. Dropping on a task takes that task's position; dropping on a
// column appends to it.
type MoveTask struct {
	TaskID   string
	TargetID string
}

func (MoveTask) Name() string { return "move_task" }

func (a MoveTask) apply(_ *Reducer, b *Board) (Notice, error) {
	if a.TaskID == a.TargetID {
		return Notice{}, nil
	}
	src := b.ColumnOfTask(a.TaskID)
	if src < 0 {
		return Notice{}, nil
	}
	dst := b.ColumnOfTask(a.TargetID)
	onTask := dst >= 0
	if !onTask {
		dst = b.ColumnIndex(a.TargetID)
	}
	if dst < 0 {
		return Notice{}, nil
	}

	srcCol := &b.Columns[src]
	from := srcCol.TaskIndex(a.TaskID)
	task := srcCol.Tasks[from]

	if src == dst {
		rest := removeTask(srcCol.Tasks, from)
		to := len(rest)
		if onTask {
			to = srcCol.TaskIndex(a.TargetID)
		}
		if to == from {
			return Notice{}, nil
		}
		srcCol.Tasks = insertTask(rest, to, task)
		renumberTasks(srcCol.Tasks)
		return info("Task moved"), nil
	}

	dstCol := &b.Columns[dst]
	to := len(dstCol.Tasks)
	if onTask {
		to = dstCol.TaskIndex(a.TargetID)
	}
	srcCol.Tasks = removeTask(srcCol.Tasks, from)
	task.ColumnID = dstCol.ID
	dstCol.Tasks = insertTask(dstCol.Tasks, to, task)
	renumberTasks(srcCol.Tasks)
	renumberTasks(dstCol.Tasks)
	return info("Task moved"), nil
}

// prepareTags validates tags, fills in missing IDs and colors, and drops
// repeated IDs keeping the first occurrence.
func (r *Reducer) prepareTags(b *Board, taskID string, in []Tag) ([]Tag, error) {
	out := make([]Tag, 0, len(in))
	seen := make(map[string]bool, len(in))
	for i, tag := range in {
		label := strings.TrimSpace(tag.Label)
		if label == "" {
			return nil, fmt.Errorf("tags[%d]: %w", i, ErrEmptyTagLabel)
		}
		color, err := ParseTagColor(string(tag.Color))
		if err != nil {
			return nil, fmt.Errorf("tags[%d]: %w", i, err)
		}
		id := tag.ID
		if id == "" {
			id = r.newID(b, func(id string) bool { return id == taskID || seen[id] })
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, Tag{ID: id, Label: label, Color: color})
	}
	return out, nil
}

// newID mints an identifier not already used on b or reported by taken.
// Timestamp IDs minted by separate processes can collide, so the board is
// the authority.
func (r *Reducer) newID(b *Board, taken func(string) bool) string {
	for {
		id := r.ids.NewID()
		if (taken == nil || !taken(id)) && !b.hasID(id) {
			return id
		}
	}
}

// removeTask returns a new slice without tasks[i].
func removeTask(tasks []Task, i int) []Task {
	out := make([]Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	return append(out, tasks[i+1:]...)
}

// insertTask returns a new slice with t at position i.
func insertTask(tasks []Task, i int, t Task) []Task {
	if i > len(tasks) {
		i = len(tasks)
	}
	out := make([]Task, 0, len(tasks)+1)
	out = append(out, tasks[:i]...)
	out = append(out, t)
	return append(out, tasks[i:]...)
}
