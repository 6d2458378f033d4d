package board

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors returned by the reducer.
var (
	ErrEmptyTitle      = errors.New("title must not be empty")
	ErrColumnNotEmpty  = errors.New("column still has tasks")
	ErrColumnNotFound  = errors.New("column not found")
	ErrInvalidTagColor = errors.New("invalid tag color")
	ErrEmptyTagLabel   = errors.New("tag label must not be empty")
)

// TagColor is one of the eight colors a tag can carry.
type TagColor string

const (
	ColorRed    TagColor = "red"
	ColorOrange TagColor = "orange"
	ColorYellow TagColor = "yellow"
	ColorGreen  TagColor = "green"
	ColorBlue   TagColor = "blue"
	ColorPurple TagColor = "purple"
	ColorPink   TagColor = "pink"
	ColorGray   TagColor = "gray"
)

// DefaultTagColor is used when a tag is created without a color.
const DefaultTagColor = ColorBlue

// TagColors returns all tag colors in picker order.
func TagColors() []TagColor {
	return []TagColor{
		ColorRed,
		ColorOrange,
		ColorYellow,
		ColorGreen,
		ColorBlue,
		ColorPurple,
		ColorPink,
		ColorGray,
	}
}

// Valid reports whether c is one of the known colors.
func (c TagColor) Valid() bool {
	for _, known := range TagColors() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseTagColor parses a color name case-insensitively.
// An empty name yields DefaultTagColor.
func ParseTagColor(s string) (TagColor, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultTagColor, nil
	}
	c := TagColor(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTagColor, s)
	}
	return c, nil
}

// Tag is a labeled, colored annotation owned by a task.
type Tag struct {
	ID    string   `json:"id" yaml:"id"`
	Label string   `json:"label" yaml:"label"`
	Color TagColor `json:"color" yaml:"color"`
}

// Task is a unit of work positioned within one column.
type Task struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []Tag  `json:"tags" yaml:"tags"`
	ColumnID    string `json:"columnId" yaml:"columnId"`
	Order       int    `json:"order" yaml:"order"`
}

// HasTag reports whether the task carries a tag with the given ID.
func (t *Task) HasTag(id string) bool {
	for _, tag := range t.Tags {
		if tag.ID == id {
			return true
		}
	}
	return false
}

// Column is an ordered container of tasks.
type Column struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Order int    `json:"order" yaml:"order"`
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// TaskIndex returns the position of the task with the given ID, or -1.
func (c *Column) TaskIndex(id string) int {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Board is the full ordered set of columns.
type Board struct {
	Columns []Column
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := Board{Columns: make([]Column, len(b.Columns))}
	for i, c := range b.Columns {
		nc := c
		nc.Tasks = make([]Task, len(c.Tasks))
		for j, t := range c.Tasks {
			nt := t
			nt.Tags = append(make([]Tag, 0, len(t.Tags)), t.Tags...)
			nc.Tasks[j] = nt
		}
		out.Columns[i] = nc
	}
	return out
}

// ColumnIndex returns the position of the column with the given ID, or -1.
func (b *Board) ColumnIndex(id string) int {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return i
		}
	}
	return -1
}

// FindColumn returns the column with the given ID, or nil.
func (b *Board) FindColumn(id string) *Column {
	if i := b.ColumnIndex(id); i >= 0 {
		return &b.Columns[i]
	}
	return nil
}

// ColumnOfTask returns the index of the column holding the task, or -1.
func (b *Board) ColumnOfTask(taskID string) int {
	for i := range b.Columns {
		if b.Columns[i].TaskIndex(taskID) >= 0 {
			return i
		}
	}
	return -1
}

// FindTask returns the task with the given ID, or nil.
func (b *Board) FindTask(id string) *Task {
	ci := b.ColumnOfTask(id)
	if ci < 0 {
		return nil
	}
	col := &b.Columns[ci]
	return &col.Tasks[col.TaskIndex(id)]
}

// hasID reports whether any column, task or tag uses id.
func (b *Board) hasID(id string) bool {
	for _, c := range b.Columns {
		if c.ID == id {
			return true
		}
		for _, t := range c.Tasks {
			if t.ID == id || t.HasTag(id) {
				return true
			}
		}
	}
	return false
}

// TaskCount returns the number of tasks across all columns.
func (b *Board) TaskCount() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.Tasks)
	}
	return n
}

// Normalize returns a copy of b with columns sorted by order, column and task
// orders renumbered densely, and every task's ColumnID pointing at the column
// that holds it.
func Normalize(b Board) Board {
	out := b.Clone()
	sort.SliceStable(out.Columns, func(i, j int) bool {
		return out.Columns[i].Order < out.Columns[j].Order
	})
	for i := range out.Columns {
		col := &out.Columns[i]
		col.Order = i
		sort.SliceStable(col.Tasks, func(a, z int) bool {
			return col.Tasks[a].Order < col.Tasks[z].Order
		})
		for j := range col.Tasks {
			col.Tasks[j].ColumnID = col.ID
			if col.Tasks[j].Tags == nil {
				col.Tasks[j].Tags = []Tag{}
			}
		}
		renumberTasks(col.Tasks)
	}
	return out
}

func renumberTasks(tasks []Task) {
	for i := range tasks {
		tasks[i].Order = i
	}
}

func renumberColumns(cols []Column) {
	for i := range cols {
		cols[i].Order = i
	}
}
