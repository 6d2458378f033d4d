package cmd

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/nibzard/kanban-go/internal/board"
	"github.com/nibzard/kanban-go/internal/session"
)

var (
	errAmbiguous = errors.New("ambiguous reference")
	errNotFound  = errors.New("not found")
)

// tagList collects repeated -tag label[:color] flags.
type tagList []board.Tag

func (t *tagList) String() string {
	parts := make([]string, len(*t))
	for i, tag := range *t {
		parts[i] = tag.Label + ":" + string(tag.Color)
	}
	return strings.Join(parts, ",")
}

func (t *tagList) Set(v string) error {
	label, colorName, _ := strings.Cut(v, ":")
	label = strings.TrimSpace(label)
	if label == "" {
		return board.ErrEmptyTagLabel
	}
	color, err := board.ParseTagColor(colorName)
	if err != nil {
		return err
	}
	*t = append(*t, board.Tag{Label: label, Color: color})
	return nil
}

// resolveColumn finds a column by id, then by case-insensitive title.
func resolveColumn(b board.Board, ref string) (*board.Column, error) {
	if col := b.FindColumn(ref); col != nil {
		return col, nil
	}
	var match *board.Column
	for i := range b.Columns {
		if strings.EqualFold(b.Columns[i].Title, strings.TrimSpace(ref)) {
			if match != nil {
				return nil, fmt.Errorf("column %q: %w, use the id", ref, errAmbiguous)
			}
			match = &b.Columns[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("column %q: %w", ref, errNotFound)
	}
	return match, nil
}

// resolveTask finds a task by id, then by case-insensitive title.
func resolveTask(b board.Board, ref string) (*board.Task, error) {
	if task := b.FindTask(ref); task != nil {
		return task, nil
	}
	var match *board.Task
	for ci := range b.Columns {
		for ti := range b.Columns[ci].Tasks {
			task := &b.Columns[ci].Tasks[ti]
			if !strings.EqualFold(task.Title, strings.TrimSpace(ref)) {
				continue
			}
			if match != nil {
				return nil, fmt.Errorf("task %q: %w, use the id", ref, errAmbiguous)
			}
			match = task
		}
	}
	if match == nil {
		return nil, fmt.Errorf("task %q: %w", ref, errNotFound)
	}
	return match, nil
}

// dispatch applies an action and turns error notices into errors.
func dispatch(s *session.Session, a board.Action) (board.Notice, error) {
	notice, err := s.Dispatch(a)
	if err != nil {
		if notice.Kind == board.NoticeError {
			return notice, fmt.Errorf("%s: %w", notice, err)
		}
		return notice, err
	}
	return notice, nil
}

// parseArgs parses a subcommand's flags and checks its positional count.
func (a *app) parseArgs(fs *flag.FlagSet, args []string, minArgs, maxArgs int, usage string) ([]string, error) {
	fs.SetOutput(a.errOut)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	rest := fs.Args()
	if len(rest) < minArgs || (maxArgs >= 0 && len(rest) > maxArgs) {
		return nil, fmt.Errorf("usage: kanban %s", usage)
	}
	return rest, nil
}

// lsCommand prints the board, or a single column.
func (a *app) lsCommand(args []string) error {
	fs := flag.NewFlagSet("kanban ls", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Show descriptions")
	rest, err := a.parseArgs(fs, args, 0, 1, "ls [-v] [column]")
	if err != nil {
		return err
	}

	s, err := a.openSession(a.logger)
	if err != nil {
		return err
	}
	b := s.Board()
	cols := b.Columns
	if len(rest) == 1 {
		col, err := resolveColumn(b, rest[0])
		if err != nil {
			return err
		}
		cols = []board.Column{*col}
	}

	if len(cols) == 0 {
		fmt.Fprintln(a.out, "No columns.")
		return nil
	}
	for i, col := range cols {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		a.printColumn(col, *verbose)
	}
	return nil
}

func (a *app) printColumn(col board.Column, verbose bool) {
	fmt.Fprintf(a.out, "%s (%d) [%s]\n", col.Title, len(col.Tasks), col.ID)
	if len(col.Tasks) == 0 {
		fmt.Fprintln(a.out, "  No tasks.")
		return
	}
	for _, task := range col.Tasks {
		line := fmt.Sprintf("  [%s] %s", task.ID, task.Title)
		for _, tag := range task.Tags {
			line += fmt.Sprintf(" #%s(%s)", tag.Label, tag.Color)
		}
		fmt.Fprintln(a.out, line)
		if verbose && task.Description != "" {
			for _, l := range strings.Split(task.Description, "\n") {
				fmt.Fprintf(a.out, "      %s\n", l)
			}
		}
	}
}

// columnCommand handles column add|rename|rm|move.
func (a *app) columnCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: kanban column add|rename|rm|move ...")
	}
	sub, args := args[0], args[1:]
	fs := flag.NewFlagSet("kanban column "+sub, flag.ContinueOnError)

	s, err := a.openSession(a.logger)
	if err != nil {
		return err
	}
	b := s.Board()

	switch sub {
	case "add":
		rest, err := a.parseArgs(fs, args, 1, -1, "column add <title>")
		if err != nil {
			return err
		}
		if _, err := dispatch(s, board.AddColumn{Title: strings.Join(rest, " ")}); err != nil {
			return err
		}
		cols := s.Board().Columns
		fmt.Fprintln(a.out, cols[len(cols)-1].ID)
		return nil
	case "rename":
		rest, err := a.parseArgs(fs, args, 2, -1, "column rename <column> <title>")
		if err != nil {
			return err
		}
		col, err := resolveColumn(b, rest[0])
		if err != nil {
			return err
		}
		_, err = dispatch(s, board.EditColumn{ID: col.ID, Title: strings.Join(rest[1:], " ")})
		return err
	case "rm":
		rest, err := a.parseArgs(fs, args, 1, 1, "column rm <column>")
		if err != nil {
			return err
		}
		col, err := resolveColumn(b, rest[0])
		if err != nil {
			return err
		}
		_, err = dispatch(s, board.DeleteColumn{ID: col.ID})
		return err
	case "move":
		rest, err := a.parseArgs(fs, args, 2, 2, "column move <column> <target-column>")
		if err != nil {
			return err
		}
		col, err := resolveColumn(b, rest[0])
		if err != nil {
			return err
		}
		target, err := resolveColumn(b, rest[1])
		if err != nil {
			return err
		}
		_, err = dispatch(s, board.MoveColumn{ColumnID: col.ID, TargetID: target.ID})
		return err
	}
	return fmt.Errorf("unknown column command: %s", sub)
}

// taskCommand handles task add|edit|rm|move.
func (a *app) taskCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: kanban task add|edit|rm|move ...")
	}
	sub, args := args[0], args[1:]
	fs := flag.NewFlagSet("kanban task "+sub, flag.ContinueOnError)

	s, err := a.openSession(a.logger)
	if err != nil {
		return err
	}
	b := s.Board()

	switch sub {
	case "add":
		column := fs.String("column", "", "Column for the task (default: first column)")
		desc := fs.String("desc", "", "Description")
		var tags tagList
		fs.Var(&tags, "tag", "Tag as label[:color], repeatable")
		rest, err := a.parseArgs(fs, args, 1, -1, "task add [-column col] [-desc text] [-tag label:color] <title>")
		if err != nil {
			return err
		}
		if len(b.Columns) == 0 {
			return fmt.Errorf("the board has no columns, add one with 'kanban column add'")
		}
		col := &b.Columns[0]
		if *column != "" {
			if col, err = resolveColumn(b, *column); err != nil {
				return err
			}
		}
		if _, err := dispatch(s, board.AddTask{
			ColumnID:    col.ID,
			Title:       strings.Join(rest, " "),
			Description: *desc,
			Tags:        tags,
		}); err != nil {
			return err
		}
		next := s.Board()
		added := next.FindColumn(col.ID).Tasks
		fmt.Fprintln(a.out, added[len(added)-1].ID)
		return nil

	case "edit":
		title := fs.String("title", "", "New title")
		desc := fs.String("desc", "", "New description")
		clearTags := fs.Bool("clear-tags", false, "Remove all tags")
		var tags tagList
		fs.Var(&tags, "tag", "Tag to add as label[:color], repeatable")
		rest, err := a.parseArgs(fs, args, 1, 1, "task edit [-title text] [-desc text] [-clear-tags] [-tag label:color] <task>")
		if err != nil {
			return err
		}
		task, err := resolveTask(b, rest[0])
		if err != nil {
			return err
		}

		var patch board.TaskPatch
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "title":
				patch.Title = title
			case "desc":
				patch.Description = desc
			}
		})
		if *clearTags || len(tags) > 0 {
			next := []board.Tag{}
			if !*clearTags {
				next = append(next, task.Tags...)
			}
			next = append(next, tags...)
			patch.Tags = &next
		}
		if patch == (board.TaskPatch{}) {
			return fmt.Errorf("nothing to change, pass -title, -desc, -tag or -clear-tags")
		}
		_, err = dispatch(s, board.EditTask{ID: task.ID, Patch: patch})
		return err

	case "rm":
		rest, err := a.parseArgs(fs, args, 1, 1, "task rm <task>")
		if err != nil {
			return err
		}
		task, err := resolveTask(b, rest[0])
		if err != nil {
			return err
		}
		_, err = dispatch(s, board.DeleteTask{ID: task.ID})
		return err

	case "move":
		toColumn := fs.Bool("column", false, "Treat the target as a column and append the task to it")
		rest, err := a.parseArgs(fs, args, 2, 2, "task move [-column] <task> <target-task-or-column>")
		if err != nil {
			return err
		}
		task, err := resolveTask(b, rest[0])
		if err != nil {
			return err
		}
		targetID, err := resolveMoveTarget(b, rest[1], *toColumn)
		if err != nil {
			return err
		}
		notice, err := dispatch(s, board.MoveTask{TaskID: task.ID, TargetID: targetID})
		if err != nil {
			return err
		}
		if notice.IsZero() {
			fmt.Fprintln(a.out, "Nothing to move.")
		}
		return nil
	}
	return fmt.Errorf("unknown task command: %s", sub)
}

// resolveMoveTarget resolves a drop target: a task unless it only names a
// column (or columnOnly is set).
func resolveMoveTarget(b board.Board, ref string, columnOnly bool) (string, error) {
	if !columnOnly {
		task, err := resolveTask(b, ref)
		if err == nil {
			return task.ID, nil
		}
		if !errors.Is(err, errNotFound) {
			return "", err
		}
	}
	col, err := resolveColumn(b, ref)
	if err != nil {
		return "", err
	}
	return col.ID, nil
}
