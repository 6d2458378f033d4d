package session

import (
	"bytes"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nibzard/kanban-go/internal/board"
	"github.com/nibzard/kanban-go/internal/store"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return "id" + strconv.Itoa(s.n)
}

func newSession(t *testing.T, slot store.Slot) (*Session, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})
	return Open(store.New(slot, nil), board.NewReducer(&seqIDs{}), logger), &logs
}

func TestOpenLoadsDefaultBoard(t *testing.T) {
	s, _ := newSession(t, store.NewMemorySlot(nil))
	b := s.Board()
	if len(b.Columns) != 3 || b.Columns[0].Title != "To Do" {
		t.Fatalf("expected default board, got %+v", b.Columns)
	}
	if s.Location() != "memory" {
		t.Errorf("Location = %q, want memory", s.Location())
	}
}

func TestDispatchSavesChanges(t *testing.T) {
	slot := store.NewMemorySlot(nil)
	s, logs := newSession(t, slot)

	notice, err := s.Dispatch(board.AddTask{ColumnID: "1", Title: "Write spec"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if notice.Title != "Task created" {
		t.Errorf("notice = %q, want Task created", notice.Title)
	}

	reopened, _ := newSession(t, slot)
	todo := reopened.Board().Columns[0]
	if len(todo.Tasks) != 1 || todo.Tasks[0].Title != "Write spec" || todo.Tasks[0].ColumnID != "1" {
		t.Errorf("saved board lost the task: %+v", todo.Tasks)
	}
	if !strings.Contains(logs.String(), "Task created") {
		t.Errorf("notice should be logged, got %s", logs.String())
	}
}

func TestReopenAfterSeveralMutations(t *testing.T) {
	tests := []struct {
		name    string
		actions []board.Action
		columns int
		tasks   int
	}{
		{
			name:    "task then column",
			actions: []board.Action{board.AddTask{ColumnID: "1", Title: "Write spec"}, board.AddColumn{Title: "Blocked"}},
			columns: 4,
			tasks:   1,
		},
		{
			name: "tagged and untagged tasks",
			actions: []board.Action{
				board.AddTask{ColumnID: "1", Title: "Write spec"},
				board.AddTask{ColumnID: "2", Title: "Review", Tags: []board.Tag{{Label: "docs", Color: board.ColorBlue}}},
				board.EditColumn{ID: "3", Title: "Shipped"},
			},
			columns: 3,
			tasks:   2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := store.NewFileSlot(t.TempDir(), store.DefaultKey)
			s, _ := newSession(t, slot)
			for _, a := range tt.actions {
				if _, err := s.Dispatch(a); err != nil {
					t.Fatalf("%s: %v", a.Name(), err)
				}
			}

			reopened, _ := newSession(t, slot)
			got := reopened.Board()
			if len(got.Columns) != tt.columns || got.TaskCount() != tt.tasks {
				t.Fatalf("reopened board has %d columns and %d tasks, want %d and %d",
					len(got.Columns), got.TaskCount(), tt.columns, tt.tasks)
			}
			if !reflect.DeepEqual(got, s.Board()) {
				t.Errorf("reopened board differs:\n got %+v\nwant %+v", got, s.Board())
			}
		})
	}
}

func TestDispatchNoOpDoesNotSave(t *testing.T) {
	slot := store.NewMemorySlot(nil)
	s, _ := newSession(t, slot)

	notice, err := s.Dispatch(board.DeleteTask{ID: "missing"})
	if err != nil || !notice.IsZero() {
		t.Fatalf("got %v, %v; want zero notice and nil error", notice, err)
	}
	if _, err := slot.Read(); !errors.Is(err, store.ErrSlotEmpty) {
		t.Errorf("no-op should not write the slot, Read err = %v", err)
	}
}

func TestDispatchRejectedKeepsBoard(t *testing.T) {
	slot := store.NewMemorySlot(nil)
	s, _ := newSession(t, slot)
	if _, err := s.Dispatch(board.AddTask{ColumnID: "2", Title: "busy"}); err != nil {
		t.Fatal(err)
	}
	saved, _ := slot.Read()

	notice, err := s.Dispatch(board.DeleteColumn{ID: "2"})
	if !errors.Is(err, board.ErrColumnNotEmpty) {
		t.Fatalf("err = %v, want ErrColumnNotEmpty", err)
	}
	if notice.Kind != board.NoticeError || notice.Title != "Cannot delete column" {
		t.Errorf("notice = %+v", notice)
	}
	if len(s.Board().Columns) != 3 {
		t.Errorf("board changed after rejected delete: %+v", s.Board().Columns)
	}
	after, _ := slot.Read()
	if !bytes.Equal(saved, after) {
		t.Error("rejected action should not rewrite the slot")
	}

	if _, err := s.Dispatch(board.AddColumn{Title: "  "}); !errors.Is(err, board.ErrEmptyTitle) {
		t.Errorf("err = %v, want ErrEmptyTitle", err)
	}
}

type failingSlot struct{ store.MemorySlot }

func (f *failingSlot) Write([]byte) error { return errors.New("disk full") }

func TestDispatchSaveFailure(t *testing.T) {
	s, _ := newSession(t, &failingSlot{})

	notice, err := s.Dispatch(board.AddColumn{Title: "Blocked"})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("err = %v, want save failure", err)
	}
	if notice.Kind != board.NoticeError || notice.Title != "Save failed" {
		t.Errorf("notice = %+v", notice)
	}
	if len(s.Board().Columns) != 4 {
		t.Errorf("in-memory board should keep the change, got %d columns", len(s.Board().Columns))
	}
}
