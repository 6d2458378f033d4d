// Package session holds the live board and funnels every change through the
// reducer and into the store.
package session

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/kanban-go/internal/board"
	"github.com/nibzard/kanban-go/internal/logging"
	"github.com/nibzard/kanban-go/internal/store"
)

// Session is the single owner of the current board.
type Session struct {
	board   board.Board
	store   *store.Store
	reducer *board.Reducer
	logger  *log.Logger
}

// Open loads the saved board (or the default one) and returns a session
// around it. A nil logger discards output.
func Open(st *store.Store, r *board.Reducer, logger *log.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	b := st.Load()
	logger.Debug("board loaded", "slot", st.Location(), "columns", len(b.Columns), "tasks", b.TaskCount())
	return &Session{board: b, store: st, reducer: r, logger: logger}
}

// Board returns the current board. Callers must treat it as read-only.
func (s *Session) Board() board.Board {
	return s.board
}

// Location describes where the board is saved.
func (s *Session) Location() string {
	return s.store.Location()
}

// Dispatch applies a to the current board. A zero notice with a nil error
// means nothing changed and nothing was saved. Rejected actions leave the
// board untouched and may still carry a notice to show. If the board changed
// but could not be saved, the new board is kept and the save error returned.
func (s *Session) Dispatch(a board.Action) (board.Notice, error) {
	s.logger.Debug("dispatch", "action", a.Name())

	next, notice, err := s.reducer.Apply(s.board, a)
	if err != nil {
		s.logger.Warn("action rejected", "action", a.Name(), "err", err)
		return notice, err
	}
	if notice.IsZero() {
		s.logger.Debug("action changed nothing", "action", a.Name())
		return notice, nil
	}

	s.board = next
	s.logger.Info(notice.Title, "action", a.Name())
	if err := s.store.Save(next); err != nil {
		s.logger.Error("save failed", "slot", s.store.Location(), "err", err)
		return board.Notice{Kind: board.NoticeError, Title: "Save failed", Detail: err.Error()},
			fmt.Errorf("%s: %w", a.Name(), err)
	}
	return notice, nil
}
