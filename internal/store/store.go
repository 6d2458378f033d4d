// Package store persists the board as a single snapshot in a durable slot.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/kanban-go/internal/board"
)

// DefaultKey is the slot key used when none is configured.
const DefaultKey = "task-manager-data"

// DefaultBoard returns the board used when no valid snapshot exists.
func DefaultBoard() board.Board {
	return board.Board{Columns: []board.Column{
		{ID: "1", Title: "To Do", Order: 0, Tasks: []board.Task{}},
		{ID: "2", Title: "In Progress", Order: 1, Tasks: []board.Task{}},
		{ID: "3", Title: "Done", Order: 2, Tasks: []board.Task{}},
	}}
}

// Store loads and saves whole-board snapshots.
type Store struct {
	slot   Slot
	logger *log.Logger
}

// New returns a store backed by slot. A nil logger discards output.
func New(slot Slot, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{slot: slot, logger: logger}
}

// Location describes where snapshots are kept.
func (s *Store) Location() string {
	return s.slot.Name()
}

// Load returns the saved board. A missing, unreadable or invalid snapshot
// yields DefaultBoard; Load never fails.
func (s *Store) Load() board.Board {
	data, err := s.slot.Read()
	if err != nil {
		if errors.Is(err, ErrSlotEmpty) {
			s.logger.Debug("no saved board, using defaults", "slot", s.slot.Name())
		} else {
			s.logger.Warn("cannot read saved board, using defaults", "slot", s.slot.Name(), "err", err)
		}
		return DefaultBoard()
	}

	b, err := Decode(data)
	if err != nil {
		s.logger.Warn("saved board is invalid, using defaults", "slot", s.slot.Name(), "err", err)
		return DefaultBoard()
	}
	return b
}

// Save writes the whole board to the slot.
func (s *Store) Save(b board.Board) error {
	data, err := Encode(b)
	if err != nil {
		return err
	}
	if err := s.slot.Write(data); err != nil {
		return fmt.Errorf("save board to %s: %w", s.slot.Name(), err)
	}
	return nil
}

// Inspect validates the stored snapshot without falling back to defaults.
// It returns ErrSlotEmpty if nothing was saved yet.
func (s *Store) Inspect() (*ValidationResult, error) {
	data, err := s.slot.Read()
	if err != nil {
		return nil, err
	}
	return Validate(data), nil
}

// Encode serializes the column list with 2-space indentation and a trailing
// newline.
func Encode(b board.Board) ([]byte, error) {
	// Tags must always serialize as an array.
	cols := b.Clone().Columns
	if cols == nil {
		cols = []board.Column{}
	}
	data, err := json.MarshalIndent(cols, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal board: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode validates and parses a snapshot into a normalized board.
func Decode(data []byte) (board.Board, error) {
	if result := Validate(data); !result.Valid {
		return board.Board{}, errors.Join(result.Errors...)
	}
	var cols []board.Column
	if err := json.Unmarshal(data, &cols); err != nil {
		return board.Board{}, fmt.Errorf("parse snapshot: %w", err)
	}
	return board.Normalize(board.Board{Columns: cols}), nil
}
