package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrSlotEmpty is returned by Slot.Read when nothing has been saved yet.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a single durable key holding one serialized snapshot.
type Slot interface {
	Read() ([]byte, error)
	Write(data []byte) error
	// Name describes where the slot lives, for logs and diagnostics.
	Name() string
}

// FileSlot stores the snapshot as <Dir>/<Key>.json.
type FileSlot struct {
	Dir string
	Key string
}

// NewFileSlot returns a slot for key inside dir.
func NewFileSlot(dir, key string) *FileSlot {
	return &FileSlot{Dir: dir, Key: key}
}

// Path returns the snapshot file path.
func (s *FileSlot) Path() string {
	return filepath.Join(s.Dir, s.Key+".json")
}

// Name returns the snapshot file path.
func (s *FileSlot) Name() string {
	return s.Path()
}

// Read returns the stored snapshot, or ErrSlotEmpty if the file is missing.
func (s *FileSlot) Read() ([]byte, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}

// Write replaces the snapshot. The file is written to a temporary name and
// renamed into place, so readers never see a partial snapshot.
func (s *FileSlot) Write(data []byte) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, s.Key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// MemorySlot keeps the snapshot in memory.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
}

// NewMemorySlot returns a slot preloaded with data. Nil data means empty.
func NewMemorySlot(data []byte) *MemorySlot {
	return &MemorySlot{data: data}
}

func (s *MemorySlot) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemorySlot) Name() string {
	return "memory"
}
