package logging

import (
	"bytes"
	"io"
	"sync"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

// newSyncBuffer returns a reader func and a writer safe to use from another
// goroutine.
func newSyncBuffer() (func() string, io.Writer) {
	sb := &syncBuffer{}
	return func() string {
		sb.mu.Lock()
		defer sb.mu.Unlock()
		return sb.buf.String()
	}, sb
}
