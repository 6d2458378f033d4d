package board

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// IDSource mints identifiers for new columns, tasks and tags.
type IDSource interface {
	NewID() string
}

// Supported ID schemes.
const (
	IDSchemeTimestamp = "timestamp"
	IDSchemeUUID      = "uuid"
	IDSchemeULID      = "ulid"
)

// NewIDSource returns the IDSource for a scheme name.
func NewIDSource(scheme string) (IDSource, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", IDSchemeTimestamp:
		return NewTimestampSource(time.Now), nil
	case IDSchemeUUID:
		return UUIDSource{}, nil
	case IDSchemeULID:
		return ULIDSource{}, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q (want %s, %s or %s)", scheme, IDSchemeTimestamp, IDSchemeUUID, IDSchemeULID)
	}
}

// TimestampSource mints millisecond timestamps as decimal strings.
// IDs minted within the same millisecond are bumped so they stay unique.
type TimestampSource struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewTimestampSource returns a TimestampSource reading the given clock.
func NewTimestampSource(now func() time.Time) *TimestampSource {
	if now == nil {
		now = time.Now
	}
	return &TimestampSource{now: now}
}

// NewID returns the next identifier.
func (s *TimestampSource) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return strconv.FormatInt(ms, 10)
}

// UUIDSource mints random UUIDs.
type UUIDSource struct{}

// NewID returns a new random UUID string.
func (UUIDSource) NewID() string {
	return uuid.NewString()
}

// ULIDSource mints ULIDs, which sort by creation time.
type ULIDSource struct{}

// NewID returns a new ULID string.
func (ULIDSource) NewID() string {
	return ulid.Make().String()
}
