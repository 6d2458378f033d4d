package board

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

func TestTimestampSourceIsMonotonic(t *testing.T) {
	fixed := time.UnixMilli(1735689600000)
	src := NewTimestampSource(func() time.Time { return fixed })

	got := []string{src.NewID(), src.NewID(), src.NewID()}
	want := []string{"1735689600000", "1735689600001", "1735689600002"}
	if !equalStrings(got, want) {
		t.Errorf("ids: got %v, want %v", got, want)
	}
}

func TestNewIDSource(t *testing.T) {
	if _, err := NewIDSource("timestamp"); err != nil {
		t.Errorf("timestamp: %v", err)
	}
	src, err := NewIDSource("UUID")
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	if _, err := uuid.Parse(src.NewID()); err != nil {
		t.Errorf("uuid source minted invalid id: %v", err)
	}
	src, err = NewIDSource("ulid")
	if err != nil {
		t.Fatalf("ulid: %v", err)
	}
	first, second := src.NewID(), src.NewID()
	if _, err := ulid.ParseStrict(first); err != nil {
		t.Errorf("ulid source minted invalid id: %v", err)
	}
	if first == second {
		t.Errorf("ulid source repeated %s", first)
	}
	if _, err := NewIDSource("sequential"); err == nil {
		t.Error("expected error for unknown scheme")
	}
}

func TestParseTagColor(t *testing.T) {
	tests := []struct {
		in      string
		want    TagColor
		wantErr bool
	}{
		{"", ColorBlue, false},
		{"Purple", ColorPurple, false},
		{" gray ", ColorGray, false},
		{"grey", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTagColor(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTagColor) {
				t.Errorf("ParseTagColor(%q): got err %v, want ErrInvalidTagColor", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseTagColor(%q): got %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if len(TagColors()) != 8 {
		t.Errorf("TagColors: got %d, want 8", len(TagColors()))
	}
}
