package timeutil

import (
	"errors"
	"testing"
	"time"
)

// Wednesday.
var fixedNow = time.Date(2024, time.March, 13, 14, 30, 0, 0, time.UTC)

func newTestResolver() *Resolver {
	r := NewResolver(9, 0)
	r.Now = func() time.Time { return fixedNow }
	return r
}

func TestResolve(t *testing.T) {
	r := newTestResolver()
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-05", time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC)},
		{"2024-01-05 17:45", time.Date(2024, time.January, 5, 17, 45, 0, 0, time.UTC)},
		{"2024/01/05", time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC)},
		{"January 5, 2024", time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC)},
		{"today", time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)},
		{"now", fixedNow},
		{"yesterday at 5pm", time.Date(2024, time.March, 12, 17, 0, 0, 0, time.UTC)},
		{"yesterday 5:30 pm", time.Date(2024, time.March, 12, 17, 30, 0, 0, time.UTC)},
		{"tomorrow at noon", time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC)},
		{"at 8am", time.Date(2024, time.March, 13, 8, 0, 0, 0, time.UTC)},
		{"last monday", time.Date(2024, time.March, 11, 9, 0, 0, 0, time.UTC)},
		{"wednesday", time.Date(2024, time.March, 6, 9, 0, 0, 0, time.UTC)},
		{"2024-01-05 at 12am", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"3d ago", fixedNow.Add(-72 * time.Hour)},
		{"2 weeks ago", fixedNow.Add(-14 * 24 * time.Hour)},
	}
	for _, tt := range tests {
		got, err := r.Resolve(tt.in)
		if err != nil {
			t.Fatalf("Resolve(%q): unexpected error: %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("Resolve(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolveBound(t *testing.T) {
	r := newTestResolver()

	start, err := r.ResolveBound("2024-01-01", BoundStart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("start bound = %v, want %v", start, want)
	}

	end, err := r.ResolveBound("2024-01-01", BoundEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2024, time.January, 1, 23, 59, 59, 0, time.UTC); !end.Equal(want) {
		t.Fatalf("end bound = %v, want %v", end, want)
	}

	withClock, err := r.ResolveBound("2024-01-01 10:15", BoundEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2024, time.January, 1, 10, 15, 0, 0, time.UTC); !withClock.Equal(want) {
		t.Fatalf("explicit clock should be kept, got %v", withClock)
	}
}

func TestResolveIdempotent(t *testing.T) {
	r := newTestResolver()
	first, err := r.Resolve("yesterday at 5:07pm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := r.Resolve(first.Format("2006-01-02 15:04:05"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again.Equal(first) {
		t.Fatalf("expected %v, got %v", first, again)
	}
}

func TestResolveInvalid(t *testing.T) {
	r := newTestResolver()
	for _, in := range []string{"", "   ", "2024-13-45", "yesterday at 25pm"} {
		_, err := r.Resolve(in)
		if err == nil {
			t.Fatalf("Resolve(%q): expected error", in)
		}
		var dpe *DateParseError
		if !errors.As(err, &dpe) {
			t.Fatalf("Resolve(%q): expected DateParseError, got %T", in, err)
		}
		if !errors.Is(err, ErrDateParse) {
			t.Fatalf("Resolve(%q): expected ErrDateParse in chain", in)
		}
	}
}
