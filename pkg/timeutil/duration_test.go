package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in    string
		want  time.Duration
		label string
	}{
		{"3d", 3 * day, "3d"},
		{"1w2d6h30m", (7*24+2*24+6)*time.Hour + 30*time.Minute, "1w2d6h30m"},
		{"2 weeks", 14 * day, "2w"},
		{"1 week 2 days", 9 * day, "1w2d"},
		{"3mo", 90 * day, "3mo"},
		{"1y", 365 * day, "1y"},
		{"90s", 90 * time.Second, "1m30s"},
		{"10D", 10 * day, "1w3d"},
	}
	for _, tt := range tests {
		got, label, err := ParseWindow(tt.in)
		if err != nil {
			t.Fatalf("ParseWindow(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want || label != tt.label {
			t.Fatalf("ParseWindow(%q) = %v %q, want %v %q", tt.in, got, label, tt.want, tt.label)
		}
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"", "noop", "3", "0d", "5 fortnights", "2d and 3h", "600y", "200y200y", "99999999999999999999d"} {
		if _, _, err := ParseWindow(in); !errors.Is(err, ErrWindow) {
			t.Fatalf("ParseWindow(%q): expected ErrWindow, got %v", in, err)
		}
	}
}

func TestFormatWindow(t *testing.T) {
	if got := FormatWindow(0); got != "0s" {
		t.Fatalf("FormatWindow(0) = %q", got)
	}
	if got := FormatWindow(400 * day); got != "1y1mo5d" {
		t.Fatalf("FormatWindow(400d) = %q", got)
	}
}
