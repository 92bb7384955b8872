package entry

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"tableflip.dev/jrnl/pkg/timeutil"
)

var now = time.Date(2024, time.March, 13, 14, 30, 42, 0, time.UTC)

func TestCreateSplitsTitleAndBody(t *testing.T) {
	e, err := Create("  First line @work\nsecond line\n\nthird @home  ", CreateOptions{
		Now:        func() time.Time { return now },
		TagSymbols: "@",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Title != "First line @work" {
		t.Fatalf("unexpected title %q", e.Title)
	}
	if e.Body != "second line\n\nthird @home" {
		t.Fatalf("unexpected body %q", e.Body)
	}
	if want := now.Truncate(time.Minute); !e.Date.Equal(want) {
		t.Fatalf("expected %v, got %v", want, e.Date)
	}
	if got, want := e.Tags(), []string{"@work", "@home"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected tags %v, got %v", want, got)
	}
}

func TestCreateWithDate(t *testing.T) {
	r := timeutil.NewResolver(9, 0)
	r.Now = func() time.Time { return now }
	e, err := Create("single line", CreateOptions{Date: "yesterday at 5pm", Resolver: r})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2024, time.March, 12, 17, 0, 0, 0, time.UTC); !e.Date.Equal(want) {
		t.Fatalf("expected %v, got %v", want, e.Date)
	}
	if e.Body != "" {
		t.Fatalf("expected empty body, got %q", e.Body)
	}
}

func TestCreateEmpty(t *testing.T) {
	if _, err := Create(" \n\t ", CreateOptions{}); !errors.Is(err, ErrEmptyEntry) {
		t.Fatalf("expected ErrEmptyEntry, got %v", err)
	}
}

func TestCreateBadDate(t *testing.T) {
	_, err := Create("text", CreateOptions{Date: "the day after never"})
	if !errors.Is(err, timeutil.ErrDateParse) {
		t.Fatalf("expected date parse error, got %v", err)
	}
}

func TestTagsFollowText(t *testing.T) {
	e := New(now, "hello @a", "", "@")
	if !e.HasTag("@a") {
		t.Fatalf("expected @a")
	}
	e.SetText("hello @b\nmore")
	if e.HasTag("@a") || !e.HasTag("@b") {
		t.Fatalf("tags did not follow text change: %v", e.Tags())
	}
}

func TestShort(t *testing.T) {
	e := New(now, "a rather long title that goes on", "body", "@")
	got := e.Short("2006-01-02", 20)
	if got != "2024-03-13 a rather…" {
		t.Fatalf("unexpected short form %q", got)
	}
	if strings.Contains(e.Short("2006-01-02", 0), "…") {
		t.Fatalf("width 0 should not truncate")
	}
}

func TestExportJSON(t *testing.T) {
	e := New(now, "title @x", "body", "@")
	e.Starred = true
	b, err := json.Marshal(e.Export())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Export
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Date.Equal(now) || back.Title != "title @x" || !back.Starred {
		t.Fatalf("unexpected round trip: %+v", back)
	}
	if !reflect.DeepEqual(back.Tags, []string{"@x"}) {
		t.Fatalf("unexpected tags %v", back.Tags)
	}
}
