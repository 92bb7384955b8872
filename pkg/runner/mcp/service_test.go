package mcp

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/jrnl/pkg/app"
	"tableflip.dev/jrnl/pkg/config"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	now := time.Date(2024, time.March, 13, 14, 30, 0, 0, time.UTC)
	journal := &app.Service{
		Journal: config.Journal{
			Name:        "default",
			Path:        filepath.Join(t.TempDir(), "journal.txt"),
			TagSymbols:  "@",
			TimeFormat:  "2006-01-02 15:04",
			DefaultHour: 9,
		},
		Out:      io.Discard,
		Now:      func() time.Time { return now },
		Location: time.UTC,
	}
	return NewService("default", journal)
}

func TestServiceAddAndList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	added, err := svc.AddEntry(ctx, AddEntryOptions{Text: "Lunch with @ana", Date: "yesterday at noon", Starred: true})
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if added.Title != "Lunch with @ana" || !added.Starred {
		t.Fatalf("unexpected entry %+v", added)
	}
	if len(added.Tags) != 1 || added.Tags[0] != "@ana" {
		t.Fatalf("unexpected tags %v", added.Tags)
	}

	if _, err := svc.AddEntry(ctx, AddEntryOptions{Text: "Standup @work"}); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	all, err := svc.ListEntries(ctx, app.Query{})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(all) != 2 || all[0].Title != "Lunch with @ana" {
		t.Fatalf("unexpected entries %+v", all)
	}

	tagged, err := svc.ListEntries(ctx, app.Query{Tags: []string{"@work"}})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(tagged) != 1 || tagged[0].Title != "Standup @work" {
		t.Fatalf("unexpected filtered entries %+v", tagged)
	}
}

func TestServiceAddEntryRequiresText(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.AddEntry(context.Background(), AddEntryOptions{Text: "  "}); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestServiceSearchEntries(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	for _, text := range []string{"Coffee at the market", "Tea time", "More coffee"} {
		if _, err := svc.AddEntry(ctx, AddEntryOptions{Text: text}); err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}
	}

	hits, err := svc.SearchEntries(ctx, "COFFEE", 1)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Title != "More coffee" {
		t.Fatalf("unexpected hits %+v", hits)
	}
	if _, err := svc.SearchEntries(ctx, "", 5); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestServiceTagCountsAndSummary(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	summary, err := svc.TagCounts(ctx, app.Query{})
	if err != nil {
		t.Fatalf("TagCounts failed: %v", err)
	}
	if len(summary.Tags) != 0 || summary.Notice != "[No tags found in journal.]" {
		t.Fatalf("unexpected empty summary %+v", summary)
	}

	for _, text := range []string{"a @x", "b @x @y"} {
		if _, err := svc.AddEntry(ctx, AddEntryOptions{Text: text}); err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}
	}
	summary, err = svc.TagCounts(ctx, app.Query{})
	if err != nil {
		t.Fatalf("TagCounts failed: %v", err)
	}
	if len(summary.Tags) != 1 || summary.Tags[0] != (TagCount{Tag: "@x", Count: 2}) {
		t.Fatalf("unexpected tag summary %+v", summary)
	}

	js, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if js.Name != "default" || js.EntryCount != 2 || js.LastTitle != "b @x @y" {
		t.Fatalf("unexpected journal summary %+v", js)
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer("jrnl", "test", newTestService(t))
	if srv == nil {
		t.Fatal("expected server")
	}
}
