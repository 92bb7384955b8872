// Package mcp provides the Model Context Protocol server integration for jrnl.
package mcp

import (
	"context"
	"errors"
	"strings"
	"sync"

	"tableflip.dev/jrnl/pkg/app"
	"tableflip.dev/jrnl/pkg/entry"
	"tableflip.dev/jrnl/pkg/tags"
)

// Journal is the part of app.Service the server needs.
type Journal interface {
	Entries(ctx context.Context, q app.Query) ([]*entry.Entry, error)
	Add(ctx context.Context, text, date string, starred bool) (*entry.Entry, error)
	TagReport(ctx context.Context, q app.Query) (tags.Report, error)
}

// Service serializes MCP requests against one journal. The journal is
// reloaded from disk on every request.
type Service struct {
	Name string

	mu      sync.Mutex
	journal Journal
}

// AddEntryOptions captures the parameters used to create a new entry.
type AddEntryOptions struct {
	Text    string
	Date    string
	Starred bool
}

// TagCount is one row of the tag report.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagSummary is the transport form of a tag report.
type TagSummary struct {
	Tags   []TagCount `json:"tags"`
	Notice string     `json:"notice,omitempty"`
}

// JournalSummary describes the journal as a whole.
type JournalSummary struct {
	Name       string `json:"name"`
	EntryCount int    `json:"entryCount"`
	First      string `json:"first,omitempty"`
	Last       string `json:"last,omitempty"`
	LastTitle  string `json:"lastTitle,omitempty"`
}

// NewService builds a service over j.
func NewService(name string, j Journal) *Service {
	return &Service{Name: name, journal: j}
}

// ListEntries returns the entries matching q.
func (s *Service) ListEntries(ctx context.Context, q app.Query) ([]entry.Export, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.journal.Entries(ctx, q)
	if err != nil {
		return nil, err
	}
	return toExports(entries), nil
}

// AddEntry composes a new entry and writes the journal.
func (s *Service) AddEntry(ctx context.Context, opts AddEntryOptions) (*entry.Export, error) {
	if strings.TrimSpace(opts.Text) == "" {
		return nil, errors.New("text is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.journal.Add(ctx, opts.Text, opts.Date, opts.Starred)
	if err != nil {
		return nil, err
	}
	out := e.Export()
	return &out, nil
}

// SearchEntries returns up to limit of the most recent entries whose text
// contains query, ignoring case.
func (s *Service) SearchEntries(ctx context.Context, query string, limit int) ([]entry.Export, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, errors.New("query is required")
	}
	if limit <= 0 {
		limit = 20
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.journal.Entries(ctx, app.Query{})
	if err != nil {
		return nil, err
	}
	var hits []*entry.Entry
	for i := len(entries) - 1; i >= 0 && len(hits) < limit; i-- {
		if strings.Contains(strings.ToLower(entries[i].Text()), query) {
			hits = append(hits, entries[i])
		}
	}
	return toExports(hits), nil
}

// TagCounts reports tag usage across the entries matching q.
func (s *Service) TagCounts(ctx context.Context, q app.Query) (TagSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.journal.TagReport(ctx, q)
	if err != nil {
		return TagSummary{}, err
	}
	out := TagSummary{Tags: make([]TagCount, 0, len(r.Counts)), Notice: r.Notice()}
	for _, c := range r.Counts {
		out.Tags = append(out.Tags, TagCount{Tag: c.Tag, Count: c.Count})
	}
	return out, nil
}

// Summary describes the journal.
func (s *Service) Summary(ctx context.Context) (JournalSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.journal.Entries(ctx, app.Query{})
	if err != nil {
		return JournalSummary{}, err
	}
	sum := JournalSummary{Name: s.Name, EntryCount: len(entries)}
	if len(entries) > 0 {
		first, last := entries[0], entries[len(entries)-1]
		sum.First = entry.Timestamp{Time: first.Date}.String()
		sum.Last = entry.Timestamp{Time: last.Date}.String()
		sum.LastTitle = last.Title
	}
	return sum, nil
}

func toExports(entries []*entry.Entry) []entry.Export {
	out := make([]entry.Export, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Export())
	}
	return out
}
