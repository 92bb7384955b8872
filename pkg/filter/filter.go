// Package filter narrows a journal's entries for display and export.
package filter

import (
	"time"

	"tableflip.dev/jrnl/pkg/entry"
)

// Options are the active predicates. The zero value keeps everything.
type Options struct {
	// Start and End are inclusive; nil leaves that side open.
	Start *time.Time
	End   *time.Time
	// Tags must all match when Strict, otherwise any one of them.
	Tags   []string
	Strict bool
	// Limit keeps the last n matching entries; n <= 0 keeps all.
	Limit int
	// Short is a rendering hint passed through to printers.
	Short bool
}

// Active reports whether any predicate narrows the entries.
func (o Options) Active() bool {
	return o.Start != nil || o.End != nil || len(o.Tags) > 0 || o.Limit > 0
}

// Apply returns the entries that satisfy o, in their original order. The
// input slice is not modified.
func Apply(entries []*entry.Entry, o Options) []*entry.Entry {
	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e == nil || !inRange(e.Date, o.Start, o.End) || !matchTags(e, o.Tags, o.Strict) {
			continue
		}
		out = append(out, e)
	}
	return Limit(out, o.Limit)
}

// Limit keeps the last n entries; n <= 0 keeps all.
func Limit(entries []*entry.Entry, n int) []*entry.Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}

func inRange(t time.Time, start, end *time.Time) bool {
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}

func matchTags(e *entry.Entry, want []string, strict bool) bool {
	if len(want) == 0 {
		return true
	}
	have := make(map[string]struct{})
	for _, t := range e.Tags() {
		have[t] = struct{}{}
	}
	for _, t := range want {
		_, ok := have[t]
		if strict && !ok {
			return false
		}
		if !strict && ok {
			return true
		}
	}
	return strict
}
