// Package tags extracts tags from entry text and aggregates tag counts.
package tags

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultSymbols is the tag prefix set used when none is configured.
const DefaultSymbols = "@"

const trailingPunct = ".,;:!?)\"'"

// Extract returns the distinct tags in text, in order of first appearance.
// A tag is a whitespace separated token starting with one of symbols and
// carrying at least one more character. Matching is case-sensitive.
func Extract(text, symbols string) []string {
	if symbols == "" {
		symbols = DefaultSymbols
	}
	var out []string
	seen := make(map[string]struct{})
	for _, tok := range strings.Fields(text) {
		tok = strings.TrimRight(tok, trailingPunct)
		first, size := utf8.DecodeRuneInString(tok)
		if size == len(tok) || !strings.ContainsRune(symbols, first) {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// Count is the number of entries carrying Tag.
type Count struct {
	Tag   string
	Count int
}

// Report is the aggregate tag count across a journal.
type Report struct {
	Counts []Count
	// Empty is set when no entry carries a tag.
	Empty bool
	// Suppressed is set when tags seen on a single entry were dropped.
	Suppressed bool
}

// NewReport counts, for every tag, the number of entries whose tag set
// contains it. Tags used by a single entry are dropped when at least one
// other tag is used more than once.
func NewReport(perEntry [][]string) Report {
	counts := make(map[string]int)
	for _, list := range perEntry {
		distinct := make(map[string]struct{}, len(list))
		for _, tag := range list {
			distinct[tag] = struct{}{}
		}
		for tag := range distinct {
			counts[tag]++
		}
	}
	if len(counts) == 0 {
		return Report{Empty: true}
	}

	lo, hi := -1, 0
	for _, n := range counts {
		if lo < 0 || n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}

	r := Report{}
	if lo == 1 && hi > 1 {
		r.Suppressed = true
	}
	for tag, n := range counts {
		if r.Suppressed && n == 1 {
			continue
		}
		r.Counts = append(r.Counts, Count{Tag: tag, Count: n})
	}
	sort.Slice(r.Counts, func(i, j int) bool {
		if r.Counts[i].Count != r.Counts[j].Count {
			return r.Counts[i].Count < r.Counts[j].Count
		}
		return r.Counts[i].Tag < r.Counts[j].Tag
	})
	return r
}

// Map returns the report as tag -> count.
func (r Report) Map() map[string]int {
	m := make(map[string]int, len(r.Counts))
	for _, c := range r.Counts {
		m[c.Tag] = c.Count
	}
	return m
}

// Notice is the message printed alongside the report, if any.
func (r Report) Notice() string {
	switch {
	case r.Empty:
		return "[No tags found in journal.]"
	case r.Suppressed:
		return "[Removed tags that appear only once.]"
	}
	return ""
}
