package store

import (
	"bytes"
	"strings"
	"time"

	"tableflip.dev/jrnl/pkg/entry"
)

// starMark ends the header line of a starred entry.
const starMark = " *"

// ParseOptions control Parse.
type ParseOptions struct {
	TimeFormat string
	TagSymbols string
	Location   *time.Location
	// Now dates leading text in a journal that has no header at all.
	Now func() time.Time
}

type lineKind int

const (
	lineBody lineKind = iota
	lineHeader
)

type header struct {
	date    time.Time
	title   string
	starred bool
}

// classifier recognises header lines: a date in the configured layout at the
// start of the line, followed by the end of line or a space. Every other line
// is body. Layouts without zero padding ("Jan 2 2006 3:04PM") format to
// different widths, so every width between minWidth and maxWidth is tried,
// longest first.
type classifier struct {
	layout   string
	minWidth int
	maxWidth int
	loc      *time.Location
}

func newClassifier(layout string, loc *time.Location) classifier {
	if layout == "" {
		layout = DefaultTimeFormat
	}
	if loc == nil {
		loc = time.Local
	}
	c := classifier{layout: layout, loc: loc}
	for m := time.January; m <= time.December; m++ {
		for _, d := range []int{1, 3, 28} {
			for _, h := range []int{1, 12, 23} {
				w := len(time.Date(2006, m, d, h, h%60, h%60, 0, time.UTC).Format(layout))
				if c.minWidth == 0 || w < c.minWidth {
					c.minWidth = w
				}
				if w > c.maxWidth {
					c.maxWidth = w
				}
			}
		}
	}
	return c
}

func (c classifier) classify(line string) (lineKind, header) {
	for w := c.maxWidth; w >= c.minWidth; w-- {
		if len(line) < w || (len(line) > w && line[w] != ' ') {
			continue
		}
		t, err := time.ParseInLocation(c.layout, line[:w], c.loc)
		if err != nil {
			continue
		}
		h := header{date: t}
		h.title, h.starred = unescapeTitle(strings.TrimSpace(line[w:]))
		return lineHeader, h
	}
	return lineBody, header{}
}

// looksLikeHeader reports whether line, ignoring any leading escapes, would
// be read as a header.
func (c classifier) looksLikeHeader(line string) bool {
	kind, _ := c.classify(strings.TrimLeft(line, escape))
	return kind == lineHeader
}

// escape marks body lines that would otherwise read as headers, and a
// literal star at the end of a title.
const escape = `\`

func (c classifier) escapeBody(line string) string {
	if c.looksLikeHeader(line) {
		return escape + line
	}
	return line
}

func (c classifier) unescapeBody(line string) string {
	if strings.HasPrefix(line, escape) && c.looksLikeHeader(line) {
		return line[len(escape):]
	}
	return line
}

// trailingStar reports whether title ends in a star that stands alone as a
// word once any escapes in front of it are ignored, and how many escapes
// there are.
func trailingStar(title string) (int, bool) {
	if !strings.HasSuffix(title, "*") {
		return 0, false
	}
	i := len(title) - 1
	n := 0
	for i-n > 0 && title[i-n-1] == escape[0] {
		n++
	}
	j := i - n
	return n, j == 0 || title[j-1] == ' '
}

func escapeTitle(title string, starred bool) string {
	if !starred {
		if _, ok := trailingStar(title); ok {
			title = title[:len(title)-1] + escape + "*"
		}
	}
	switch {
	case !starred:
		return title
	case title == "":
		return "*"
	}
	return title + starMark
}

func unescapeTitle(title string) (string, bool) {
	n, ok := trailingStar(title)
	switch {
	case !ok:
		return title, false
	case n > 0:
		return title[:len(title)-2] + "*", false
	case title == "*":
		return "", true
	}
	return strings.TrimSpace(strings.TrimSuffix(title, starMark)), true
}

// Parse reads a flat journal. It never fails: any line that is not a header
// continues the body of the entry before it. Text ahead of the first header
// becomes its own entry dated like the first entry so nothing is dropped.
func Parse(data []byte, o ParseOptions) []*entry.Entry {
	c := newClassifier(o.TimeFormat, o.Location)
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	var (
		entries  []*entry.Entry
		preamble []string
		cur      *header
		body     []string
	)
	flush := func() {
		if cur == nil {
			return
		}
		e := entry.New(cur.date, cur.title, strings.Trim(strings.Join(body, "\n"), "\n"), o.TagSymbols)
		e.Starred = cur.starred
		entries = append(entries, e)
		cur, body = nil, nil
	}

	for _, line := range strings.Split(text, "\n") {
		kind, h := c.classify(line)
		switch {
		case kind == lineHeader:
			flush()
			cur = &h
		case cur == nil:
			preamble = append(preamble, line)
		default:
			body = append(body, c.unescapeBody(line))
		}
	}
	flush()

	if lead := strings.TrimSpace(strings.Join(preamble, "\n")); lead != "" {
		var date time.Time
		switch {
		case len(entries) > 0:
			date = entries[0].Date
		case o.Now != nil:
			date = o.Now()
		default:
			date = time.Now()
		}
		title, rest := entry.Split(lead)
		entries = append([]*entry.Entry{entry.New(date, title, rest, o.TagSymbols)}, entries...)
	}

	sortEntries(entries)
	return entries
}

// Serialize renders entries in date order, separated by blank lines.
func Serialize(entries []*entry.Entry, layout string) []byte {
	if layout == "" {
		layout = DefaultTimeFormat
	}
	sorted := make([]*entry.Entry, len(entries))
	copy(sorted, entries)
	sortEntries(sorted)

	c := newClassifier(layout, time.UTC)
	var buf bytes.Buffer
	for i, e := range sorted {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(e.Date.Format(layout))
		if title := escapeTitle(e.Title, e.Starred); title != "" {
			buf.WriteByte(' ')
			buf.WriteString(title)
		}
		buf.WriteByte('\n')
		if e.Body != "" {
			for _, line := range strings.Split(e.Body, "\n") {
				buf.WriteString(c.escapeBody(line))
				buf.WriteByte('\n')
			}
		}
	}
	return buf.Bytes()
}
