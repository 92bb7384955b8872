// Package entry holds the journal entry model.
package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"tableflip.dev/jrnl/pkg/tags"
	"tableflip.dev/jrnl/pkg/timeutil"
)

// ErrEmptyEntry is returned when there is no text to make an entry from.
var ErrEmptyEntry = errors.New("entry: empty text")

// Entry is a single journal record. Tags are derived from Title and Body on
// demand and never stored on their own.
type Entry struct {
	// ID is only set for stores that address entries individually (DayOne).
	ID      string
	Date    time.Time
	Title   string
	Body    string
	Starred bool

	symbols string
}

// New builds an entry from already split text.
func New(date time.Time, title, body, tagSymbols string) *Entry {
	return &Entry{
		Date:    date,
		Title:   strings.TrimSpace(title),
		Body:    strings.TrimRight(body, " \t\r\n"),
		symbols: tagSymbols,
	}
}

// CreateOptions controls Create.
type CreateOptions struct {
	// Date is a free-form date expression; empty means now.
	Date       string
	Resolver   *timeutil.Resolver
	Now        func() time.Time
	TagSymbols string
}

// Create makes an entry from raw composed text.
func Create(raw string, opts CreateOptions) (*Entry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyEntry
	}

	var date time.Time
	if strings.TrimSpace(opts.Date) == "" {
		if opts.Now != nil {
			date = opts.Now()
		} else {
			date = time.Now()
		}
		date = date.Truncate(time.Minute)
	} else {
		r := opts.Resolver
		if r == nil {
			r = &timeutil.Resolver{Now: opts.Now}
		}
		var err error
		if date, err = r.Resolve(opts.Date); err != nil {
			return nil, err
		}
	}

	title, body := Split(raw)
	return New(date, title, body, opts.TagSymbols), nil
}

// Split separates text into a title, up to the first line break, and a body.
func Split(text string) (string, string) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	title, body, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(title), strings.Trim(body, "\n")
}

// Text is the full entry text.
func (e *Entry) Text() string {
	if e.Body == "" {
		return e.Title
	}
	return e.Title + "\n" + e.Body
}

// SetText replaces title and body.
func (e *Entry) SetText(text string) {
	e.Title, e.Body = Split(text)
}

// TagSymbols returns the symbol set tags are extracted with.
func (e *Entry) TagSymbols() string {
	if e.symbols == "" {
		return tags.DefaultSymbols
	}
	return e.symbols
}

// SetTagSymbols changes the symbol set tags are extracted with.
func (e *Entry) SetTagSymbols(symbols string) {
	e.symbols = symbols
}

// Tags returns the distinct tags found in the entry text.
func (e *Entry) Tags() []string {
	return tags.Extract(e.Title+"\n"+e.Body, e.TagSymbols())
}

// HasTag reports whether tag is one of the entry's tags.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}

// Header is the date followed by the title.
func (e *Entry) Header(layout string) string {
	return fmt.Sprintf("%s %s", e.Date.Format(layout), e.Title)
}

// Short is the single line form, truncated to width runes when width > 0.
func (e *Entry) Short(layout string, width int) string {
	line := e.Header(layout)
	if width <= 0 || utf8.RuneCountInString(line) <= width {
		return line
	}
	runes := []rune(line)
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// Format is the full plain form: the header line followed by the body.
func (e *Entry) Format(layout string) string {
	if e.Body == "" {
		return e.Header(layout)
	}
	return e.Header(layout) + "\n" + e.Body
}

func (e *Entry) String() string {
	return e.Format("2006-01-02 15:04")
}
