// Package export writes journal entries as JSON or Markdown.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"tableflip.dev/jrnl/pkg/entry"
)

// Kind names an export format.
type Kind string

const (
	JSON     Kind = "json"
	Markdown Kind = "markdown"
)

// Kinds lists the supported formats.
var Kinds = []Kind{JSON, Markdown}

// ParseKind accepts a format name, "md" being short for markdown.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "markdown", "md":
		return Markdown, nil
	}
	return "", fmt.Errorf("export: unknown format %q, want one of %v", s, Kinds)
}

// Options control rendering.
type Options struct {
	// TimeFormat is used for Markdown entry headings.
	TimeFormat string
	// Render passes Markdown through a terminal renderer.
	Render bool
	// Width is the render wrap width.
	Width int
}

// Write renders entries in the given format to w.
func Write(w io.Writer, kind Kind, entries []*entry.Entry, o Options) error {
	var (
		data []byte
		err  error
	)
	switch kind {
	case JSON:
		data, err = ToJSON(entries)
	case Markdown:
		data = ToMarkdown(entries, o.TimeFormat)
		if o.Render {
			data, err = render(data, o.Width)
		}
	default:
		err = fmt.Errorf("export: unknown format %q", kind)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ToJSON is an indented array of entry objects.
func ToJSON(entries []*entry.Entry) ([]byte, error) {
	out := make([]entry.Export, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Export())
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: json: %w", err)
	}
	return append(data, '\n'), nil
}

// ToMarkdown groups entries under year and month headings. Entries are
// expected in date order.
func ToMarkdown(entries []*entry.Entry, layout string) []byte {
	if layout == "" {
		layout = "2006-01-02 15:04"
	}
	var buf bytes.Buffer
	year, month := -1, -1
	for _, e := range entries {
		if y := e.Date.Year(); y != year {
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			fmt.Fprintf(&buf, "# %d\n\n", y)
			year, month = y, -1
		}
		if m := int(e.Date.Month()); m != month {
			fmt.Fprintf(&buf, "## %s\n\n", e.Date.Month())
			month = m
		}
		title := e.Title
		if e.Starred {
			title += " ★"
		}
		fmt.Fprintf(&buf, "### %s %s\n\n", e.Date.Format(layout), title)
		if e.Body != "" {
			buf.WriteString(e.Body)
			buf.WriteString("\n\n")
		}
	}
	return buf.Bytes()
}

func render(md []byte, width int) ([]byte, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("export: renderer: %w", err)
	}
	out, err := r.RenderBytes(md)
	if err != nil {
		return nil, fmt.Errorf("export: render: %w", err)
	}
	return out, nil
}
