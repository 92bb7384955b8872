// Package printers renders journal entries and reports for the terminal.
package printers

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/jrnl/pkg/entry"
	"tableflip.dev/jrnl/pkg/tags"
)

const bodyIndent = "| "

type PrettyPrint struct {
	// Out defaults to os.Stdout.
	Out        io.Writer
	TimeFormat string
	// LineWrap is the wrap column for bodies and the short form width, 0 to
	// disable.
	LineWrap int
	// Highlight colors tags and headers.
	Highlight bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return os.Stdout
	}
	return pp.Out
}

func (pp *PrettyPrint) layout() string {
	if pp.TimeFormat == "" {
		return "2006-01-02 15:04"
	}
	return pp.TimeFormat
}

func (pp *PrettyPrint) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if pp.Highlight {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Entries prints each entry in full, separated by blank lines.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	w := pp.out()
	for i, e := range entries {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		pp.entry(w, e)
	}
}

func (pp *PrettyPrint) entry(w io.Writer, e *entry.Entry) {
	date := pp.color(color.Faint)
	title := pp.color(color.Bold)
	star := pp.color(color.FgHiYellow)

	_, _ = date.Fprint(w, e.Date.Format(pp.layout()))
	_, _ = fmt.Fprint(w, " ")
	_, _ = title.Fprint(w, pp.highlightTags(e.Title, e.TagSymbols()))
	if e.Starred {
		_, _ = star.Fprint(w, " *")
	}
	_, _ = fmt.Fprintln(w)

	if e.Body == "" {
		return
	}
	for _, line := range strings.Split(e.Body, "\n") {
		if pp.LineWrap > len(bodyIndent) {
			line = wordwrap.String(line, pp.LineWrap-len(bodyIndent))
		}
		for _, l := range strings.Split(line, "\n") {
			_, _ = fmt.Fprintf(w, "%s%s\n", bodyIndent, pp.highlightTags(strings.TrimRight(l, " "), e.TagSymbols()))
		}
	}
}

// Short prints one line per entry.
func (pp *PrettyPrint) Short(entries ...*entry.Entry) {
	w := pp.out()
	star := pp.color(color.FgHiYellow)
	for _, e := range entries {
		width := pp.LineWrap
		if e.Starred && width > 2 {
			width -= 2
		}
		_, _ = fmt.Fprint(w, pp.highlightTags(e.Short(pp.layout(), width), e.TagSymbols()))
		if e.Starred {
			_, _ = star.Fprint(w, " *")
		}
		_, _ = fmt.Fprintln(w)
	}
}

// Tags prints the tag report as a table followed by its notice.
func (pp *PrettyPrint) Tags(r tags.Report) {
	w := pp.out()
	notice := pp.color(color.Faint, color.Italic)

	if len(r.Counts) > 0 {
		tbl := uitable.New()
		tbl.Separator = " : "
		for _, c := range r.Counts {
			tbl.AddRow(pp.color(color.FgCyan).Sprint(c.Tag), c.Count)
		}
		_, _ = fmt.Fprintln(w, tbl.String())
	}
	if n := r.Notice(); n != "" {
		_, _ = notice.Fprintln(w, n)
	}
}

// Notice prints a bracketed status line such as "[Entry added]".
func (pp *PrettyPrint) Notice(msg string) {
	_, _ = pp.color(color.Faint).Fprintln(pp.out(), msg)
}

// highlightTags colors every tag in s when highlighting is on.
func (pp *PrettyPrint) highlightTags(s, symbols string) string {
	if !pp.Highlight || s == "" || symbols == "" {
		return s
	}
	re := tagPattern(symbols)
	c := pp.color(color.FgCyan)
	return re.ReplaceAllStringFunc(s, func(m string) string {
		if len(m) <= 1 {
			return m
		}
		return c.Sprint(m)
	})
}

func tagPattern(symbols string) *regexp.Regexp {
	return regexp.MustCompile(`[` + regexp.QuoteMeta(symbols) + `][^\s.,;:!?)"']+`)
}
