package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/jrnl/pkg/entry"
)

const weekWidth = len("11 12 13 14 15 16 17")

// Calendar prints month grids from the first to the last entry, with days
// that have entries in bold.
func (pp *PrettyPrint) Calendar(entries ...*entry.Entry) {
	if len(entries) == 0 {
		return
	}
	counts := make(map[string]int)
	first, last := entries[0].Date, entries[0].Date
	for _, e := range entries {
		counts[e.Date.Format("2006-01-02")]++
		if e.Date.Before(first) {
			first = e.Date
		}
		if e.Date.After(last) {
			last = e.Date
		}
	}

	month := FirstOfMonth(first)
	for !month.After(last) {
		pp.Month(month, counts)
		month = month.AddDate(0, 1, 0)
	}
}

// Month prints one month grid; counts is keyed by YYYY-MM-DD.
func (pp *PrettyPrint) Month(then time.Time, counts map[string]int) {
	w := pp.out()
	title := pp.color(color.Italic)
	quiet := pp.color(color.Faint)
	busy := pp.color(color.Bold)

	then = FirstOfMonth(then)
	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (weekWidth - len(m)) / 2
	_, _ = title.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), m)
	_, _ = fmt.Fprintln(w, "Su Mo Tu We Th Fr Sa")

	d := then.Weekday()
	_, _ = fmt.Fprint(w, strings.Repeat("   ", int(d)))

	days := DaysIn(then)
	for i := 1; i <= days; i++ {
		key := time.Date(then.Year(), then.Month(), i, 0, 0, 0, 0, then.Location()).Format("2006-01-02")
		if counts[key] > 0 {
			_, _ = busy.Fprintf(w, "%2d", i)
		} else {
			_, _ = quiet.Fprintf(w, "%2d", i)
		}
		d++
		if d > time.Saturday || i == days {
			d = time.Sunday
			_, _ = fmt.Fprintln(w)
		} else {
			_, _ = fmt.Fprint(w, " ")
		}
	}
	_, _ = fmt.Fprintln(w)
}

func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, then.Location()).Day()
}
