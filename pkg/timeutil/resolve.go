package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrDateParse is wrapped by every DateParseError.
var ErrDateParse = errors.New("unrecognized date")

// DateParseError reports a date expression the resolver could not read.
type DateParseError struct {
	Input string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDateParse, e.Input)
}

func (e *DateParseError) Unwrap() error {
	return ErrDateParse
}

// Bound selects how a date without a time of day is completed.
type Bound int

const (
	// BoundStart completes a bare date to midnight.
	BoundStart Bound = iota
	// BoundEnd completes a bare date to 23:59:59.
	BoundEnd
)

var (
	absoluteLayouts = []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04",
	}
	dateLayouts = []string{
		"2006-01-02",
		"2006/01/02",
		"January 2, 2006",
		"January 2 2006",
		"Jan 2, 2006",
		"Jan 2 2006",
	}

	clockPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
	agoPattern   = regexp.MustCompile(`^(.+)\s+ago$`)

	weekdays = map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
)

// Resolver turns free-form date expressions into absolute instants.
type Resolver struct {
	// Now defaults to time.Now.
	Now func() time.Time
	// DefaultHour and DefaultMinute complete composed entries that name a day
	// but no time.
	DefaultHour   int
	DefaultMinute int

	fuzzy *when.Parser
}

// NewResolver returns a Resolver using the given default time of day.
func NewResolver(hour, minute int) *Resolver {
	return &Resolver{DefaultHour: hour, DefaultMinute: minute}
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Resolve parses expr for composing. A bare day is completed with the
// default time of day.
func (r *Resolver) Resolve(expr string) (time.Time, error) {
	t, hasClock, err := r.parse(expr)
	if err != nil {
		return time.Time{}, err
	}
	if !hasClock {
		t = atClock(t, r.DefaultHour, r.DefaultMinute, 0)
	}
	return t, nil
}

// ResolveBound parses expr as one end of a range. A bare day covers the whole
// day: midnight for a start bound, 23:59:59 for an end bound.
func (r *Resolver) ResolveBound(expr string, b Bound) (time.Time, error) {
	t, hasClock, err := r.parse(expr)
	if err != nil {
		return time.Time{}, err
	}
	if hasClock {
		return t, nil
	}
	if b == BoundEnd {
		return atClock(t, 23, 59, 59), nil
	}
	return atClock(t, 0, 0, 0), nil
}

func (r *Resolver) parse(expr string) (time.Time, bool, error) {
	input := strings.ToLower(strings.Join(strings.Fields(expr), " "))
	if input == "" {
		return time.Time{}, false, &DateParseError{Input: expr}
	}
	now := r.now()

	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(expr), now.Location()); err == nil {
			return t, true, nil
		}
	}

	day, clock := splitClock(input)
	if day == "" && clock != "" {
		day = "today"
	}

	t, ok := r.parseDay(day, now)
	if ok {
		if clock == "" {
			return t, day == "now" || isAgo(day), nil
		}
		h, m, ok := parseClock(clock)
		if !ok {
			return time.Time{}, false, &DateParseError{Input: expr}
		}
		return atClock(t, h, m, 0), true, nil
	}

	return r.parseFuzzy(input, expr, now)
}

func (r *Resolver) parseDay(day string, now time.Time) (time.Time, bool) {
	switch day {
	case "now":
		return now, true
	case "today":
		return midnight(now), true
	case "yesterday":
		return midnight(now).AddDate(0, 0, -1), true
	case "tomorrow":
		return midnight(now).AddDate(0, 0, 1), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, day, now.Location()); err == nil {
			return t, true
		}
	}

	name := strings.TrimPrefix(day, "last ")
	if wd, ok := weekdays[name]; ok {
		back := int(now.Weekday() - wd)
		if back <= 0 {
			back += 7
		}
		return midnight(now).AddDate(0, 0, -back), true
	}

	if m := agoPattern.FindStringSubmatch(day); m != nil {
		d, _, err := ParseWindow(m[1])
		if err == nil {
			return now.Add(-d), true
		}
	}

	return time.Time{}, false
}

func (r *Resolver) parseFuzzy(input, original string, now time.Time) (time.Time, bool, error) {
	if r.fuzzy == nil {
		r.fuzzy = when.New(nil)
		r.fuzzy.Add(en.All...)
		r.fuzzy.Add(common.All...)
	}
	res, err := r.fuzzy.Parse(input, now)
	if err != nil || res == nil || strings.TrimSpace(res.Text) != input {
		return time.Time{}, false, &DateParseError{Input: original}
	}
	t := res.Time
	hasClock := t.Hour() != now.Hour() || t.Minute() != now.Minute() || t.Second() != now.Second()
	return t, hasClock, nil
}

// splitClock separates a trailing time of day ("at 5pm", "17:30", "noon")
// from the day expression.
func splitClock(input string) (string, string) {
	if i := strings.LastIndex(input, " at "); i >= 0 {
		return strings.TrimSpace(input[:i]), strings.TrimSpace(input[i+4:])
	}
	if strings.HasPrefix(input, "at ") {
		return "", strings.TrimSpace(input[3:])
	}
	fields := strings.Fields(input)
	last := fields[len(fields)-1]
	if _, _, ok := parseClock(last); ok && (strings.Contains(last, ":") || strings.HasSuffix(last, "m") || last == "noon" || last == "midnight") {
		return strings.Join(fields[:len(fields)-1], " "), last
	}
	if len(fields) >= 2 {
		pair := strings.Join(fields[len(fields)-2:], "")
		if _, _, ok := parseClock(pair); ok && strings.HasSuffix(pair, "m") {
			return strings.Join(fields[:len(fields)-2], " "), pair
		}
	}
	return input, ""
}

func parseClock(s string) (int, int, bool) {
	switch s {
	case "noon":
		return 12, 0, true
	case "midnight":
		return 0, 0, true
	}
	m := clockPattern.FindStringSubmatch(strings.ReplaceAll(s, " ", ""))
	if m == nil {
		return 0, 0, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	switch m[3] {
	case "am":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour != 12 {
			hour += 12
		}
	case "":
		// A bare number is only a clock with minutes, "5" alone is ambiguous.
		if m[2] == "" {
			return 0, 0, false
		}
	}
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func isAgo(day string) bool {
	return agoPattern.MatchString(day)
}

func midnight(t time.Time) time.Time {
	return atClock(t, 0, 0, 0)
}

func atClock(t time.Time, hour, minute, sec int) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, hour, minute, sec, 0, t.Location())
}
