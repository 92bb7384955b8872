package timeutil

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrWindow is wrapped by every window parse failure.
var ErrWindow = errors.New("invalid window")

const day = 24 * time.Hour

type unit struct {
	label   string
	size    time.Duration
	aliases []string
}

// units is ordered largest first; FormatWindow relies on it. Months and years
// are fixed lengths, a window is a span and not a calendar offset.
var units = []unit{
	{"y", 365 * day, []string{"yr", "yrs", "year", "years"}},
	{"mo", 30 * day, []string{"mon", "month", "months"}},
	{"w", 7 * day, []string{"wk", "wks", "week", "weeks"}},
	{"d", day, []string{"day", "days"}},
	{"h", time.Hour, []string{"hr", "hrs", "hour", "hours"}},
	{"m", time.Minute, []string{"min", "mins", "minute", "minutes"}},
	{"s", time.Second, []string{"sec", "secs", "second", "seconds"}},
}

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)\s*`)
	unitByName     = func() map[string]time.Duration {
		m := make(map[string]time.Duration)
		for _, u := range units {
			m[u.label] = u.size
			for _, a := range u.aliases {
				m[a] = u.size
			}
		}
		return m
	}()
)

// ParseWindow reads a span such as "3d", "2 weeks" or "1w2d6h" and returns it
// with its compact form.
func ParseWindow(input string) (time.Duration, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, "", fmt.Errorf("%w: empty", ErrWindow)
	}

	var total time.Duration
	for remaining != "" {
		m := segmentPattern.FindStringSubmatch(remaining)
		if m == nil {
			return 0, "", fmt.Errorf("%w: bad segment %q", ErrWindow, remaining)
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("%w: %v", ErrWindow, err)
		}
		size, ok := unitByName[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("%w: unknown unit %q", ErrWindow, m[2])
		}
		if n > math.MaxInt64/int64(size) {
			return 0, "", fmt.Errorf("%w: %s%s is too long", ErrWindow, m[1], m[2])
		}
		span := time.Duration(n) * size
		if total > math.MaxInt64-span {
			return 0, "", fmt.Errorf("%w: too long", ErrWindow)
		}
		total += span
		remaining = remaining[len(m[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("%w: must be greater than zero", ErrWindow)
	}
	return total, FormatWindow(total), nil
}

// FormatWindow is the compact form of d, largest units first.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range units {
		if d < u.size {
			continue
		}
		n := d / u.size
		d -= n * u.size
		fmt.Fprintf(&b, "%d%s", n, u.label)
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}
