package patient

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/text/width"
)

var (
	keyPattern   = regexp.MustCompile(`\d+年\d+月\d+日\d+時`)
	digitPattern = regexp.MustCompile(`\d+`)
)

// KeyFromTitle cuts the YYYY年M月D日H時 report key out of an index title.
// Full-width digits are narrowed first.
func KeyFromTitle(title string) (string, error) {
	key := keyPattern.FindString(width.Narrow.String(title))
	if key == "" {
		return "", fmt.Errorf("no report timestamp in title %q", title)
	}
	return key, nil
}

// ParseTimestamp reads the year, month, day, hour (and optional minute)
// digit runs of a report key as a JST time.
func ParseTimestamp(key string) (time.Time, error) {
	runs := digitPattern.FindAllString(width.Narrow.String(key), -1)
	if len(runs) < 4 || len(runs) > 5 {
		return time.Time{}, fmt.Errorf("report key %q: want 4 or 5 numbers, found %d", key, len(runs))
	}

	n := make([]int, 5)
	for i, r := range runs {
		v, err := strconv.Atoi(r)
		if err != nil {
			return time.Time{}, fmt.Errorf("report key %q: %w", key, err)
		}
		n[i] = v
	}

	if n[1] < 1 || n[1] > 12 || n[2] < 1 || n[2] > 31 || n[3] > 23 || n[4] > 59 {
		return time.Time{}, fmt.Errorf("report key %q: out-of-range date or time", key)
	}
	ts := time.Date(n[0], time.Month(n[1]), n[2], n[3], n[4], 0, 0, JST)
	if ts.Day() != n[2] {
		return time.Time{}, fmt.Errorf("report key %q: no such day", key)
	}
	return ts, nil
}
