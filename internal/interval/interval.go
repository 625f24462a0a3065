package interval

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Interval is an inclusive span of calendar days.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns every calendar day from Start to End inclusive.
func (iv Interval) Days() []time.Time {
	days := make([]time.Time, 0, iv.Len())
	for d := iv.Start; !d.After(iv.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Len returns the number of days in the interval.
func (iv Interval) Len() int {
	if iv.End.Before(iv.Start) {
		return 0
	}
	return int(iv.End.Sub(iv.Start).Hours()/24) + 1
}

func (iv Interval) String() string {
	return iv.Start.Format("2006-01-02") + ".." + iv.End.Format("2006-01-02")
}

// ParseError reports a label that could not be turned into an Interval.
type ParseError struct {
	Label  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing interval %q: %s", e.Label, e.Reason)
}

var digitRun = regexp.MustCompile(`\d+`)

// Cursor carries the year forward across consecutive week labels.
type Cursor struct {
	Year int
}

// NewCursor seeds a cursor with the year of the first label.
func NewCursor(year int) *Cursor {
	return &Cursor{Year: year}
}

// Parse reads the first four digit runs of label as start month, start day,
// end month and end day. A start of 1/1 advances the year before the start
// date; a December start with a January end advances it before the end date.
// The cursor keeps the advanced year for the next label.
func (c *Cursor) Parse(label string) (Interval, error) {
	nums, err := digitRuns(label, 4)
	if err != nil {
		return Interval{}, err
	}
	m1, d1, m2, d2 := nums[0], nums[1], nums[2], nums[3]

	year := c.Year
	if m1 == 1 && d1 == 1 {
		year++
	}
	start, err := date(label, year, m1, d1)
	if err != nil {
		return Interval{}, err
	}
	if m1 == 12 && m2 == 1 {
		year++
	}
	end, err := date(label, year, m2, d2)
	if err != nil {
		return Interval{}, err
	}
	if end.Before(start) {
		return Interval{}, &ParseError{Label: label, Reason: fmt.Sprintf("end %s before start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))}
	}

	c.Year = year
	return Interval{Start: start, End: end}, nil
}

var datedLabel = regexp.MustCompile(`(\d+)年\d+月第\d+週\s*[(（](\d+)/(\d+)[～~〜](\d+)/(\d+)[)）]`)

// ParseDatedLabel reads labels such as "2020年12月第4週\n(12/21～12/27)", where the
// leading year applies to the start date and the end date rolls into the next
// year when a December week finishes in January.
func ParseDatedLabel(label string) (Interval, error) {
	m := datedLabel.FindStringSubmatch(label)
	if m == nil {
		return Interval{}, &ParseError{Label: label, Reason: "expected YYYY年M月第N週(M/D～M/D)"}
	}
	nums := make([]int, 5)
	for i := range nums {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Interval{}, &ParseError{Label: label, Reason: err.Error()}
		}
		nums[i] = n
	}
	y, m1, d1, m2, d2 := nums[0], nums[1], nums[2], nums[3], nums[4]

	start, err := date(label, y, m1, d1)
	if err != nil {
		return Interval{}, err
	}
	endYear := y
	if m1 == 12 && m2 == 1 {
		endYear++
	}
	end, err := date(label, endYear, m2, d2)
	if err != nil {
		return Interval{}, err
	}
	if end.Before(start) {
		return Interval{}, &ParseError{Label: label, Reason: "end before start"}
	}
	return Interval{Start: start, End: end}, nil
}

func digitRuns(label string, want int) ([]int, error) {
	runs := digitRun.FindAllString(label, -1)
	if len(runs) < want {
		return nil, &ParseError{Label: label, Reason: fmt.Sprintf("found %d numeric groups, need %d", len(runs), want)}
	}
	nums := make([]int, want)
	for i := 0; i < want; i++ {
		n, err := strconv.Atoi(runs[i])
		if err != nil {
			return nil, &ParseError{Label: label, Reason: err.Error()}
		}
		nums[i] = n
	}
	return nums, nil
}

// date builds a UTC midnight date, rejecting values time.Date would normalise.
func date(label string, year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, &ParseError{Label: label, Reason: fmt.Sprintf("month %d out of range", month)}
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if day < 1 || t.Day() != day {
		return time.Time{}, &ParseError{Label: label, Reason: fmt.Sprintf("day %d out of range for %d-%02d", day, year, month)}
	}
	return t, nil
}
