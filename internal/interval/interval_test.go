package interval

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCursorParse(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		label     string
		wantStart time.Time
		wantEnd   time.Time
		wantYear  int
	}{
		{
			name:      "plain week",
			year:      2020,
			label:     "3/30～4/5",
			wantStart: day(2020, 3, 30),
			wantEnd:   day(2020, 4, 5),
			wantYear:  2020,
		},
		{
			name:      "december to january rollover",
			year:      2020,
			label:     "12/28～1/3",
			wantStart: day(2020, 12, 28),
			wantEnd:   day(2021, 1, 3),
			wantYear:  2021,
		},
		{
			name:      "week starting on new year's day",
			year:      2019,
			label:     "1/1～1/7",
			wantStart: day(2020, 1, 1),
			wantEnd:   day(2020, 1, 7),
			wantYear:  2020,
		},
		{
			name:      "extra digit runs ignored",
			year:      2020,
			label:     "4/6～4/12\n（第15週）",
			wantStart: day(2020, 4, 6),
			wantEnd:   day(2020, 4, 12),
			wantYear:  2020,
		},
		{
			name:      "full-width separators",
			year:      2020,
			label:     "令和 5月4日～5月10日",
			wantStart: day(2020, 5, 4),
			wantEnd:   day(2020, 5, 10),
			wantYear:  2020,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.year)
			iv, err := c.Parse(tt.label)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.label, err)
			}
			if !iv.Start.Equal(tt.wantStart) || !iv.End.Equal(tt.wantEnd) {
				t.Errorf("Parse(%q) = %s, want %s..%s", tt.label, iv, tt.wantStart.Format("2006-01-02"), tt.wantEnd.Format("2006-01-02"))
			}
			if c.Year != tt.wantYear {
				t.Errorf("cursor year = %d, want %d", c.Year, tt.wantYear)
			}
		})
	}
}

func TestCursorParse_Sequence(t *testing.T) {
	labels := []string{"12/21～12/27", "12/28～1/3", "1/4～1/10"}
	want := []Interval{
		{day(2020, 12, 21), day(2020, 12, 27)},
		{day(2020, 12, 28), day(2021, 1, 3)},
		{day(2021, 1, 4), day(2021, 1, 10)},
	}

	c := NewCursor(2020)
	for i, label := range labels {
		iv, err := c.Parse(label)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", label, err)
		}
		if iv != want[i] {
			t.Errorf("Parse(%q) = %s, want %s", label, iv, want[i])
		}
	}
}

func TestCursorParse_NewYearAfterDecemberWeek(t *testing.T) {
	c := NewCursor(2019)
	if _, err := c.Parse("12/25～12/31"); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	iv, err := c.Parse("1/1～1/7")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if iv.Start.Year() != 2020 {
		t.Errorf("start year = %d, want 2020", iv.Start.Year())
	}
}

func TestCursorParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		label string
	}{
		{"too few groups", "12/28～"},
		{"no digits", "累計"},
		{"month out of range", "13/1～13/7"},
		{"day out of range", "2/30～3/6"},
		{"zero day", "4/0～4/6"},
		{"end before start", "4/12～4/6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(2020)
			_, err := c.Parse(tt.label)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error = %v, want *ParseError", tt.label, err)
			}
			if pe.Label != tt.label {
				t.Errorf("ParseError.Label = %q, want %q", pe.Label, tt.label)
			}
			if c.Year != 2020 {
				t.Errorf("cursor advanced to %d on failure", c.Year)
			}
		})
	}
}

func TestParseDatedLabel(t *testing.T) {
	tests := []struct {
		label   string
		want    Interval
		wantErr bool
	}{
		{
			label: "2020年12月第4週\n(12/21～12/27)",
			want:  Interval{day(2020, 12, 21), day(2020, 12, 27)},
		},
		{
			label: "2020年12月第5週\n（12/28～1/3）",
			want:  Interval{day(2020, 12, 28), day(2021, 1, 3)},
		},
		{
			label: "2021年1月第1週\n(1/4～1/10)",
			want:  Interval{day(2021, 1, 4), day(2021, 1, 10)},
		},
		{label: "累計", wantErr: true},
		{label: "2021年2月第1週\n(2/30～3/6)", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseDatedLabel(tt.label)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDatedLabel(%q) expected error, got %s", tt.label, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDatedLabel(%q) error: %v", tt.label, err)
			}
			if got != tt.want {
				t.Errorf("ParseDatedLabel(%q) = %s, want %s", tt.label, got, tt.want)
			}
		})
	}
}

func TestDays(t *testing.T) {
	iv := Interval{Start: day(2020, 1, 6), End: day(2020, 1, 12)}
	days := iv.Days()
	if len(days) != 7 || iv.Len() != 7 {
		t.Fatalf("Days() returned %d days (Len %d), want 7", len(days), iv.Len())
	}
	for i, d := range days {
		if !d.Equal(day(2020, 1, 6+i)) {
			t.Errorf("Days()[%d] = %s", i, d.Format("2006-01-02"))
		}
	}

	leap := Interval{Start: day(2020, 2, 27), End: day(2020, 3, 1)}
	if n := len(leap.Days()); n != 4 {
		t.Errorf("leap-year span has %d days, want 4", n)
	}

	if n := (Interval{Start: day(2020, 1, 2), End: day(2020, 1, 1)}).Len(); n != 0 {
		t.Errorf("inverted Len() = %d, want 0", n)
	}
}
