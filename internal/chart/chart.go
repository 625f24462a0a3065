package chart

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pfrederiksen/jp-covid-stats/internal/table"
)

// DefaultMaxPoints is the widest x-axis Mermaid lays out legibly.
const DefaultMaxPoints = 60

// Config controls one rendered chart.
type Config struct {
	Title  string
	XLabel string
	YLabel string
	// LogY plots log10 of each value; non-positive values become gaps.
	LogY   bool
	Width  int
	Height int
	// MaxPoints subsamples the x-axis; 0 means DefaultMaxPoints.
	MaxPoints int
}

// Line is one named series. NaN marks a missing point.
type Line struct {
	Name   string
	Values []float64
}

// Chart is a set of lines sharing an x-axis.
type Chart struct {
	Config Config
	Labels []string
	Lines  []Line
}

// FromPivot makes one line per pivot metric, labelled by date.
func FromPivot(p *table.Pivot, cfg Config) *Chart {
	labels := make([]string, len(p.Dates))
	for i, d := range p.Dates {
		labels[i] = d.Format("2006-01-02")
	}
	lines := make([]Line, len(p.Metrics))
	for i, m := range p.Metrics {
		lines[i] = Line{Name: m, Values: p.Values[i]}
	}
	return &Chart{Config: cfg, Labels: labels, Lines: lines}
}

// FromDayOfYear overlays one line per year on a day-of-year axis.
func FromDayOfYear(byYear map[int][]float64, cfg Config) *Chart {
	years := make([]int, 0, len(byYear))
	days := 0
	for y, v := range byYear {
		years = append(years, y)
		if len(v) > days {
			days = len(v)
		}
	}
	sort.Ints(years)

	labels := make([]string, days)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	lines := make([]Line, len(years))
	for i, y := range years {
		lines[i] = Line{Name: strconv.Itoa(y), Values: byYear[y]}
	}
	return &Chart{Config: cfg, Labels: labels, Lines: lines}
}

// Empty reports whether no line has a single plottable point.
func (c *Chart) Empty() bool {
	for _, l := range c.Lines {
		for _, v := range l.Values {
			if c.plottable(v) {
				return false
			}
		}
	}
	return true
}

func (c *Chart) plottable(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return !c.Config.LogY || v > 0
}

func (c *Chart) transform(v float64) float64 {
	if c.Config.LogY {
		return math.Log10(v)
	}
	return v
}

// sampled returns the indices kept on the x-axis. The last point is always kept.
func (c *Chart) sampled() []int {
	max := c.Config.MaxPoints
	if max <= 0 {
		max = DefaultMaxPoints
	}
	step := 1
	if len(c.Labels) > max {
		step = int(math.Ceil(float64(len(c.Labels)) / float64(max)))
	}
	idx := make([]int, 0, len(c.Labels)/step+1)
	for i := range c.Labels {
		if i%step == 0 || i == len(c.Labels)-1 {
			idx = append(idx, i)
		}
	}
	return idx
}

// bounds returns the y-axis range over plottable, transformed values.
func (c *Chart) bounds() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, l := range c.Lines {
		for _, v := range l.Values {
			if !c.plottable(v) {
				continue
			}
			t := c.transform(v)
			lo = math.Min(lo, t)
			hi = math.Max(hi, t)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if !c.Config.LogY && lo > 0 {
		lo = 0
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi + (hi-lo)*0.1
}

// Mermaid renders the chart as a xychart-beta block without code fences.
// Mermaid lines cannot break, so a gap repeats the previous point and a
// leading gap sits at the bottom of the axis.
func (c *Chart) Mermaid() string {
	lo, hi := c.bounds()
	idx := c.sampled()

	var sb strings.Builder
	if c.Config.Width > 0 || c.Config.Height > 0 {
		sb.WriteString("---\nconfig:\n  xyChart:\n")
		if c.Config.Width > 0 {
			sb.WriteString(fmt.Sprintf("    width: %d\n", c.Config.Width))
		}
		if c.Config.Height > 0 {
			sb.WriteString(fmt.Sprintf("    height: %d\n", c.Config.Height))
		}
		sb.WriteString("---\n")
	}
	sb.WriteString("xychart-beta\n")
	if c.Config.Title != "" {
		sb.WriteString(fmt.Sprintf("    title %s\n", quote(c.Config.Title)))
	}

	labels := make([]string, len(idx))
	for i, j := range idx {
		labels[i] = quote(c.Labels[j])
	}
	xAxis := "    x-axis "
	if c.Config.XLabel != "" {
		xAxis += quote(c.Config.XLabel) + " "
	}
	sb.WriteString(xAxis + "[" + strings.Join(labels, ", ") + "]\n")

	yLabel := c.Config.YLabel
	if c.Config.LogY {
		yLabel = strings.TrimSpace(yLabel + " (log10)")
	}
	yAxis := "    y-axis "
	if yLabel != "" {
		yAxis += quote(yLabel) + " "
	}
	sb.WriteString(fmt.Sprintf("%s%s --> %s\n", yAxis, number(lo), number(hi)))

	for _, l := range c.Lines {
		sb.WriteString(fmt.Sprintf("    %%%% %s\n", l.Name))
		points := make([]string, len(idx))
		last := lo
		for i, j := range idx {
			if j < len(l.Values) && c.plottable(l.Values[j]) {
				last = c.transform(l.Values[j])
			}
			points[i] = number(last)
		}
		sb.WriteString("    line [" + strings.Join(points, ", ") + "]\n")
	}
	return sb.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `'`) + `"`
}

func number(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
