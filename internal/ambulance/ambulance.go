package ambulance

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pfrederiksen/jp-covid-stats/internal/interval"
	"github.com/pfrederiksen/jp-covid-stats/internal/logger"
	"github.com/pfrederiksen/jp-covid-stats/internal/table"
	"github.com/pfrederiksen/jp-covid-stats/internal/workbook"
)

const (
	URL = "https://www.fdma.go.jp/disaster/coronavirus/items/coronavirus_data.xlsx"

	SheetCurrent  = "搬送困難事案（今回）"
	SheetPrevious = "搬送困難事案（前年同期）"

	// TotalArea is the grand-total row; it is skipped, never summed.
	TotalArea = "52本部合計"

	// Metric names the records this package emits.
	Metric = "搬送困難事案"
)

// Layout locates the regions of an ambulance sheet (1-based).
type Layout struct {
	WeekRow     int
	PrefColumn  int
	AreaColumn  int
	FirstColumn int
	FirstRow    int
}

// DefaultLayout matches the published workbook.
var DefaultLayout = Layout{
	WeekRow:     4,
	PrefColumn:  2,
	AreaColumn:  3,
	FirstColumn: 4,
	FirstRow:    6,
}

// Options controls how the two sheets are read and reconciled.
type Options struct {
	Layout       Layout
	CurrentYear  int
	PreviousYear int
	// AllowEntityDrift backfills only the areas both sheets share instead of
	// failing when the sheets list different areas.
	AllowEntityDrift bool
}

// DefaultOptions returns the settings for the published workbook.
func DefaultOptions() Options {
	return Options{
		Layout:       DefaultLayout,
		CurrentYear:  2020,
		PreviousYear: 2019,
	}
}

// Sheet is the result of reading one sheet.
type Sheet struct {
	Weeks       map[int]interval.Interval // column → week
	Counts      table.Series              // area → day → count
	Prefectures map[string]string         // area → prefecture
	Areas       []string                  // in sheet order
}

// ReadWeeks reads week headers left to right until the first empty header.
func ReadWeeks(g *workbook.Grid, layout Layout, firstYear int) (map[int]interval.Interval, error) {
	weeks := make(map[int]interval.Interval)
	cursor := interval.NewCursor(firstYear)
	for col := layout.FirstColumn; ; col++ {
		label := g.Cell(layout.WeekRow, col)
		if label.IsAbsent() {
			break
		}
		iv, err := cursor.Parse(label.Text())
		if err != nil {
			return nil, &workbook.CellError{Sheet: g.Name(), Row: layout.WeekRow, Column: col, Err: err}
		}
		weeks[col] = iv
	}
	return weeks, nil
}

// ReadSheet reads the data rows of one sheet, starting at layout.FirstRow and
// stopping at the first row without an area name.
func ReadSheet(g *workbook.Grid, layout Layout, firstYear int) (*Sheet, error) {
	weeks, err := ReadWeeks(g, layout, firstYear)
	if err != nil {
		return nil, err
	}

	s := &Sheet{
		Weeks:       weeks,
		Counts:      make(table.Series),
		Prefectures: make(map[string]string),
	}

	for row := layout.FirstRow; ; row++ {
		areaCell := g.Cell(row, layout.AreaColumn)
		if areaCell.IsAbsent() {
			break
		}
		area := strings.TrimSpace(areaCell.Text())
		if area == TotalArea {
			continue
		}
		if _, seen := s.Prefectures[area]; !seen {
			s.Areas = append(s.Areas, area)
		}
		s.Prefectures[area] = strings.TrimSpace(g.Cell(row, layout.PrefColumn).Text())
		if _, ok := s.Counts[area]; !ok {
			s.Counts[area] = make(map[time.Time]float64)
		}

		for col := layout.FirstColumn; ; col++ {
			cell := g.Cell(row, col)
			if cell.IsAbsent() {
				break
			}
			week, ok := weeks[col]
			if !ok {
				return nil, &workbook.CellError{Sheet: g.Name(), Row: row, Column: col,
					Err: fmt.Errorf("count for area %q has no week header", area)}
			}
			count, ok := cell.Number()
			if !ok {
				continue
			}
			for _, day := range week.Days() {
				s.Counts.Set(area, day, count)
			}
		}
	}
	return s, nil
}

// Stats is the reconciled ambulance dataset.
type Stats struct {
	Counts      table.Series
	Prefectures map[string]string
	areas       []string
}

// Read extracts both sheets and backfills the current counts with the
// previous-year counts.
func Read(current, previous *workbook.Grid, opts Options) (*Stats, error) {
	cur, err := ReadSheet(current, opts.Layout, opts.CurrentYear)
	if err != nil {
		return nil, fmt.Errorf("reading current sheet: %w", err)
	}
	prev, err := ReadSheet(previous, opts.Layout, opts.PreviousYear)
	if err != nil {
		return nil, fmt.Errorf("reading previous-year sheet: %w", err)
	}

	var filled int
	if opts.AllowEntityDrift {
		var drift *table.EntityMismatchError
		filled, drift = table.MergeShared(cur.Counts, prev.Counts)
		if drift != nil {
			logger.Warn("Ambulance sheets list different areas", logger.Fields{
				"missing": drift.Missing,
				"extra":   drift.Extra,
			})
		}
	} else {
		filled, err = table.Merge(cur.Counts, prev.Counts)
		if err != nil {
			return nil, fmt.Errorf("merging previous-year sheet: %w", err)
		}
	}
	logger.Debug("Merged ambulance sheets", logger.Fields{
		"areas":  len(cur.Areas),
		"filled": filled,
	})

	return &Stats{
		Counts:      cur.Counts,
		Prefectures: cur.Prefectures,
		areas:       cur.Areas,
	}, nil
}

// Load decodes the workbook bytes and reads both sheets.
func Load(data []byte, opts Options) (*Stats, error) {
	grids, err := workbook.LoadAll(data, SheetCurrent, SheetPrevious)
	if err != nil {
		return nil, err
	}
	return Read(grids[SheetCurrent], grids[SheetPrevious], opts)
}

// Areas lists areas in the order of the current sheet.
func (s *Stats) Areas() []string {
	return append([]string(nil), s.areas...)
}

// Table converts the counts to tidy records.
func (s *Stats) Table() *table.Table {
	t := table.New()
	t.AddSeries(Metric, s.Counts)
	return t
}

// Years returns the calendar years present for area, ascending.
func (s *Stats) Years(area string) []int {
	seen := make(map[int]bool)
	for d := range s.Counts[area] {
		seen[d.Year()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// ByDayOfYear lays out each year of an area's counts as 365 daily values
// starting at January 1st; days without data are NaN.
func (s *Stats) ByDayOfYear(area string) map[int][]float64 {
	out := make(map[int][]float64)
	counts := s.Counts[area]
	for _, year := range s.Years(area) {
		values := make([]float64, 365)
		jan1 := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := range values {
			if v, ok := counts[jan1.AddDate(0, 0, i)]; ok {
				values[i] = v
			} else {
				values[i] = math.NaN()
			}
		}
		out[year] = values
	}
	return out
}
