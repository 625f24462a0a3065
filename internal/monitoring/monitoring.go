// Package monitoring reads the Tokyo metropolitan weekly monitoring-test
// report (週報詳細): tests performed and positives per week, plus the
// positive rate derived from them.
package monitoring

import (
	"strings"

	"github.com/pfrederiksen/jp-covid-stats/internal/interval"
	"github.com/pfrederiksen/jp-covid-stats/internal/layout"
	"github.com/pfrederiksen/jp-covid-stats/internal/table"
	"github.com/pfrederiksen/jp-covid-stats/internal/workbook"
)

const (
	URL   = "https://www.fukushihoken.metro.tokyo.lg.jp/iryo/kansen/kensa/kensuu.files/syousaisenryakukensa.xlsx"
	Sheet = "週報詳細"

	// Entity is the single entity the report covers.
	Entity = "東京都"

	// TotalLabel ends the weekly rows.
	TotalLabel = "累計"

	MetricTests        = "検査実施件数"
	MetricPositives    = "陽性件数"
	MetricPositiveRate = "陽性率"
)

// Metrics lists the metrics in display order.
var Metrics = []string{MetricTests, MetricPositives, MetricPositiveRate}

// Layout locates the weekly rows (columns are 1-based).
type Layout struct {
	FirstRow        int
	IntervalColumn  int
	TestsColumn     int
	PositivesColumn int
}

// DefaultLayout matches the published workbook: labels in A, tests in C,
// positives in D, from row 5.
var DefaultLayout = Layout{
	FirstRow:        5,
	IntervalColumn:  1,
	TestsColumn:     3,
	PositivesColumn: 4,
}

var positiveRate = layout.Ratio{Num: MetricPositives, Den: MetricTests}

// Read extracts one record per metric and week, dated at the last day of the
// week. Reading stops at the 累計 row or the first empty label.
func Read(g *workbook.Grid, l Layout) (*table.Table, error) {
	t := table.New()
	for row := l.FirstRow; ; row++ {
		label := g.Cell(row, l.IntervalColumn)
		if label.IsAbsent() || strings.TrimSpace(label.Text()) == TotalLabel {
			break
		}
		iv, err := interval.ParseDatedLabel(label.Text())
		if err != nil {
			return nil, &workbook.CellError{Sheet: g.Name(), Row: row, Column: l.IntervalColumn, Err: err}
		}

		tests, testsOK := g.Cell(row, l.TestsColumn).Number()
		positives, positivesOK := g.Cell(row, l.PositivesColumn).Number()
		if testsOK {
			t.Add(table.Record{Entity: Entity, Date: iv.End, Metric: MetricTests, Value: tests})
		}
		if positivesOK {
			t.Add(table.Record{Entity: Entity, Date: iv.End, Metric: MetricPositives, Value: positives})
		}
		if testsOK && positivesOK {
			t.Add(table.Record{Entity: Entity, Date: iv.End, Metric: MetricPositiveRate, Value: positiveRate.Combine(positives, tests)})
		}
	}
	return t, nil
}

// Load decodes the workbook bytes and reads the weekly sheet.
func Load(data []byte) (*table.Table, error) {
	g, err := workbook.Load(data, Sheet)
	if err != nil {
		return nil, err
	}
	return Read(g, DefaultLayout)
}
