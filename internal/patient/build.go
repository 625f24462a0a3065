package patient

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pfrederiksen/jp-covid-stats/internal/layout"
	"github.com/pfrederiksen/jp-covid-stats/internal/logger"
	"github.com/pfrederiksen/jp-covid-stats/internal/table"
	"github.com/pfrederiksen/jp-covid-stats/internal/workbook"
)

// Sheet is the sheet holding the per-prefecture table.
const Sheet = "公表資料"

// Layout locates the prefecture rows (1-based, inclusive).
type Layout struct {
	FirstRow   int
	LastRow    int
	PrefColumn int
	// PrefOffset is the number of leading runes dropped from the label.
	PrefOffset int
}

// DefaultLayout covers the 47 prefectures.
var DefaultLayout = Layout{
	FirstRow:   8,
	LastRow:    54,
	PrefColumn: 3,
	PrefOffset: 3,
}

// Builder turns stored report workbooks into records.
type Builder struct {
	DataDir  string
	Layout   Layout
	Resolver *layout.Resolver
}

// NewBuilder reads workbooks from dataDir with the published layout.
func NewBuilder(dataDir string) *Builder {
	return &Builder{
		DataDir:  dataDir,
		Layout:   DefaultLayout,
		Resolver: layout.NewResolver(Schema),
	}
}

// Build reads metrics from every report, oldest first, so a later report
// replaces an earlier value for the same prefecture, time and metric.
func (b *Builder) Build(reports []Report, metrics []string) (*table.Table, error) {
	sorted := make([]Report, len(reports))
	copy(sorted, reports)
	sortReports(sorted)

	t := table.New()
	for _, r := range sorted {
		name, err := r.File()
		if err != nil {
			return nil, fmt.Errorf("report %s: %w", r.Key, err)
		}
		data, err := os.ReadFile(filepath.Join(b.DataDir, name))
		if err != nil {
			return nil, fmt.Errorf("report %s: %w", r.Key, err)
		}
		g, err := workbook.Load(data, Sheet)
		if err != nil {
			return nil, fmt.Errorf("report %s (%s): %w", r.Key, name, err)
		}
		n, err := b.Read(t, g, name, r.Timestamp, metrics)
		if err != nil {
			return nil, err
		}
		logger.AddCounter("patient.records", int64(n))
		logger.Debug("Read report", logger.Fields{"key": r.Key, "file": name, "records": n})
	}
	return t, nil
}

// Read appends the records of one report sheet to t and returns how many
// were emitted. Errors carry the source file, row and metric.
func (b *Builder) Read(t *table.Table, g *workbook.Grid, source string, ts time.Time, metrics []string) (int, error) {
	n := 0
	for row := b.Layout.FirstRow; row <= b.Layout.LastRow; row++ {
		label := g.Cell(row, b.Layout.PrefColumn)
		if label.IsAbsent() {
			return n, &workbook.CellError{
				Source: source, Sheet: g.Name(), Row: row, Column: b.Layout.PrefColumn,
				Err: fmt.Errorf("missing prefecture label"),
			}
		}
		pref := PrefectureName(label.Text(), b.Layout.PrefOffset)

		for _, metric := range metrics {
			v, ok, err := b.Resolver.Value(g, row, ts, metric)
			if err != nil {
				col, _, _ := b.Resolver.Column(ts, metric)
				return n, &workbook.CellError{
					Source: source, Sheet: g.Name(), Row: row, Column: col,
					Err: fmt.Errorf("metric %q: %w", metric, err),
				}
			}
			if !ok {
				continue
			}
			t.Add(table.Record{Entity: pref, Date: ts, Metric: metric, Value: v})
			n++
		}
	}
	return n, nil
}

// PrefectureName drops the leading numbering of a row label and removes
// spaces, including ideographic ones.
func PrefectureName(label string, offset int) string {
	r := []rune(label)
	if offset > len(r) {
		offset = len(r)
	}
	return strings.NewReplacer(" ", "", "　", "").Replace(string(r[offset:]))
}

func sortReports(reports []Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Timestamp.Before(reports[j].Timestamp)
	})
}
