package layout

import (
	"fmt"
	"sort"
	"time"

	"github.com/pfrederiksen/jp-covid-stats/internal/workbook"
)

// Sheet is the part of a loaded grid the resolver reads.
type Sheet interface {
	Cell(row, col int) workbook.Value
	Header(row, col int) workbook.Value
}

// Resolver reads metrics from report rows using a Schema.
type Resolver struct {
	schema *Schema
}

// NewResolver creates a resolver over schema.
func NewResolver(schema *Schema) *Resolver {
	return &Resolver{schema: schema}
}

// Schema returns the schema the resolver was built with.
func (r *Resolver) Schema() *Schema {
	return r.schema
}

// Column returns the column a raw metric is read from at ts. The boolean is
// false when the metric has no column in the active layout, which includes
// composite metrics.
func (r *Resolver) Column(ts time.Time, metric string) (int, bool, error) {
	v, err := r.schema.Active(ts)
	if err != nil {
		return 0, false, err
	}
	if _, ok := r.schema.composite(v, metric); ok {
		return 0, false, nil
	}
	col, ok := v.Columns[metric]
	if !ok {
		return 0, false, fmt.Errorf("%w %q in layout %s", ErrUnknownMetric, metric, v.Name)
	}
	return col.Index, col.Index > 0, nil
}

// Value reads metric for one data row of a report published at ts.
// The boolean is false when the value is absent: no column in this layout,
// an empty or non-numeric cell, or a composite with an absent operand.
func (r *Resolver) Value(sheet Sheet, row int, ts time.Time, metric string) (float64, bool, error) {
	v, err := r.schema.Active(ts)
	if err != nil {
		return 0, false, err
	}
	return r.value(sheet, row, ts, v, metric, 0)
}

// maxDepth bounds composite nesting so a cyclic definition fails instead of recursing forever.
const maxDepth = 8

func (r *Resolver) value(sheet Sheet, row int, ts time.Time, v Version, metric string, depth int) (float64, bool, error) {
	if depth > maxDepth {
		return 0, false, fmt.Errorf("layout: composite %q nested too deeply", metric)
	}

	if c, ok := r.schema.composite(v, metric); ok {
		aName, bName := c.Operands()
		a, aok, err := r.value(sheet, row, ts, v, aName, depth+1)
		if err != nil {
			return 0, false, err
		}
		b, bok, err := r.value(sheet, row, ts, v, bName, depth+1)
		if err != nil {
			return 0, false, err
		}
		if !aok || !bok {
			return 0, false, nil
		}
		return c.Combine(a, b), true, nil
	}

	col, ok := v.Columns[metric]
	if !ok {
		return 0, false, fmt.Errorf("%w %q in layout %s", ErrUnknownMetric, metric, v.Name)
	}
	if col.Index == 0 {
		return 0, false, nil
	}

	if err := checkHeader(sheet, ts, v, metric, col); err != nil {
		return 0, false, err
	}

	n, ok := sheet.Cell(row, col.Index).Number()
	return n, ok, nil
}

// Validate checks the header of every raw column in the layout active at ts.
func (r *Resolver) Validate(sheet Sheet, ts time.Time) error {
	v, err := r.schema.Active(ts)
	if err != nil {
		return err
	}
	metrics := make([]string, 0, len(v.Columns))
	for metric := range v.Columns {
		metrics = append(metrics, metric)
	}
	sort.Strings(metrics)
	for _, metric := range metrics {
		col := v.Columns[metric]
		if col.Index == 0 {
			continue
		}
		if err := checkHeader(sheet, ts, v, metric, col); err != nil {
			return err
		}
	}
	return nil
}

func checkHeader(sheet Sheet, ts time.Time, v Version, metric string, col Column) error {
	header := sheet.Header(v.HeaderRow, col.Index)
	if header.Kind == workbook.KindText && col.Header.Matches(header.Text()) {
		return nil
	}
	return &SchemaValidationError{
		Metric:    metric,
		Timestamp: ts,
		Version:   v.Name,
		Row:       v.HeaderRow,
		Column:    col.Index,
		Expected:  col.Header.String(),
		Actual:    header.Text(),
	}
}
