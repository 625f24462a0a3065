package table

import (
	"math"
	"sort"
	"time"
)

// Record is one metric value for an entity on a date.
type Record struct {
	Entity string    `json:"entity"`
	Date   time.Time `json:"date"`
	Metric string    `json:"metric"`
	Value  float64   `json:"value"`
}

type key struct {
	entity string
	date   int64
	metric string
}

func keyOf(entity string, date time.Time, metric string) key {
	return key{entity: entity, date: date.UnixNano(), metric: metric}
}

// Table is an ordered collection of records, unique per (entity, date, metric).
type Table struct {
	records []Record
	index   map[key]int
}

// New creates an empty table.
func New() *Table {
	return &Table{index: make(map[key]int)}
}

// Add stores r. A record with the same key is replaced in place.
func (t *Table) Add(r Record) {
	k := keyOf(r.Entity, r.Date, r.Metric)
	if i, ok := t.index[k]; ok {
		t.records[i] = r
		return
	}
	t.index[k] = len(t.records)
	t.records = append(t.records, r)
}

// Get returns the value stored for a key.
func (t *Table) Get(entity string, date time.Time, metric string) (float64, bool) {
	i, ok := t.index[keyOf(entity, date, metric)]
	if !ok {
		return 0, false
	}
	return t.records[i].Value, true
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of the records in insertion order.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Sort orders records by entity, date, then metric.
func (t *Table) Sort() {
	sort.SliceStable(t.records, func(i, j int) bool {
		a, b := t.records[i], t.records[j]
		if a.Entity != b.Entity {
			return a.Entity < b.Entity
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Metric < b.Metric
	})
	for i, r := range t.records {
		t.index[keyOf(r.Entity, r.Date, r.Metric)] = i
	}
}

// Entities lists entities in first-seen order.
func (t *Table) Entities() []string {
	return t.distinct(func(r Record) string { return r.Entity })
}

// Metrics lists metrics in first-seen order.
func (t *Table) Metrics() []string {
	return t.distinct(func(r Record) string { return r.Metric })
}

func (t *Table) distinct(field func(Record) string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range t.records {
		v := field(r)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Filter returns the records of one entity, optionally limited to metrics.
func (t *Table) Filter(entity string, metrics ...string) *Table {
	want := make(map[string]bool, len(metrics))
	for _, m := range metrics {
		want[m] = true
	}
	out := New()
	for _, r := range t.records {
		if r.Entity != entity {
			continue
		}
		if len(want) > 0 && !want[r.Metric] {
			continue
		}
		out.Add(r)
	}
	return out
}

// Series extracts one metric as entity → date → value.
func (t *Table) Series(metric string) Series {
	s := make(Series)
	for _, r := range t.records {
		if r.Metric != metric {
			continue
		}
		s.Set(r.Entity, r.Date, r.Value)
	}
	return s
}

// AddSeries appends every point of s as records of metric, in entity then date order.
func (t *Table) AddSeries(metric string, s Series) {
	for _, entity := range s.Entities() {
		for _, d := range s.Dates(entity) {
			t.Add(Record{Entity: entity, Date: d, Metric: metric, Value: s[entity][d]})
		}
	}
}

// Pivot is a wide view of one entity: one column per metric, one row per date.
// Missing cells are NaN.
type Pivot struct {
	Entity  string
	Metrics []string
	Dates   []time.Time
	Values  [][]float64 // Values[metric][date]
}

// Pivot builds the wide view for entity over the given metrics.
func (t *Table) Pivot(entity string, metrics []string) *Pivot {
	dateSet := make(map[int64]time.Time)
	for _, r := range t.records {
		if r.Entity == entity {
			dateSet[r.Date.UnixNano()] = r.Date
		}
	}
	dates := make([]time.Time, 0, len(dateSet))
	for _, d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	p := &Pivot{
		Entity:  entity,
		Metrics: append([]string(nil), metrics...),
		Dates:   dates,
		Values:  make([][]float64, len(metrics)),
	}
	for i, m := range metrics {
		col := make([]float64, len(dates))
		for j, d := range dates {
			if v, ok := t.Get(entity, d, m); ok {
				col[j] = v
			} else {
				col[j] = math.NaN()
			}
		}
		p.Values[i] = col
	}
	return p
}
