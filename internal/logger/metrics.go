package logger

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Metrics tracks counters and stage timings for one pipeline run.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	timings  map[string]time.Duration
}

var defaultMetrics = NewMetrics()

// NewMetrics creates an empty tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		timings:  make(map[string]time.Duration),
	}
}

// Add increments counter name by n.
func (m *Metrics) Add(name string, n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += n
}

// IncrCounter increments counter name by one.
func (m *Metrics) IncrCounter(name string) {
	m.Add(name, 1)
}

// Counter returns the current value of a counter.
func (m *Metrics) Counter(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// RecordTiming accumulates time spent in a stage.
func (m *Metrics) RecordTiming(name string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] += d
}

// Time runs fn and records its duration under name.
func (m *Metrics) Time(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	m.RecordTiming(name, time.Since(start))
	return err
}

// Summary returns "name=value" lines sorted by name, counters first.
func (m *Metrics) Summary() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	lines := make([]string, 0, len(m.counters)+len(m.timings))
	names := make([]string, 0, len(m.counters))
	for k := range m.counters {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		lines = append(lines, fmt.Sprintf("%s=%d", k, m.counters[k]))
	}

	names = names[:0]
	for k := range m.timings {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		lines = append(lines, fmt.Sprintf("%s=%s", k, m.timings[k].Round(time.Millisecond)))
	}
	return lines
}

// Fields returns the counters as log fields.
func (m *Metrics) Fields() Fields {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := make(Fields, len(m.counters))
	for k, v := range m.counters {
		f[k] = v
	}
	return f
}

// IncrCounter increments a counter on the default tracker.
func IncrCounter(name string) {
	defaultMetrics.IncrCounter(name)
}

// AddCounter adds n to a counter on the default tracker.
func AddCounter(name string, n int64) {
	defaultMetrics.Add(name, n)
}

// RecordTiming records a timing on the default tracker.
func RecordTiming(name string, d time.Duration) {
	defaultMetrics.RecordTiming(name, d)
}

// DefaultMetrics returns the process-wide tracker.
func DefaultMetrics() *Metrics {
	return defaultMetrics
}
