package table

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Series maps entity → date → value. All dates of a series must share a location.
type Series map[string]map[time.Time]float64

// Set stores a value, creating the entity on first use.
func (s Series) Set(entity string, date time.Time, v float64) {
	m, ok := s[entity]
	if !ok {
		m = make(map[time.Time]float64)
		s[entity] = m
	}
	m[date] = v
}

// Entities returns the entity names sorted.
func (s Series) Entities() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Dates returns the dates of one entity in ascending order.
func (s Series) Dates(entity string) []time.Time {
	out := make([]time.Time, 0, len(s[entity]))
	for d := range s[entity] {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// EntityMismatchError reports that two series cover different entities.
type EntityMismatchError struct {
	Missing []string // in primary, absent from secondary
	Extra   []string // in secondary, absent from primary
}

func (e *EntityMismatchError) Error() string {
	return fmt.Sprintf("entity sets differ: missing from secondary [%s], extra in secondary [%s]",
		strings.Join(e.Missing, ", "), strings.Join(e.Extra, ", "))
}

// compareEntities returns nil when both series have exactly the same entities.
func compareEntities(primary, secondary Series) *EntityMismatchError {
	var missing, extra []string
	for e := range primary {
		if _, ok := secondary[e]; !ok {
			missing = append(missing, e)
		}
	}
	for e := range secondary {
		if _, ok := primary[e]; !ok {
			extra = append(extra, e)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return &EntityMismatchError{Missing: missing, Extra: extra}
}

// Merge backfills primary with dates from secondary that primary lacks.
// Values already in primary are never overwritten. Both series must cover
// exactly the same entities; otherwise primary is left untouched and an
// *EntityMismatchError is returned.
func Merge(primary, secondary Series) (int, error) {
	if err := compareEntities(primary, secondary); err != nil {
		return 0, err
	}
	return backfill(primary, secondary), nil
}

// MergeShared backfills only the entities both series cover and reports the
// entity drift, if any, alongside the number of filled points.
func MergeShared(primary, secondary Series) (int, *EntityMismatchError) {
	return backfill(primary, secondary), compareEntities(primary, secondary)
}

func backfill(primary, secondary Series) int {
	filled := 0
	for entity, dates := range primary {
		for d, v := range secondary[entity] {
			if _, ok := dates[d]; !ok {
				dates[d] = v
				filled++
			}
		}
	}
	return filled
}
