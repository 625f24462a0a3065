package cli

import (
	"fmt"
	"sort"

	"github.com/pfrederiksen/jp-covid-stats/internal/table"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByEntity SortOrder = "entity"
	SortByDate   SortOrder = "date"
	SortByMetric SortOrder = "metric"
)

// ParseSortOrder validates a --sort value.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case SortByEntity, SortByDate, SortByMetric:
		return o, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be 'entity', 'date' or 'metric')", s)
}

// sortRecords sorts records based on the specified sort order. Ties keep
// their original order.
func sortRecords(records []table.Record, order SortOrder) {
	switch order {
	case SortByEntity:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Entity != records[j].Entity {
				return records[i].Entity < records[j].Entity
			}
			// If entities are equal, sort by date
			return records[i].Date.Before(records[j].Date)
		})
	case SortByDate:
		sort.SliceStable(records, func(i, j int) bool {
			return compareByDate(records[i], records[j])
		})
	case SortByMetric:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Metric != records[j].Metric {
				return records[i].Metric < records[j].Metric
			}
			return compareByDate(records[i], records[j])
		})
	}
}

// compareByDate compares two records by date, then entity
// Returns true if record i should come before record j
func compareByDate(i, j table.Record) bool {
	if !i.Date.Equal(j.Date) {
		return i.Date.Before(j.Date)
	}
	return i.Entity < j.Entity
}
