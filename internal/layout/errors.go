package layout

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownMetric is returned for a metric the active version does not define.
var ErrUnknownMetric = errors.New("unknown metric")

// ErrNoVersion is returned for a timestamp earlier than every schema version.
var ErrNoVersion = errors.New("no layout version in effect")

// SchemaValidationError reports header text that does not match the column
// the active layout expects for a metric.
type SchemaValidationError struct {
	Metric    string
	Timestamp time.Time
	Version   string
	Row       int
	Column    int
	Expected  string
	Actual    string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("header mismatch for %q at %s (layout %s, row %d, column %d): expected %s, got %q",
		e.Metric, e.Timestamp.Format("2006-01-02 15:04"), e.Version, e.Row, e.Column, e.Expected, e.Actual)
}
