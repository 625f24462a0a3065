package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/jp-covid-stats/internal/chart"
	"github.com/pfrederiksen/jp-covid-stats/internal/table"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatChart OutputFormat = "chart"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatText, FormatJSON, FormatChart:
		return f, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'chart')", s)
}

// OutputResult contains data to be output
type OutputResult struct {
	RunID       string         `json:"run_id"`
	Source      string         `json:"source"`
	Entity      string         `json:"entity,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
	RecordCount int            `json:"record_count"`
	Records     []table.Record `json:"records"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeText outputs records grouped by entity
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.RecordCount == 0 {
		fmt.Fprintln(w, "No records found.")
		return nil
	}

	var entity string
	entities := 0
	for i, r := range result.Records {
		if i == 0 || r.Entity != entity {
			entity = r.Entity
			entities++
			fmt.Fprintf(w, "\n%s:\n", entity)
		}
		fmt.Fprintf(w, "  %s  %s  %s\n", formatDate(r.Date), r.Metric, formatValue(r.Value))
	}

	fmt.Fprintf(w, "\nTotal: %d records", result.RecordCount)
	if entities > 1 {
		fmt.Fprintf(w, " across %d entities", entities)
	}
	fmt.Fprintln(w)
	if verbose {
		fmt.Fprintf(w, "Source: %s\nRun: %s\n", result.Source, result.RunID)
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.Hour() != 0 || t.Minute() != 0 {
		return t.Format("2006-01-02 15:04")
	}
	return t.Format("2006-01-02")
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writeCharts saves the charts as an HTML page when out is set, otherwise
// prints them as fenced Mermaid blocks. Charts without data are dropped.
func writeCharts(w io.Writer, title, out string, open bool, charts []*chart.Chart) error {
	plottable := charts[:0:0]
	for _, c := range charts {
		if !c.Empty() {
			plottable = append(plottable, c)
		}
	}
	if len(plottable) == 0 {
		return fmt.Errorf("no plottable data for %s", title)
	}
	charts = plottable

	if out != "" {
		if err := chart.SaveHTML(out, title, open, charts...); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %d charts to %s\n", len(charts), out)
		return nil
	}
	if open {
		return fmt.Errorf("--open requires --out")
	}
	for _, c := range charts {
		fmt.Fprintf(w, "```mermaid\n%s```\n\n", c.Mermaid())
	}
	return nil
}
