package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/jp-covid-stats/internal/chart"
	"github.com/pfrederiksen/jp-covid-stats/internal/monitoring"
)

// monitoringURL is replaced in tests.
var monitoringURL = monitoring.URL

func newMonitoringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monitoring",
		Short: "Show Tokyo weekly monitoring test counts and positive rate",
		Args:  cobra.NoArgs,
		RunE:  runMonitoring,
	}
}

func runMonitoring(cmd *cobra.Command, args []string) error {
	data, err := fetch(cmd.Context(), "monitoring", monitoringURL)
	if err != nil {
		return err
	}
	t, err := monitoring.Load(data)
	if err != nil {
		return fmt.Errorf("reading monitoring workbook: %w", err)
	}

	if chartFormat() {
		counts := chart.FromPivot(t.Pivot(monitoring.Entity, []string{monitoring.MetricTests, monitoring.MetricPositives}), chart.Config{
			Title:  "モニタリング検査",
			YLabel: "件数",
			Width:  900,
			Height: 300,
		})
		rate := chart.FromPivot(t.Pivot(monitoring.Entity, []string{monitoring.MetricPositiveRate}), chart.Config{
			Title:  monitoring.MetricPositiveRate,
			Width:  900,
			Height: 300,
		})
		return writeCharts(cmd.OutOrStdout(), monitoring.Entity, flagOut, flagOpen, []*chart.Chart{counts, rate})
	}
	return writeRecords(cmd, monitoringURL, monitoring.Entity, t)
}
