package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/jp-covid-stats/internal/ambulance"
	"github.com/pfrederiksen/jp-covid-stats/internal/chart"
	"github.com/pfrederiksen/jp-covid-stats/internal/logger"
)

// ambulanceURL is replaced in tests.
var ambulanceURL = ambulance.URL

var (
	flagArea       string
	flagAllowDrift bool
)

func newAmbulanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ambulance",
		Short: "Show ambulance dispatch difficulty counts",
		Long: `Downloads the FDMA ambulance dispatch difficulty workbook, backfills the
current period with the same period of the previous year and prints daily
counts. With --format chart each year is overlaid by day of year.`,
		Args: cobra.NoArgs,
		RunE: runAmbulance,
	}
	cmd.Flags().StringVar(&flagArea, "area", "", "Fire department to show (required for charts; see 'areas')")
	cmd.Flags().BoolVar(&flagAllowDrift, "allow-drift", false, "Backfill only areas listed on both sheets instead of failing")
	return cmd
}

func newAreasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "areas",
		Short: "List fire departments in the ambulance workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := loadAmbulance(cmd.Context(), false)
			if err != nil {
				return err
			}
			format, _ := ParseFormat(flagFormat)
			type area struct {
				Prefecture string `json:"prefecture"`
				Area       string `json:"area"`
			}
			areas := make([]area, 0, len(stats.Areas()))
			for _, a := range stats.Areas() {
				areas = append(areas, area{Prefecture: stats.Prefectures[a], Area: a})
			}
			if format == FormatJSON {
				return writeJSON(cmd.OutOrStdout(), areas)
			}
			for _, a := range areas {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", a.Prefecture, a.Area)
			}
			return nil
		},
	}
}

func loadAmbulance(ctx context.Context, allowDrift bool) (*ambulance.Stats, error) {
	data, err := fetch(ctx, "ambulance", ambulanceURL)
	if err != nil {
		return nil, err
	}
	opts := ambulance.DefaultOptions()
	opts.AllowEntityDrift = allowDrift
	stats, err := ambulance.Load(data, opts)
	if err != nil {
		return nil, fmt.Errorf("reading ambulance workbook: %w", err)
	}
	logger.Info("Loaded ambulance workbook", logger.Fields{"areas": len(stats.Areas())})
	return stats, nil
}

func runAmbulance(cmd *cobra.Command, args []string) error {
	stats, err := loadAmbulance(cmd.Context(), flagAllowDrift)
	if err != nil {
		return err
	}

	if flagArea != "" {
		if _, ok := stats.Counts[flagArea]; !ok {
			return fmt.Errorf("unknown area %q (run 'jp-covid-stats areas' for the list)", flagArea)
		}
	}

	if chartFormat() {
		if flagArea == "" {
			return fmt.Errorf("--area is required with --format chart")
		}
		c := chart.FromDayOfYear(stats.ByDayOfYear(flagArea), chart.Config{
			Title:  flagArea + " " + ambulance.Metric,
			XLabel: "日",
			YLabel: "件数",
			Width:  900,
			Height: 300,
		})
		return writeCharts(cmd.OutOrStdout(), flagArea, flagOut, flagOpen, []*chart.Chart{c})
	}

	t := stats.Table()
	if flagArea != "" {
		t = t.Filter(flagArea)
	}
	return writeRecords(cmd, ambulanceURL, flagArea, t)
}
