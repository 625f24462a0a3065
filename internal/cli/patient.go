package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/jp-covid-stats/internal/chart"
	"github.com/pfrederiksen/jp-covid-stats/internal/patient"
)

// patientIndexURL is replaced in tests.
var patientIndexURL = patient.IndexURL

var (
	flagPref      string
	flagGroup     string
	flagOverwrite bool
)

func newPatientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patient",
		Short: "MHLW patient status and hospital bed reports",
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Download report workbooks not yet in the data directory",
		Args:  cobra.NoArgs,
		RunE:  runPatientUpdate,
	}
	update.Flags().BoolVar(&flagOverwrite, "overwrite", false, "Download workbooks even if already present")

	list := &cobra.Command{
		Use:   "list",
		Short: "List downloaded reports",
		Args:  cobra.NoArgs,
		RunE:  runPatientList,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show a prefecture's metrics across all downloaded reports",
		Args:  cobra.NoArgs,
		RunE:  runPatientShow,
	}
	show.Flags().StringVar(&flagPref, "pref", "", "Prefecture, e.g. 東京都 (required)")
	show.Flags().StringVar(&flagGroup, "group", "", "Metric group: "+strings.Join(groupNames(), ", ")+" (default all)")
	show.MarkFlagRequired("pref")

	cmd.AddCommand(update, list, show)
	return cmd
}

func groupNames() []string {
	names := make([]string, len(patient.Groups))
	for i, g := range patient.Groups {
		names[i] = g.Name
	}
	return names
}

func runPatientUpdate(cmd *cobra.Command, args []string) error {
	store, err := openStore(cfg.PatientDir())
	if err != nil {
		return fmt.Errorf("opening report index: %w", err)
	}
	defer store.Close()

	u := &patient.Updater{
		Fetcher:   newScraper(),
		Store:     store,
		DataDir:   cfg.PatientDir(),
		IndexURL:  patientIndexURL,
		Overwrite: flagOverwrite,
	}
	res, err := u.Update(cmd.Context())
	if err != nil {
		return err
	}

	format, _ := ParseFormat(flagFormat)
	if format == FormatJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Listed %d reports: %d downloaded, %d already present.\n",
		res.Listed, res.Downloaded, res.Skipped)
	return nil
}

func runPatientList(cmd *cobra.Command, args []string) error {
	reports, err := storedReports()
	if err != nil {
		return err
	}

	format, _ := ParseFormat(flagFormat)
	if format == FormatJSON {
		return writeJSON(cmd.OutOrStdout(), reports)
	}
	if len(reports) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No reports downloaded. Run 'jp-covid-stats patient update' first.")
		return nil
	}
	for _, r := range reports {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.Key, r.URL)
	}
	return nil
}

func runPatientShow(cmd *cobra.Command, args []string) error {
	groups, metrics := patient.Groups, patient.AllMetrics()
	if flagGroup != "" {
		g, ok := patient.GroupByName(flagGroup)
		if !ok {
			return fmt.Errorf("unknown group %q (must be one of %s)", flagGroup, strings.Join(groupNames(), ", "))
		}
		groups, metrics = []patient.Group{g}, g.Metrics
	}

	reports, err := storedReports()
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		return fmt.Errorf("no reports downloaded; run 'jp-covid-stats patient update' first")
	}

	t, err := patient.NewBuilder(cfg.PatientDir()).Build(reports, metrics)
	if err != nil {
		return err
	}
	t = t.Filter(flagPref, metrics...)
	if t.Len() == 0 {
		return fmt.Errorf("no records for prefecture %q", flagPref)
	}

	if chartFormat() {
		charts := make([]*chart.Chart, 0, len(groups))
		for _, g := range groups {
			charts = append(charts, chart.FromPivot(t.Pivot(flagPref, g.Metrics), chart.Config{
				Title:  g.Title,
				LogY:   g.LogY,
				Width:  800,
				Height: 300,
			}))
		}
		return writeCharts(cmd.OutOrStdout(), flagPref, flagOut, flagOpen, charts)
	}
	return writeRecords(cmd, patient.IndexURL, flagPref, t)
}

func storedReports() ([]patient.Report, error) {
	store, err := openStore(cfg.PatientDir())
	if err != nil {
		return nil, fmt.Errorf("opening report index: %w", err)
	}
	defer store.Close()
	return patient.Reports(store)
}
