package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/jp-covid-stats/internal/config"
	"github.com/pfrederiksen/jp-covid-stats/internal/logger"
	"github.com/pfrederiksen/jp-covid-stats/internal/scraper"
	"github.com/pfrederiksen/jp-covid-stats/internal/storage"
	"github.com/pfrederiksen/jp-covid-stats/internal/storage/sqlite"
	"github.com/pfrederiksen/jp-covid-stats/internal/table"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is set by the main package at build time.
var Version = "dev"

var (
	flagFormat  string
	flagOut     string
	flagOpen    bool
	flagDataDir string
	flagCache   string
	flagEnvFile string
	flagSort    string
	flagVerbose bool
)

// Per-run state set up before any subcommand runs.
var (
	cfg   *config.Config
	runID string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jp-covid-stats",
		Short: "Fetch and chart Japanese COVID-19 government statistics",
		Long: `A CLI tool that downloads published government workbooks (FDMA ambulance
dispatch difficulty, Tokyo monitoring tests, MHLW patient and bed status),
parses them into dated records and renders them as text, JSON or charts.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: teardown,
	}

	// Define flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flagFormat, "format", "text", "Output format: text, json or chart")
	pf.StringVar(&flagOut, "out", "", "Write charts to this HTML file instead of stdout")
	pf.BoolVar(&flagOpen, "open", false, "Open the HTML chart file in the browser")
	pf.StringVar(&flagDataDir, "data-dir", "", "Data directory for downloaded workbooks (default $JPSTATS_DATA_DIR or ./data)")
	pf.StringVar(&flagCache, "cache", "", "Report index backend: json or sqlite (default $JPSTATS_CACHE or json)")
	pf.StringVar(&flagEnvFile, "env-file", "", "Load settings from this file instead of ./.env")
	pf.StringVar(&flagSort, "sort", string(SortByEntity), "Record order: entity, date or metric")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newAmbulanceCmd(),
		newAreasCmd(),
		newMonitoringCmd(),
		newPatientCmd(),
	)
	return cmd
}

// setup resolves configuration and the logger for one run.
func setup(cmd *cobra.Command, args []string) error {
	if _, err := ParseFormat(flagFormat); err != nil {
		return err
	}
	if _, err := ParseSortOrder(flagSort); err != nil {
		return err
	}

	c, err := config.Load(flagEnvFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if cmd.Flags().Changed("data-dir") {
		c.DataDir = flagDataDir
	}
	if cmd.Flags().Changed("cache") {
		c.Cache = flagCache
	}
	if err := c.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.Options{Verbose: flagVerbose, Dir: c.LogDir}); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	runID = uuid.NewString()
	logger.SetDefault(logger.Default().With(logger.Fields{"run_id": runID}))
	logger.Debug("Starting run", logger.Fields{
		"command":  cmd.CommandPath(),
		"data_dir": c.DataDir,
		"cache":    c.Cache,
	})

	cfg = c
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if flagVerbose {
		logger.Debug("Run complete", logger.Fields{"metrics": logger.DefaultMetrics().Summary()})
	}
}

func newScraper() *scraper.Scraper {
	return scraper.New(
		scraper.WithTimeout(cfg.Timeout),
		scraper.WithUserAgent(cfg.UserAgent),
	)
}

// openStore opens the report index configured for dir.
func openStore(dir string) (storage.Store, error) {
	if cfg.Cache == config.CacheSQLite {
		d, err := storage.EnsureDir(dir)
		if err != nil {
			return nil, err
		}
		return sqlite.New(filepath.Join(d, "files.db"))
	}
	return storage.NewFileStore(dir)
}

// fetch downloads url, timing it under name.
func fetch(ctx context.Context, name, url string) ([]byte, error) {
	var data []byte
	err := logger.DefaultMetrics().Time("fetch."+name, func() error {
		var err error
		data, err = newScraper().Fetch(ctx, url)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	return data, nil
}

// writeRecords prints t in the text or JSON format.
func writeRecords(cmd *cobra.Command, source, entity string, t *table.Table) error {
	format, _ := ParseFormat(flagFormat)
	order, _ := ParseSortOrder(flagSort)

	// Canonical order first, so ties under --sort come out the same every run.
	t.Sort()
	records := t.Records()
	sortRecords(records, order)
	result := &OutputResult{
		RunID:       runID,
		Source:      source,
		Entity:      entity,
		GeneratedAt: time.Now().UTC(),
		RecordCount: len(records),
		Records:     records,
	}
	if err := WriteOutput(cmd.OutOrStdout(), result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func chartFormat() bool {
	format, _ := ParseFormat(flagFormat)
	return format == FormatChart
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
