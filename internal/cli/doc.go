// Package cli implements the command-line interface for jp-covid-stats.
//
// The cli package provides the Cobra-based commands for the three report
// sources (ambulance, monitoring, patient), output formatting (text, JSON,
// Mermaid charts) and record sorting. It resolves configuration once per run
// and tags every log line with a run id.
package cli
