package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/jp-covid-stats/internal/layout"
	"github.com/pfrederiksen/jp-covid-stats/internal/patient"
	"github.com/pfrederiksen/jp-covid-stats/internal/workbook"
)

// Prints the header row of a downloaded MHLW workbook and checks it against
// the layout active at the given report key.
//
//	go run ./scripts/check-layout.go data/10900000/000787404.xlsx 2021年6月2日0時
func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: check-layout <workbook.xlsx> <report key>")
		os.Exit(2)
	}

	ts, err := patient.ParseTimestamp(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading workbook: %v\n", err)
		os.Exit(1)
	}
	g, err := workbook.Load(data, patient.Sheet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, workbook.ErrSheetNotFound) {
			if names, lerr := workbook.Sheets(data); lerr == nil {
				fmt.Fprintf(os.Stderr, "Sheets in workbook: %s\n", strings.Join(names, ", "))
			}
		}
		os.Exit(1)
	}

	fmt.Println("Known layouts:")
	for _, known := range patient.Schema.Versions() {
		fmt.Printf("  %-8s from %s\n", known.Name, known.EffectiveFrom.Format(time.RFC3339))
	}

	v, err := patient.Schema.Active(ts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nLayout %s (from %s)\n", v.Name, v.EffectiveFrom.Format(time.RFC3339))
	for col := 1; col <= 30; col++ {
		h := g.Header(v.HeaderRow, col)
		if h.IsAbsent() {
			continue
		}
		fmt.Printf("%3d  %q\n", col, h.Text())
	}

	if err := layout.NewResolver(patient.Schema).Validate(g, ts); err != nil {
		fmt.Fprintf(os.Stderr, "\nLayout check failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\nAll headers match.")
}
