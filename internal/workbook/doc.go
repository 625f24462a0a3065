// Package workbook decodes downloaded xlsx reports into an immutable cell grid.
//
// A Grid gives random access to cell values by 1-based (row, column) coordinates
// and resolves merged header ranges, which the published reports use heavily for
// multi-line column titles.
package workbook
