// Package layout maps logical metric names to spreadsheet columns for reports
// whose column layout changes over time.
//
// A Schema is an ordered list of Versions, each effective from a report
// timestamp. The active version for a report is the one with the greatest
// EffectiveFrom not after the report timestamp, so supporting another
// historical layout means appending a Version. Every raw read re-checks the
// header text above the resolved column and fails with a SchemaValidationError
// rather than return a value from a shifted column.
//
// Composite metrics (ratios and sums of two other metrics) are computed from
// their operands instead of being read from a cell.
package layout
