// Package ambulance extracts weekly counts of difficult ambulance transports
// (搬送困難事案) from the FDMA workbook.
//
// The workbook has one sheet for the current period and one for the same
// weeks of the previous year. Each column is a week whose header carries
// only month/day pairs; the count under it is spread over every day of the
// week. The previous-year sheet backfills days the current sheet lacks.
package ambulance
