// Package interval turns week header labels from the published reports into
// calendar date ranges.
//
// Most labels only carry month/day pairs ("12/28～1/3"); the year comes from a
// running Cursor that the caller seeds and that advances on New Year rollovers.
// Labels that do carry a year ("2020年12月第4週\n(12/21～12/27)") are handled by
// ParseDatedLabel.
package interval
