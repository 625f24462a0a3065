// Package table holds the tidy (entity, date, metric, value) records extracted
// from the reports, plus the helpers that reconcile and reshape them.
package table
