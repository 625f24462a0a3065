// Package workbooktest builds small in-memory xlsx payloads for tests.
package workbooktest

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// Builder accumulates cells for one or more sheets.
type Builder struct {
	t *testing.T
	f *excelize.File
}

// New starts a workbook whose first sheet is renamed to sheet.
func New(t *testing.T, sheet string) *Builder {
	t.Helper()
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("renaming sheet: %v", err)
	}
	return &Builder{t: t, f: f}
}

// AddSheet creates an additional empty sheet.
func (b *Builder) AddSheet(sheet string) *Builder {
	b.t.Helper()
	if _, err := b.f.NewSheet(sheet); err != nil {
		b.t.Fatalf("creating sheet %q: %v", sheet, err)
	}
	return b
}

// Set writes a value at an A1 reference.
func (b *Builder) Set(sheet, ref string, value interface{}) *Builder {
	b.t.Helper()
	if err := b.f.SetCellValue(sheet, ref, value); err != nil {
		b.t.Fatalf("setting %s!%s: %v", sheet, ref, err)
	}
	return b
}

// SetAt writes a value at 1-based (row, col).
func (b *Builder) SetAt(sheet string, row, col int, value interface{}) *Builder {
	b.t.Helper()
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		b.t.Fatalf("cell name (%d,%d): %v", row, col, err)
	}
	return b.Set(sheet, ref, value)
}

// Merge merges the rectangle between two A1 references.
func (b *Builder) Merge(sheet, from, to string) *Builder {
	b.t.Helper()
	if err := b.f.MergeCell(sheet, from, to); err != nil {
		b.t.Fatalf("merging %s:%s: %v", from, to, err)
	}
	return b
}

// Bytes serialises the workbook and closes it.
func (b *Builder) Bytes() []byte {
	b.t.Helper()
	defer b.f.Close()
	buf, err := b.f.WriteToBuffer()
	if err != nil {
		b.t.Fatalf("writing workbook: %v", err)
	}
	return buf.Bytes()
}
