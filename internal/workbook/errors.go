package workbook

import (
	"errors"
	"fmt"
)

// ErrSheetNotFound indicates the requested sheet is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// LoadError represents a failure to decode a workbook or one of its sheets.
type LoadError struct {
	SheetName string
	Err       error
}

func (e *LoadError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("loading workbook: %v", e.Err)
	}
	return fmt.Sprintf("loading sheet %q: %v", e.SheetName, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// CellError attaches a sheet position to an extraction failure.
type CellError struct {
	Source string
	Sheet  string
	Row    int
	Column int
	Err    error
}

func (e *CellError) Error() string {
	loc := fmt.Sprintf("sheet %q row %d", e.Sheet, e.Row)
	if e.Column > 0 {
		loc += fmt.Sprintf(" column %d", e.Column)
	}
	if e.Source != "" {
		loc = e.Source + ": " + loc
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}
