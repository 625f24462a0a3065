package workbook

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Range is an inclusive rectangle of 1-based cell coordinates.
type Range struct {
	FromRow, FromCol int
	ToRow, ToCol     int
}

// Contains reports whether (row, col) lies inside the range.
func (r Range) Contains(row, col int) bool {
	return row >= r.FromRow && row <= r.ToRow && col >= r.FromCol && col <= r.ToCol
}

func (r Range) String() string {
	from, _ := excelize.CoordinatesToCellName(r.FromCol, r.FromRow)
	to, _ := excelize.CoordinatesToCellName(r.ToCol, r.ToRow)
	return from + ":" + to
}

// Grid is a read-only snapshot of one sheet.
type Grid struct {
	name   string
	cells  [][]Value
	merged []Range
}

// NewGrid builds a grid from already decoded rows (0-based slices) and merged ranges.
func NewGrid(name string, rows [][]Value, merged []Range) *Grid {
	return &Grid{name: name, cells: rows, merged: merged}
}

// Name returns the sheet name the grid was loaded from.
func (g *Grid) Name() string {
	return g.name
}

// Cell returns the value at 1-based (row, col). Out of bounds is Absent.
func (g *Grid) Cell(row, col int) Value {
	if row < 1 || col < 1 || row > len(g.cells) {
		return Absent
	}
	r := g.cells[row-1]
	if col > len(r) {
		return Absent
	}
	return r[col-1]
}

// MergedRangeContaining returns the merged range that covers (row, col), if any.
func (g *Grid) MergedRangeContaining(row, col int) (Range, bool) {
	for _, r := range g.merged {
		if r.Contains(row, col) {
			return r, true
		}
	}
	return Range{}, false
}

// Header resolves the logical value displayed at (row, col).
// Inside a merged range the first non-absent cell, scanning row by row, wins.
func (g *Grid) Header(row, col int) Value {
	r, ok := g.MergedRangeContaining(row, col)
	if !ok {
		return g.Cell(row, col)
	}
	for i := r.FromRow; i <= r.ToRow; i++ {
		for j := r.FromCol; j <= r.ToCol; j++ {
			if v := g.Cell(i, j); !v.IsAbsent() {
				return v
			}
		}
	}
	return Absent
}

// Load decodes xlsx bytes and reads the named sheet into a Grid.
func Load(data []byte, sheet string) (*Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	defer f.Close()

	return loadSheet(f, sheet)
}

// Sheets lists the sheet names of an xlsx payload.
func Sheets(data []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// LoadAll decodes several sheets of the same workbook in one pass over the archive.
func LoadAll(data []byte, sheets ...string) (map[string]*Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	defer f.Close()

	grids := make(map[string]*Grid, len(sheets))
	for _, name := range sheets {
		g, err := loadSheet(f, name)
		if err != nil {
			return nil, err
		}
		grids[name] = g
	}
	return grids, nil
}

func loadSheet(f *excelize.File, sheet string) (*Grid, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, &LoadError{SheetName: sheet, Err: ErrSheetNotFound}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &LoadError{SheetName: sheet, Err: err}
	}

	cells := make([][]Value, len(rows))
	for rowIdx, row := range rows {
		decoded := make([]Value, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, &LoadError{SheetName: sheet, Err: err}
			}
			typ, err := f.GetCellType(sheet, name)
			if err != nil {
				return nil, &LoadError{SheetName: sheet, Err: fmt.Errorf("cell %s: %w", name, err)}
			}
			decoded[colIdx] = decode(typ, raw)
		}
		cells[rowIdx] = decoded
	}

	mergeCells, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, &LoadError{SheetName: sheet, Err: err}
	}
	merged := make([]Range, 0, len(mergeCells))
	for _, mc := range mergeCells {
		fromCol, fromRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			return nil, &LoadError{SheetName: sheet, Err: err}
		}
		toCol, toRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			return nil, &LoadError{SheetName: sheet, Err: err}
		}
		merged = append(merged, Range{FromRow: fromRow, FromCol: fromCol, ToRow: toRow, ToCol: toCol})
	}

	return NewGrid(sheet, cells, merged), nil
}

// decode maps an excelize cell type and its raw text to a Value.
func decode(typ excelize.CellType, raw string) Value {
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeBool, excelize.CellTypeError:
		return TextValue(raw)
	default:
		return parseNumeric(raw)
	}
}
