package workbook

import (
	"strconv"
	"strings"
)

// Kind identifies what a cell holds.
type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindInt
	KindFloat
)

// Value is a single decoded cell.
type Value struct {
	Kind  Kind
	text  string
	int   int64
	float float64
}

// Absent is the zero Value.
var Absent = Value{}

// TextValue builds a text cell.
func TextValue(s string) Value {
	return Value{Kind: KindText, text: s}
}

// IntValue builds an integer cell.
func IntValue(i int64) Value {
	return Value{Kind: KindInt, int: i, float: float64(i)}
}

// FloatValue builds a non-integer numeric cell.
func FloatValue(f float64) Value {
	return Value{Kind: KindFloat, float: f}
}

// IsAbsent reports whether the cell is empty.
func (v Value) IsAbsent() bool {
	return v.Kind == KindAbsent
}

// Int returns the value if the cell holds an integer.
func (v Value) Int() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.int, true
}

// Number returns the value if the cell holds any number.
func (v Value) Number() (float64, bool) {
	switch v.Kind {
	case KindInt, KindFloat:
		return v.float, true
	default:
		return 0, false
	}
}

// Text returns the textual form of the cell; numbers are formatted, absent is "".
func (v Value) Text() string {
	switch v.Kind {
	case KindText:
		return v.text
	case KindInt:
		return strconv.FormatInt(v.int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.float, 'f', -1, 64)
	default:
		return ""
	}
}

func (v Value) String() string {
	if v.Kind == KindAbsent {
		return "<absent>"
	}
	return v.Text()
}

// parseNumeric decodes the raw text of a non-string cell.
// Integers become KindInt, other numbers KindFloat, anything else stays text.
func parseNumeric(raw string) Value {
	s := strings.TrimSpace(raw)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatValue(f)
	}
	return TextValue(raw)
}
