// Package table holds the typed table model produced by schema inference and
// the pure view/constraint logic derived from it. Nothing in this package does
// I/O; readers build tables, the presentation layer consumes views.
package table

import (
	"strconv"
)

// Kind defines the storage type a column was assigned at load time. It is
// decided once during inference and never re-evaluated per cell.
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindTextual Kind = "textual"
)

// ValueType defines the storage type for a single cell
type ValueType string

const (
	ValueTypeText    ValueType = "text"
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeMissing ValueType = "missing"
)

// Value represents a typed cell with deterministic coercion
type Value struct {
	Type       ValueType `json:"type"`
	StringVal  *string   `json:"string_val,omitempty"`
	NumericVal *float64  `json:"numeric_val,omitempty"`
	IsMissing  bool      `json:"is_missing"`
}

// NewTextValue creates a text value; empty strings are missing
func NewTextValue(s string) Value {
	if s == "" {
		return Value{Type: ValueTypeMissing, IsMissing: true}
	}
	return Value{Type: ValueTypeText, StringVal: &s}
}

// NewNumericValue creates a numeric value
func NewNumericValue(n float64) Value {
	return Value{Type: ValueTypeNumeric, NumericVal: &n}
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing, IsMissing: true}
}

// Number returns the numeric payload; ok is false for text or missing cells
func (v Value) Number() (float64, bool) {
	if v.Type != ValueTypeNumeric || v.NumericVal == nil {
		return 0, false
	}
	return *v.NumericVal, true
}

// Render returns the display string for the cell. Numeric cells use the
// shortest representation that round-trips through ParseFloat, so an exported
// file re-infers to the same values. Missing cells render empty.
func (v Value) Render() string {
	switch v.Type {
	case ValueTypeText:
		if v.StringVal != nil {
			return *v.StringVal
		}
	case ValueTypeNumeric:
		if v.NumericVal != nil {
			return strconv.FormatFloat(*v.NumericVal, 'f', -1, 64)
		}
	}
	return ""
}

// Column is an ordered sequence of cells under a trimmed header name
type Column struct {
	Name  string  `json:"name"`
	Kind  Kind    `json:"kind"`
	Cells []Value `json:"cells"`
}

// Table is the immutable result of schema inference: ordered named columns
// with a uniform row count. Views are derived from it, never written back.
type Table struct {
	Columns []Column `json:"columns"`
}

// NumRows returns the uniform row count
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// NumColumns returns the column count
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// ColumnNames returns header names in table order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name; ok is false when the name is unknown
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// NumericColumnNames returns the names of numeric columns, in table order.
// The presentation layer only offers these for statistics and charts.
func (t *Table) NumericColumnNames() []string {
	var names []string
	for _, c := range t.Columns {
		if c.Kind == KindNumeric {
			names = append(names, c.Name)
		}
	}
	return names
}
