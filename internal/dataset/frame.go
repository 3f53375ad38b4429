package dataset

import (
	"fmt"
)

// ColumnType tags a column's value type. It is decided once when the
// frame is built and carried as metadata from then on.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt
	TypeFloat
)

func (t ColumnType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Column is a named, typed column. Exactly one of the value slices is
// populated, matching Type.
type Column struct {
	Name string
	Type ColumnType

	strs   []string
	ints   []int
	floats []float64
}

func StringColumn(name string, values []string) Column {
	return Column{Name: name, Type: TypeString, strs: values}
}

func IntColumn(name string, values []int) Column {
	return Column{Name: name, Type: TypeInt, ints: values}
}

func FloatColumn(name string, values []float64) Column {
	return Column{Name: name, Type: TypeFloat, floats: values}
}

func (c *Column) Len() int {
	switch c.Type {
	case TypeString:
		return len(c.strs)
	case TypeInt:
		return len(c.ints)
	default:
		return len(c.floats)
	}
}

func (c *Column) Strings() []string { return c.strs }
func (c *Column) Ints() []int       { return c.ints }
func (c *Column) Floats() []float64 { return c.floats }

// FloatAt returns the value at row i as a float64. String columns have
// no numeric view and panic; callers gate on Type first.
func (c *Column) FloatAt(i int) float64 {
	switch c.Type {
	case TypeInt:
		return float64(c.ints[i])
	case TypeFloat:
		return c.floats[i]
	default:
		panic(fmt.Sprintf("column %q is not numeric", c.Name))
	}
}

func (c *Column) distinctCount() int {
	switch c.Type {
	case TypeString:
		seen := make(map[string]struct{}, len(c.strs))
		for _, v := range c.strs {
			seen[v] = struct{}{}
		}
		return len(seen)
	case TypeInt:
		seen := make(map[int]struct{}, len(c.ints))
		for _, v := range c.ints {
			seen[v] = struct{}{}
		}
		return len(seen)
	default:
		seen := make(map[float64]struct{}, len(c.floats))
		for _, v := range c.floats {
			seen[v] = struct{}{}
		}
		return len(seen)
	}
}

func (c *Column) subset(idx []int) Column {
	out := Column{Name: c.Name, Type: c.Type}
	switch c.Type {
	case TypeString:
		out.strs = make([]string, len(idx))
		for i, j := range idx {
			out.strs[i] = c.strs[j]
		}
	case TypeInt:
		out.ints = make([]int, len(idx))
		for i, j := range idx {
			out.ints[i] = c.ints[j]
		}
	default:
		out.floats = make([]float64, len(idx))
		for i, j := range idx {
			out.floats[i] = c.floats[j]
		}
	}
	return out
}

// Frame is an ordered collection of equally sized typed columns with
// unique names. Row order is part of the frame's identity: row i of
// every column belongs to the same record.
type Frame struct {
	cols []Column
	rows int
}

func NewFrame(cols []Column) (*Frame, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("frame needs at least one column")
	}

	rows := cols[0].Len()
	seen := make(map[string]struct{}, len(cols))
	for i := range cols {
		if cols[i].Name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := seen[cols[i].Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", cols[i].Name)
		}
		seen[cols[i].Name] = struct{}{}
		if cols[i].Len() != rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", cols[i].Name, cols[i].Len(), rows)
		}
	}

	return &Frame{cols: cols, rows: rows}, nil
}

func (f *Frame) Rows() int {
	return f.rows
}

// ColumnNames returns the names in frame order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.cols))
	for i := range f.cols {
		names[i] = f.cols[i].Name
	}
	return names
}

func (f *Frame) Column(name string) (*Column, bool) {
	for i := range f.cols {
		if f.cols[i].Name == name {
			return &f.cols[i], true
		}
	}
	return nil, false
}

// DistinctCount returns the number of distinct values in the column.
func (f *Frame) DistinctCount(name string) (int, error) {
	col, ok := f.Column(name)
	if !ok {
		return 0, fmt.Errorf("no column %q", name)
	}
	return col.distinctCount(), nil
}

// Drop returns a frame without the named column. Dropping a column the
// frame does not have returns the frame unchanged.
func (f *Frame) Drop(name string) *Frame {
	cols := make([]Column, 0, len(f.cols))
	for i := range f.cols {
		if f.cols[i].Name != name {
			cols = append(cols, f.cols[i])
		}
	}
	return &Frame{cols: cols, rows: f.rows}
}

// Select returns a frame holding only the named columns, in the given
// order. Naming a column the frame does not have is an error.
func (f *Frame) Select(names []string) (*Frame, error) {
	cols := make([]Column, len(names))
	for i, name := range names {
		col, ok := f.Column(name)
		if !ok {
			return nil, fmt.Errorf("no column %q", name)
		}
		cols[i] = *col
	}
	return &Frame{cols: cols, rows: f.rows}, nil
}

// Subset returns a frame holding only the given row indices, in the
// given order.
func (f *Frame) Subset(idx []int) *Frame {
	cols := make([]Column, len(f.cols))
	for i := range f.cols {
		cols[i] = f.cols[i].subset(idx)
	}
	return &Frame{cols: cols, rows: len(idx)}
}

// Matrix assembles the named numeric columns into a row-major feature
// matrix, in the given column order.
func (f *Frame) Matrix(names []string) ([][]float64, error) {
	cols := make([]*Column, len(names))
	for i, name := range names {
		col, ok := f.Column(name)
		if !ok {
			return nil, fmt.Errorf("no column %q", name)
		}
		if col.Type == TypeString {
			return nil, fmt.Errorf("column %q is not numeric", name)
		}
		cols[i] = col
	}

	matrix := make([][]float64, f.rows)
	for i := range matrix {
		row := make([]float64, len(cols))
		for j, col := range cols {
			row[j] = col.FloatAt(i)
		}
		matrix[i] = row
	}
	return matrix, nil
}
