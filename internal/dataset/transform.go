package dataset

import (
	"fmt"
	"strconv"
)

// Transform reshapes a freshly parsed frame into its typed form.
type Transform func(*Frame) (*Frame, error)

// WineMeasurementColumns are the eleven physicochemical measurement
// columns, after name normalization.
var WineMeasurementColumns = []string{
	"fixed_acidity",
	"volatile_acidity",
	"citric_acid",
	"residual_sugar",
	"chlorides",
	"free_sulfur_dioxide",
	"total_sulfur_dioxide",
	"density",
	"pH",
	"sulphates",
	"alcohol",
}

// WineLabelColumn is the integer quality score column.
const WineLabelColumn = "quality"

// WineTransform casts the measurement columns to float and the quality
// column to int. A cell that fails to cast invalidates its row and
// fails the whole transform.
func WineTransform(f *Frame) (*Frame, error) {
	var err error
	for _, name := range WineMeasurementColumns {
		if f, err = CastFloat(f, name); err != nil {
			return nil, err
		}
	}
	if f, err = CastInt(f, WineLabelColumn); err != nil {
		return nil, err
	}
	return f, nil
}

// CastFloat replaces the named string column with a float column.
func CastFloat(f *Frame, name string) (*Frame, error) {
	col, ok := f.Column(name)
	if !ok {
		return nil, fmt.Errorf("no column %q to cast", name)
	}
	if col.Type == TypeFloat {
		return f, nil
	}
	if col.Type != TypeString {
		return nil, fmt.Errorf("column %q is %s, not string", name, col.Type)
	}

	values := make([]float64, len(col.strs))
	for i, raw := range col.strs {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d column %q: cannot cast %q to float", i, name, raw)
		}
		values[i] = v
	}
	return f.replace(FloatColumn(name, values)), nil
}

// CastInt replaces the named string column with an int column.
func CastInt(f *Frame, name string) (*Frame, error) {
	col, ok := f.Column(name)
	if !ok {
		return nil, fmt.Errorf("no column %q to cast", name)
	}
	if col.Type == TypeInt {
		return f, nil
	}
	if col.Type != TypeString {
		return nil, fmt.Errorf("column %q is %s, not string", name, col.Type)
	}

	values := make([]int, len(col.strs))
	for i, raw := range col.strs {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d column %q: cannot cast %q to int", i, name, raw)
		}
		values[i] = v
	}
	return f.replace(IntColumn(name, values)), nil
}

func (f *Frame) replace(col Column) *Frame {
	cols := make([]Column, len(f.cols))
	copy(cols, f.cols)
	for i := range cols {
		if cols[i].Name == col.Name {
			cols[i] = col
			break
		}
	}
	return &Frame{cols: cols, rows: f.rows}
}
