package ml

import (
	"fmt"

	"github.com/oenolab/winequality/internal/dataset"
)

// VectorAssembler concatenates the configured feature columns into
// one dense vector per row, preserving column order.
type VectorAssembler struct {
	InputCols []string
}

func (a VectorAssembler) Assemble(frame *dataset.Frame) ([][]float64, error) {
	if len(a.InputCols) == 0 {
		return nil, fmt.Errorf("assembler has no input columns")
	}
	X, err := frame.Matrix(a.InputCols)
	if err != nil {
		return nil, fmt.Errorf("assembling features: %w", err)
	}
	return X, nil
}
