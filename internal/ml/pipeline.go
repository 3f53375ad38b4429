package ml

import (
	"fmt"

	"github.com/oenolab/winequality/internal/dataset"
)

// Classifier is a multiclass classifier over dense feature rows.
// Predicted labels are always drawn from the label set observed
// during Fit.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) ([]int, error)
	// Family names the classifier family, e.g. "LR" or "DT".
	Family() string
	// Clone returns a fresh unfitted classifier with the same
	// hyperparameters.
	Clone() Classifier
}

// Pipeline is the fixed three-stage template: assemble feature
// columns into vectors, standardize them, then classify.
type Pipeline struct {
	Assembler  VectorAssembler
	Label      string
	Classifier Classifier
}

func NewPipeline(featureCols []string, labelCol string, clf Classifier) *Pipeline {
	return &Pipeline{
		Assembler:  VectorAssembler{InputCols: featureCols},
		Label:      labelCol,
		Classifier: clf,
	}
}

// Fit fits the scaler and classifier on the frame and returns a
// self-contained fitted pipeline.
func (p *Pipeline) Fit(frame *dataset.Frame) (*FittedPipeline, error) {
	X, err := p.Assembler.Assemble(frame)
	if err != nil {
		return nil, err
	}
	y, err := LabelValues(frame, p.Label)
	if err != nil {
		return nil, err
	}

	scaler := NewStandardScaler()
	if err := scaler.Fit(X); err != nil {
		return nil, err
	}

	clf := p.Classifier.Clone()
	if err := clf.Fit(scaler.Transform(X), y); err != nil {
		return nil, fmt.Errorf("fitting %s: %w", clf.Family(), err)
	}

	return &FittedPipeline{
		Assembler:  p.Assembler,
		Label:      p.Label,
		Scaler:     scaler,
		Classifier: clf,
	}, nil
}

// FittedPipeline is a trained pipeline, ready to score frames without
// access to the training data.
type FittedPipeline struct {
	Assembler  VectorAssembler
	Label      string
	Scaler     *StandardScaler
	Classifier Classifier
}

// Predict scores every row of the frame. The frame does not need the
// label column.
func (fp *FittedPipeline) Predict(frame *dataset.Frame) ([]int, error) {
	X, err := fp.Assembler.Assemble(frame)
	if err != nil {
		return nil, err
	}
	return fp.Classifier.Predict(fp.Scaler.Transform(X))
}

// LabelValues extracts the integer label column.
func LabelValues(frame *dataset.Frame, labelCol string) ([]int, error) {
	col, ok := frame.Column(labelCol)
	if !ok {
		return nil, fmt.Errorf("no label column %q", labelCol)
	}
	if col.Type != dataset.TypeInt {
		return nil, fmt.Errorf("label column %q is %s, want int", labelCol, col.Type)
	}
	return col.Ints(), nil
}
