package ml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oenolab/winequality/internal/dataset"
)

func fittedFixture(t *testing.T, clf Classifier) (*FittedPipeline, *dataset.Frame) {
	t.Helper()

	frame, err := dataset.NewFrame([]dataset.Column{
		dataset.FloatColumn("alcohol", []float64{9.4, 9.8, 12.5, 12.8, 9.1, 13.0}),
		dataset.FloatColumn("density", []float64{0.99, 0.99, 0.95, 0.94, 0.99, 0.93}),
		dataset.IntColumn("quality", []int{5, 5, 7, 7, 5, 7}),
	})
	require.NoError(t, err)

	p := NewPipeline([]string{"alcohol", "density"}, "quality", clf)
	fitted, err := p.Fit(frame)
	require.NoError(t, err)
	return fitted, frame
}

func TestSaveLoadRoundTrip(t *testing.T) {
	classifiers := map[string]Classifier{
		"logistic": NewLogisticRegression(100, 0.01, 0.5),
		"tree":     NewDecisionTree(3, 20, ImpurityGini),
	}

	for name, clf := range classifiers {
		t.Run(name, func(t *testing.T) {
			fitted, frame := fittedFixture(t, clf)

			want, err := fitted.Predict(frame)
			require.NoError(t, err)

			dir := t.TempDir()
			require.NoError(t, SaveFitted(dir, fitted))

			loaded, err := LoadFitted(dir)
			require.NoError(t, err)
			require.Equal(t, fitted.Assembler.InputCols, loaded.Assembler.InputCols)
			require.Equal(t, fitted.Label, loaded.Label)

			got, err := loaded.Predict(frame)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestLoadFitted_MissingManifest(t *testing.T) {
	_, err := LoadFitted(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "manifest")
}

func TestLoadFitted_PartialArtifactIsCorrupt(t *testing.T) {
	fitted, _ := fittedFixture(t, NewDecisionTree(3, 20, ImpurityGini))

	dir := t.TempDir()
	require.NoError(t, SaveFitted(dir, fitted))
	require.NoError(t, os.Remove(filepath.Join(dir, "classifier.gob")))

	_, err := LoadFitted(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "incomplete")
}
