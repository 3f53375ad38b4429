package artifact

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oenolab/winequality/internal/dataset"
	"github.com/oenolab/winequality/internal/ml"
	"github.com/oenolab/winequality/internal/storage"
)

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}
func (noopLogger) Fatal(msg string, args ...any) {}

func fittedFixture(t *testing.T) (*ml.FittedPipeline, *dataset.Frame) {
	t.Helper()

	frame, err := dataset.NewFrame([]dataset.Column{
		dataset.FloatColumn("alcohol", []float64{9.4, 9.8, 12.5, 12.8}),
		dataset.IntColumn("quality", []int{5, 5, 7, 7}),
	})
	require.NoError(t, err)

	p := ml.NewPipeline([]string{"alcohol"}, "quality", ml.NewDecisionTree(3, 20, ml.ImpurityGini))
	fitted, err := p.Fit(frame)
	require.NoError(t, err)
	return fitted, frame
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	fitted, frame := fittedFixture(t)
	objects := storage.NewMemoryStore()
	ctx := context.Background()

	store := NewStore(objects, "bestmodel/", t.TempDir(), noopLogger{})
	require.NoError(t, store.Save(ctx, fitted))

	keys, err := objects.List(ctx, "bestmodel/")
	require.NoError(t, err)
	require.Contains(t, keys, "bestmodel/"+ml.ManifestName)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	want, err := fitted.Predict(frame)
	require.NoError(t, err)
	got, err := loaded.Predict(frame)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestStore_SaveOverwritesPreviousArtifact(t *testing.T) {
	fitted, _ := fittedFixture(t)
	objects := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, objects.Put(ctx, "bestmodel/stale.gob", []byte("old")))

	store := NewStore(objects, "bestmodel/", t.TempDir(), noopLogger{})
	require.NoError(t, store.Save(ctx, fitted))

	keys, err := objects.List(ctx, "bestmodel/")
	require.NoError(t, err)
	require.NotContains(t, keys, "bestmodel/stale.gob")
}

func TestStore_LoadRejectsPartialArtifact(t *testing.T) {
	fitted, _ := fittedFixture(t)
	objects := storage.NewMemoryStore()
	ctx := context.Background()

	store := NewStore(objects, "bestmodel/", t.TempDir(), noopLogger{})
	require.NoError(t, store.Save(ctx, fitted))

	// classifier payload fails to download; the rest still copies
	objects.FailGet = func(key string) error {
		if strings.HasSuffix(key, "classifier.gob") {
			return errors.New("timeout")
		}
		return nil
	}

	_, err := store.Load(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "incomplete")
}

func TestStore_LoadMissingArtifact(t *testing.T) {
	store := NewStore(storage.NewMemoryStore(), "bestmodel/", t.TempDir(), noopLogger{})
	_, err := store.Load(context.Background())
	require.Error(t, err)
}
